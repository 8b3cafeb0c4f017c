package handlers

import (
	"encoding/json"
	"net/http"

	"sporadicthinker/internal/middleware"
	"sporadicthinker/internal/models"
	"sporadicthinker/internal/store"
	"sporadicthinker/internal/token"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	users  *store.UserStore
	tokens *token.Manager
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, tokens *token.Manager) *Auth {
	return &Auth{users: users, tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. Every registration gets the admin role;
// there is no public account tier.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateRegister(req.Username, req.Email, req.Password); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	existing, err := a.users.FindByEmail(req.Email)
	if err != nil {
		respondInternal(w, "register lookup failed", err)
		return
	}
	if existing != nil {
		respondMessage(w, http.StatusBadRequest, "Email already in use")
		return
	}

	user, err := a.users.Create(req.Username, req.Email, req.Password, models.RoleAdmin)
	if err != nil {
		respondInternal(w, "create user failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"user": user})
}

// Login verifies credentials and issues a bearer token embedding the
// user's id, email, and role. The token stays valid until expiry.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateLogin(req.Email, req.Password); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		respondInternal(w, "login lookup failed", err)
		return
	}
	// Same response for unknown email and wrong password.
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	signed, err := a.tokens.Issue(user)
	if err != nil {
		// The user row persists even when token issuance fails — there is
		// no rollback across the register/login flow.
		respondInternal(w, "issue token failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": signed,
		"user":  user,
	})
}

// Me returns the authenticated user. The row is loaded fresh when it
// still exists; a deleted user's valid token falls back to the claims it
// carries, since tokens are honored until expiry.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	user, err := a.users.FindByID(claims.UserID)
	if err != nil {
		respondInternal(w, "me lookup failed", err)
		return
	}
	if user == nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"user": map[string]any{
				"id":    claims.UserID,
				"email": claims.Email,
				"role":  claims.Role,
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}
