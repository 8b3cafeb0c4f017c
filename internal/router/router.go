// Package router sets up all HTTP routes and middleware chains for the
// blog API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"sporadicthinker/internal/cache"
	"sporadicthinker/internal/handlers"
	"sporadicthinker/internal/middleware"
	"sporadicthinker/internal/token"
)

// Options bundles the dependencies and settings the router needs.
type Options struct {
	Tokens       *token.Manager
	Auth         *handlers.Auth
	Posts        *handlers.Posts
	Categories   *handlers.Categories
	Stats        *handlers.Stats
	Cache        *cache.ResponseCache // nil disables response caching
	CORSOrigins  []string
	UploadDir    string
	IncludeStack bool // include stack traces in 500 bodies (dev only)
}

// startedAt feeds the health endpoint's uptime counter.
var startedAt = time.Now()

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer(opts.IncludeStack))
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticated := middleware.Authenticate(opts.Tokens)

	r.Route("/api", func(r chi.Router) {
		// Health check — no auth.
		r.Get("/health", healthHandler)

		// Auth endpoints get a tighter per-IP rate limit to slow down
		// credential stuffing.
		r.Route("/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(20, time.Minute))
			r.Post("/register", opts.Auth.Register)
			r.Post("/login", opts.Auth.Login)
			r.With(authenticated).Get("/me", opts.Auth.Me)
		})

		// Public read endpoints. Cached where the output is deterministic
		// per path; the favorites feed is randomized per request and is
		// never cached.
		r.Group(func(r chi.Router) {
			r.Get("/posts/favorites", opts.Posts.Favorites)

			r.Group(func(r chi.Router) {
				if opts.Cache != nil {
					r.Use(opts.Cache.Middleware)
				}
				r.Get("/posts", opts.Posts.List)
				r.Get("/posts/hero", opts.Posts.Hero)
				r.Get("/posts/{slug}", opts.Posts.BySlug)
				r.Get("/categories", opts.Categories.List)
			})
		})

		// Admin endpoints — bearer token required.
		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticated)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", opts.Posts.AdminList)
				r.Post("/", opts.Posts.Create)
				r.Get("/{id}", opts.Posts.AdminGet)
				r.Put("/{id}", opts.Posts.Update)
				r.Delete("/{id}", opts.Posts.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", opts.Categories.AdminList)
				r.Post("/", opts.Categories.Create)
				r.Put("/{id}", opts.Categories.Update)
				r.Delete("/{id}", opts.Categories.Delete)
			})

			r.Get("/stats", opts.Stats.Get)
		})
	})

	// Legacy local uploads — older posts reference images stored on disk.
	fileServer := http.FileServer(http.Dir(opts.UploadDir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads", fileServer))

	// Uniform JSON 404 for unknown routes.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not Found - " + req.URL.Path})
	})

	return r
}

// healthHandler returns a simple JSON health check response with the
// process uptime in seconds.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"uptime": time.Since(startedAt).Seconds(),
	})
}
