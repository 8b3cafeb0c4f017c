// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"sporadicthinker/internal/database"
	"sporadicthinker/internal/middleware"
	"sporadicthinker/internal/models"
	"sporadicthinker/internal/storage"
	"sporadicthinker/internal/store"
	"sporadicthinker/internal/token"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "sporadicthinker")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "sporadicthinker")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Users      *store.UserStore
	PostStore  *store.PostStore
	CatStore   *store.CategoryStore
	StatsStore *store.StatsStore
	Tokens     *token.Manager
	Auth       *Auth
	Posts      *Posts
	Categories *Categories
	Stats      *Stats
}

// newTestEnv creates a complete test environment. The response cache is
// nil (caching off) and uploads land in a per-test temp directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	uploads, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("storage.NewLocal: %v", err)
	}

	users := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	catStore := store.NewCategoryStore(db)
	statsStore := store.NewStatsStore(db)
	tokens := token.NewManager("handler-test-secret", time.Hour)

	return &testEnv{
		DB:         db,
		Users:      users,
		PostStore:  postStore,
		CatStore:   catStore,
		StatsStore: statsStore,
		Tokens:     tokens,
		Auth:       NewAuth(users, tokens),
		Posts:      NewPosts(postStore, uploads, nil),
		Categories: NewCategories(catStore, nil),
		Stats:      NewStats(statsStore),
	}
}

// testAdmin creates an admin user for the duration of the test. Posts it
// authored are removed alongside it.
func (env *testEnv) testAdmin(t *testing.T) *models.User {
	t.Helper()

	email := "admin-" + time.Now().Format("150405.000000000") + "@handler-test.local"
	user, err := env.Users.Create("testadmin", email, "adminpass", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM posts WHERE author_id = $1", user.ID)
		env.Users.Delete(user.ID)
	})
	return user
}

// withClaims attaches verified-looking claims to a request, as the auth
// middleware would after validating a bearer token.
func withClaims(r *http.Request, user *models.User) *http.Request {
	claims := &token.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	}
	return r.WithContext(middleware.WithClaims(r.Context(), claims))
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanUsers removes test users by email.
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// cleanCategories removes test categories by slug.
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", s)
	}
}
