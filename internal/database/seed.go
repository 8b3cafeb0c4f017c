package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user, a couple of categories, and sample posts covering the hero
// and favorite flags. It is a no-op if any users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "admin", "admin@sporadicthinker.local", string(hash), "admin").Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	var techID, lifeID string
	err = db.QueryRow(`
		INSERT INTO categories (name, slug, description, is_visible, sort_order)
		VALUES ('Technology', 'technology', 'Engineering and tooling notes', TRUE, 0)
		RETURNING id
	`).Scan(&techID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}
	err = db.QueryRow(`
		INSERT INTO categories (name, slug, description, is_visible, sort_order)
		VALUES ('Life', 'life', 'Everything that is not code', TRUE, 1)
		RETURNING id
	`).Scan(&lifeID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	// Sample posts: one hero, one favorite, one draft.
	seedPosts := []struct {
		title, slug, content string
		status               string
		category             string
		isHero               bool
		heroOrder            any
		isFavorite           bool
	}{
		{"Hello, World", "hello-world", "<p>First post on the new blog.</p>", "published", techID, true, 1, false},
		{"Slow Mornings", "slow-mornings", "<p>On the value of an unhurried start.</p>", "published", lifeID, false, nil, true},
		{"Unfinished Thoughts", "unfinished-thoughts", "<p>Still drafting this one.</p>", "draft", techID, false, nil, false},
	}
	for _, p := range seedPosts {
		_, err = db.Exec(`
			INSERT INTO posts (title, slug, content, status, author_id, category_id, is_hero, hero_order, is_favorite)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, p.title, p.slug, p.content, p.status, adminID, p.category, p.isHero, p.heroOrder, p.isFavorite)
		if err != nil {
			return fmt.Errorf("seed insert post %q: %w", p.slug, err)
		}
	}

	slog.Info("database seeded with development data",
		"email", "admin@sporadicthinker.local",
		"password", "admin123",
	)

	return nil
}
