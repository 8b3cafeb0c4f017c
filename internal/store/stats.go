// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StatsStore runs the aggregate queries behind the admin dashboard.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore returns a new StatsStore.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// PostTotals holds the post counters for the dashboard.
type PostTotals struct {
	Total     int `json:"total_posts"`
	Published int `json:"published_posts"`
	Draft     int `json:"draft_posts"`
	Views     int `json:"total_views"`
}

// RecentPost is the trimmed post shape shown in the dashboard's
// recent-activity list.
type RecentPost struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PostTotals returns total/published/draft counts and the view sum in a
// single aggregate query.
func (s *StatsStore) PostTotals() (*PostTotals, error) {
	t := &PostTotals{}
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'published'),
		       COUNT(*) FILTER (WHERE status = 'draft'),
		       COALESCE(SUM(views), 0)
		FROM posts
	`).Scan(&t.Total, &t.Published, &t.Draft, &t.Views)
	if err != nil {
		return nil, fmt.Errorf("post totals: %w", err)
	}
	return t, nil
}

// CategoryCount returns the number of categories, visible or not.
func (s *StatsStore) CategoryCount() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("category count: %w", err)
	}
	return count, nil
}

// RecentPosts returns the newest posts regardless of status, capped at limit.
func (s *StatsStore) RecentPosts(limit int) ([]RecentPost, error) {
	rows, err := s.db.Query(`
		SELECT id, title, slug, status, created_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	defer rows.Close()

	var items []RecentPost
	for rows.Next() {
		var p RecentPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent post: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
