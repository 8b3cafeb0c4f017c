package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"sporadicthinker/internal/store"
)

// Stats serves the admin dashboard aggregates.
type Stats struct {
	stats *store.StatsStore
}

// NewStats creates a new Stats handler group.
func NewStats(stats *store.StatsStore) *Stats {
	return &Stats{stats: stats}
}

// recentPostsLimit caps the dashboard's recent-activity list.
const recentPostsLimit = 5

// Get recomputes the dashboard numbers on every request. The three
// aggregate queries are independent, so they run concurrently and the
// first error wins.
func (h *Stats) Get(w http.ResponseWriter, r *http.Request) {
	var (
		totals        *store.PostTotals
		categoryCount int
		recent        []store.RecentPost
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		totals, err = h.stats.PostTotals()
		return err
	})
	g.Go(func() error {
		var err error
		categoryCount, err = h.stats.CategoryCount()
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = h.stats.RecentPosts(recentPostsLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		respondInternal(w, "stats queries failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"total_posts":      totals.Total,
			"published_posts":  totals.Published,
			"draft_posts":      totals.Draft,
			"total_views":      totals.Views,
			"total_categories": categoryCount,
		},
		"recent_posts": recent,
	})
}
