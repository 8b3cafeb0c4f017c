package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"sporadicthinker/internal/models"
	"sporadicthinker/internal/store"
)

func TestStatsGet(t *testing.T) {
	env := newTestEnv(t)
	admin := env.testAdmin(t)

	// One published and one draft post so every counter has signal.
	for _, status := range []models.PostStatus{models.PostStatusPublished, models.PostStatusDraft} {
		_, err := env.PostStore.Create(&models.Post{
			Title: "Stat Post", Slug: "test-hstats-" + uuid.NewString(),
			Content: "<p>x</p>", Status: status, AuthorID: admin.ID,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()
	env.Stats.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Stats struct {
			TotalPosts      int `json:"total_posts"`
			PublishedPosts  int `json:"published_posts"`
			DraftPosts      int `json:"draft_posts"`
			TotalViews      int `json:"total_views"`
			TotalCategories int `json:"total_categories"`
		} `json:"stats"`
		RecentPosts []store.RecentPost `json:"recent_posts"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Stats.TotalPosts < 2 {
		t.Errorf("total_posts: got %d, want >= 2", resp.Stats.TotalPosts)
	}
	if resp.Stats.PublishedPosts < 1 || resp.Stats.DraftPosts < 1 {
		t.Errorf("published/draft: got %d/%d", resp.Stats.PublishedPosts, resp.Stats.DraftPosts)
	}
	if resp.Stats.PublishedPosts+resp.Stats.DraftPosts != resp.Stats.TotalPosts {
		t.Errorf("counts do not add up: %+v", resp.Stats)
	}
	if len(resp.RecentPosts) == 0 || len(resp.RecentPosts) > 5 {
		t.Errorf("recent_posts: got %d entries", len(resp.RecentPosts))
	}
}
