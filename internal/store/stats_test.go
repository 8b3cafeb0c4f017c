package store

import (
	"testing"

	"github.com/google/uuid"

	"sporadicthinker/internal/models"
)

func TestStatsStorePostTotals(t *testing.T) {
	db := testDB(t)
	stats := NewStatsStore(db)
	posts := NewPostStore(db)
	author := testAuthor(t, db)

	before, err := stats.PostTotals()
	if err != nil {
		t.Fatalf("PostTotals: %v", err)
	}

	newTestPost(t, posts, author, "test-stats-pub-"+uuid.NewString(), models.PostStatusPublished)
	newTestPost(t, posts, author, "test-stats-draft-"+uuid.NewString(), models.PostStatusDraft)

	after, err := stats.PostTotals()
	if err != nil {
		t.Fatalf("PostTotals: %v", err)
	}

	if after.Total != before.Total+2 {
		t.Errorf("total: got %d, want %d", after.Total, before.Total+2)
	}
	if after.Published != before.Published+1 {
		t.Errorf("published: got %d, want %d", after.Published, before.Published+1)
	}
	if after.Draft != before.Draft+1 {
		t.Errorf("draft: got %d, want %d", after.Draft, before.Draft+1)
	}
	if after.Views < before.Views {
		t.Errorf("views regressed: %d -> %d", before.Views, after.Views)
	}
	if after.Published+after.Draft != after.Total {
		t.Errorf("published (%d) + draft (%d) != total (%d)", after.Published, after.Draft, after.Total)
	}
}

func TestStatsStoreCategoryCount(t *testing.T) {
	db := testDB(t)
	stats := NewStatsStore(db)
	categories := NewCategoryStore(db)

	before, err := stats.CategoryCount()
	if err != nil {
		t.Fatalf("CategoryCount: %v", err)
	}

	// Hidden categories count too.
	slug := "test-statcat-" + uuid.NewString()
	t.Cleanup(func() { cleanCategories(t, db, slug) })
	if _, err := categories.Create(&models.Category{Name: "Stat Cat", Slug: slug, IsVisible: false}); err != nil {
		t.Fatalf("create category: %v", err)
	}

	after, err := stats.CategoryCount()
	if err != nil {
		t.Fatalf("CategoryCount: %v", err)
	}
	if after != before+1 {
		t.Errorf("count: got %d, want %d", after, before+1)
	}
}

func TestStatsStoreRecentPosts(t *testing.T) {
	db := testDB(t)
	stats := NewStatsStore(db)
	posts := NewPostStore(db)
	author := testAuthor(t, db)

	slug := "test-recent-" + uuid.NewString()
	newTestPost(t, posts, author, slug, models.PostStatusDraft)

	recent, err := stats.RecentPosts(5)
	if err != nil {
		t.Fatalf("RecentPosts: %v", err)
	}
	if len(recent) == 0 || len(recent) > 5 {
		t.Fatalf("recent: got %d posts, want 1..5", len(recent))
	}

	// Newest first; the post just created should lead.
	if recent[0].Slug != slug {
		t.Errorf("expected %q first, got %q", slug, recent[0].Slug)
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Errorf("recent posts out of order at %d", i)
		}
	}
}
