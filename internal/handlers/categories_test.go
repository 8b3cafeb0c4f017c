// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"sporadicthinker/internal/models"
)

func decodeCategory(t *testing.T, rec *httptest.ResponseRecorder) *models.Category {
	t.Helper()
	var resp struct {
		Category *models.Category `json:"category"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode category: %v", err)
	}
	return resp.Category
}

func TestCategoriesCreate(t *testing.T) {
	env := newTestEnv(t)

	body := `{"name":"Deep Dives"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Categories.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d; body: %s", rec.Code, rec.Body.String())
	}

	category := decodeCategory(t, rec)
	t.Cleanup(func() { cleanCategories(t, env.DB, category.Slug) })

	if category.Name != "Deep Dives" {
		t.Errorf("name: got %q", category.Name)
	}
	if category.Slug != "deep-dives" {
		t.Errorf("slug: got %q, want derived from name", category.Slug)
	}
	if !category.IsVisible {
		t.Error("expected visibility to default to true")
	}
}

func TestCategoriesCreateExplicitSlug(t *testing.T) {
	env := newTestEnv(t)

	slugValue := "test-explicit-" + uuid.NewString()
	t.Cleanup(func() { cleanCategories(t, env.DB, slugValue) })

	body := `{"name":"Named","slug":"` + slugValue + `","isVisible":false,"sortOrder":7}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Categories.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d; body: %s", rec.Code, rec.Body.String())
	}

	category := decodeCategory(t, rec)
	if category.Slug != slugValue {
		t.Errorf("slug: got %q, want %q", category.Slug, slugValue)
	}
	if category.IsVisible {
		t.Error("expected hidden category")
	}
	if category.SortOrder != 7 {
		t.Errorf("sort_order: got %d, want 7", category.SortOrder)
	}
}

func TestCategoriesCreateRequiresName(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{`{}`, `{"name":""}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/categories", strings.NewReader(body))
		rec := httptest.NewRecorder()
		env.Categories.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: got %d, want 400", body, rec.Code)
		}
	}
}

func TestCategoriesUpdate(t *testing.T) {
	env := newTestEnv(t)

	slugValue := "test-catupd-" + uuid.NewString()
	t.Cleanup(func() { cleanCategories(t, env.DB, slugValue) })
	created, err := env.CatStore.Create(&models.Category{Name: "Before", Slug: slugValue, IsVisible: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	body := `{"isVisible":false}`
	req := withChiURLParam(
		httptest.NewRequest(http.MethodPut, "/api/admin/categories/"+created.ID.String(), strings.NewReader(body)),
		"id", created.ID.String())
	rec := httptest.NewRecorder()
	env.Categories.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rec.Code, rec.Body.String())
	}

	category := decodeCategory(t, rec)
	if category.IsVisible {
		t.Error("expected category hidden after update")
	}
	if category.Name != "Before" {
		t.Errorf("name changed unexpectedly: %q", category.Name)
	}
}

func TestCategoriesUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)

	id := uuid.NewString()
	req := withChiURLParam(
		httptest.NewRequest(http.MethodPut, "/api/admin/categories/"+id, strings.NewReader(`{"name":"x"}`)),
		"id", id)
	rec := httptest.NewRecorder()
	env.Categories.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestCategoriesDelete(t *testing.T) {
	env := newTestEnv(t)

	slugValue := "test-catdel-" + uuid.NewString()
	created, err := env.CatStore.Create(&models.Category{Name: "Doomed", Slug: slugValue, IsVisible: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := withChiURLParam(
		httptest.NewRequest(http.MethodDelete, "/api/admin/categories/"+created.ID.String(), nil),
		"id", created.ID.String())
	rec := httptest.NewRecorder()
	env.Categories.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", rec.Code)
	}

	// Second delete is a 404.
	rec = httptest.NewRecorder()
	env.Categories.Delete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", rec.Code)
	}
}

func TestCategoriesPublicListHidesInvisible(t *testing.T) {
	env := newTestEnv(t)

	hidden := "test-cathidden-" + uuid.NewString()
	t.Cleanup(func() { cleanCategories(t, env.DB, hidden) })
	if _, err := env.CatStore.Create(&models.Category{Name: "Hidden", Slug: hidden, IsVisible: false}); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	env.Categories.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), hidden) {
		t.Error("hidden category leaked into public list")
	}
}
