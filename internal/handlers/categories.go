// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sporadicthinker/internal/cache"
	"sporadicthinker/internal/models"
	"sporadicthinker/internal/slug"
	"sporadicthinker/internal/store"
)

// Categories groups the public and admin category HTTP handlers.
type Categories struct {
	categories *store.CategoryStore
	cache      *cache.ResponseCache
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore, rc *cache.ResponseCache) *Categories {
	return &Categories{categories: categories, cache: rc}
}

// categoryRequest is the JSON body for create and update. Pointer fields
// distinguish "omitted" from an explicit value, which is what makes
// partial updates possible.
type categoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	IsVisible   *bool   `json:"isVisible"`
	SortOrder   *int    `json:"sortOrder"`
}

// List returns only visible categories, in display order. Public.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListVisible()
	if err != nil {
		respondInternal(w, "list visible categories failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// AdminList returns every category with post counts.
func (h *Categories) AdminList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		respondInternal(w, "list categories failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// Create inserts a new category. Name is required; the slug is derived
// from it when not supplied; visibility defaults to true.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == nil || *req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Name is required")
		return
	}

	category := &models.Category{
		Name:        *req.Name,
		Slug:        slug.Generate(*req.Name),
		Description: req.Description,
		IsVisible:   true,
		SortOrder:   0,
	}
	if req.Slug != nil && *req.Slug != "" {
		category.Slug = *req.Slug
	}
	if req.IsVisible != nil {
		category.IsVisible = *req.IsVisible
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	created, err := h.categories.Create(category)
	if err != nil {
		respondInternal(w, "create category failed", err)
		return
	}

	h.cache.InvalidateCategories(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{"category": created})
}

// Update applies a partial update: only the fields present in the JSON
// body change.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.categories.Update(id, store.CategoryPatch{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsVisible:   req.IsVisible,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondInternal(w, "update category failed", err)
		return
	}
	if updated == nil {
		respondMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	h.cache.InvalidateCategories(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"category": updated})
}

// Delete removes a category. Posts referencing it are kept and lose
// their category assignment — deletion never cascades to posts.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	existing, err := h.categories.FindByID(id)
	if err != nil {
		respondInternal(w, "find category failed", err)
		return
	}
	if existing == nil {
		respondMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	if err := h.categories.Delete(id); err != nil {
		respondInternal(w, "delete category failed", err)
		return
	}

	h.cache.InvalidateCategories(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// categoryID extracts and parses the {id} route parameter.
func categoryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid category id")
		return uuid.Nil, false
	}
	return id, true
}
