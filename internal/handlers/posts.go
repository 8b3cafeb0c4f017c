// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sporadicthinker/internal/cache"
	"sporadicthinker/internal/middleware"
	"sporadicthinker/internal/models"
	"sporadicthinker/internal/slug"
	"sporadicthinker/internal/storage"
	"sporadicthinker/internal/store"
)

// Posts groups the public and admin post HTTP handlers.
type Posts struct {
	posts   *store.PostStore
	uploads *storage.Client
	cache   *cache.ResponseCache
}

// NewPosts creates a new Posts handler group. cache may be nil when Redis
// is not configured.
func NewPosts(posts *store.PostStore, uploads *storage.Client, rc *cache.ResponseCache) *Posts {
	return &Posts{posts: posts, uploads: uploads, cache: rc}
}

// --- Public handlers ---

// List returns all published posts with nested category data.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPublished()
	if err != nil {
		respondInternal(w, "list published posts failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// Hero returns the homepage carousel posts: at most three published
// hero-flagged posts in slot order.
func (h *Posts) Hero(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Hero()
	if err != nil {
		respondInternal(w, "hero posts failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// Favorites returns up to three published favorite posts in random order.
func (h *Posts) Favorites(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Favorites()
	if err != nil {
		respondInternal(w, "favorite posts failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// BySlug returns a single published post by its slug.
func (h *Posts) BySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.FindBySlug(chi.URLParam(r, "slug"), true)
	if err != nil {
		respondInternal(w, "find post by slug failed", err)
		return
	}
	if post == nil {
		respondMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"post": post})
}

// --- Admin handlers ---

// AdminList returns every post regardless of status.
func (h *Posts) AdminList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List()
	if err != nil {
		respondInternal(w, "list posts failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// AdminGet returns a single post by id, drafts included.
func (h *Posts) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	post, err := h.posts.FindByID(id)
	if err != nil {
		respondInternal(w, "find post failed", err)
		return
	}
	if post == nil {
		respondMessage(w, http.StatusNotFound, "Post not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"post": post})
}

// Create handles the admin post form. The body is multipart so a featured
// image can be attached; string fields are coerced explicitly.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	form, err := parseBody(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	title := form.Get("title")
	content := form.Get("content")
	if title == "" || content == "" {
		respondMessage(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	slugValue := form.Get("slug")
	if slugValue == "" {
		slugValue = slug.Generate(title)
	}
	if msg := validatePostInput(title, slugValue); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	status := models.PostStatus(form.Get("status"))
	if status == "" {
		status = models.PostStatusDraft
	}
	if !status.Valid() {
		respondMessage(w, http.StatusBadRequest, "Status must be draft or published")
		return
	}

	heroOrder, err := formInt(form.Get("heroOrder"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "heroOrder must be a number")
		return
	}

	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	post := &models.Post{
		Title:      title,
		Slug:       slugValue,
		Content:    content,
		Status:     status,
		AuthorID:   claims.UserID,
		CategoryID: formUUID(form.Get("categoryId")),
		IsHero:     formBool(form.Get("isHero")),
		HeroOrder:  heroOrder,
		IsFavorite: formBool(form.Get("isFavorite")),
	}
	if form.Has("excerpt") {
		excerpt := form.Get("excerpt")
		post.Excerpt = &excerpt
	}

	imageURL, ok := h.storeUpload(w, r)
	if !ok {
		return
	}
	post.FeaturedImage = imageURL

	created, err := h.posts.Create(post)
	if err != nil {
		respondInternal(w, "create post failed", err)
		return
	}

	h.cache.InvalidatePosts(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{"post": created})
}

// Update applies a partial update: only the fields present in the form
// change. An empty heroOrder or categoryId clears the column to NULL,
// while omitting the field leaves the stored value untouched.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	form, err := parseBody(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	var patch store.PostPatch
	if form.Has("title") {
		title := form.Get("title")
		patch.Title = &title
	}
	if form.Has("slug") {
		s := form.Get("slug")
		patch.Slug = &s
	}
	if msg := validatePostInput(form.Get("title"), form.Get("slug")); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}
	if form.Has("content") {
		content := form.Get("content")
		patch.Content = &content
	}
	if form.Has("excerpt") {
		excerpt := form.Get("excerpt")
		patch.Excerpt = &excerpt
	}
	if form.Has("status") {
		status := models.PostStatus(form.Get("status"))
		if !status.Valid() {
			respondMessage(w, http.StatusBadRequest, "Status must be draft or published")
			return
		}
		patch.Status = &status
	}
	if form.Has("categoryId") {
		patch.CategoryID = store.NullableUUID{Set: true, Value: formUUID(form.Get("categoryId"))}
	}
	if form.Has("isHero") {
		isHero := formBool(form.Get("isHero"))
		patch.IsHero = &isHero
	}
	if form.Has("heroOrder") {
		order, err := formInt(form.Get("heroOrder"))
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "heroOrder must be a number")
			return
		}
		patch.HeroOrder = store.NullableInt{Set: true, Value: order}
	}
	if form.Has("isFavorite") {
		isFavorite := formBool(form.Get("isFavorite"))
		patch.IsFavorite = &isFavorite
	}

	imageURL, ok := h.storeUpload(w, r)
	if !ok {
		return
	}
	if imageURL != nil {
		patch.FeaturedImage = imageURL
	}

	updated, err := h.posts.Update(id, patch)
	if err != nil {
		respondInternal(w, "update post failed", err)
		return
	}
	if updated == nil {
		respondMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	h.cache.InvalidatePosts(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"post": updated})
}

// Delete removes a post permanently.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondInternal(w, "find post failed", err)
		return
	}
	if post == nil {
		respondMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.posts.Delete(id); err != nil {
		respondInternal(w, "delete post failed", err)
		return
	}

	h.cache.InvalidatePosts(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// storeUpload saves an attached featured image, if any, and returns its
// URL. The bool result is false when a response was already written.
func (h *Posts) storeUpload(w http.ResponseWriter, r *http.Request) (*string, bool) {
	file, header, err := formFile(r, "featuredImage")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid featured image upload")
		return nil, false
	}
	if file == nil {
		return nil, true
	}
	defer file.Close()

	url, err := h.uploads.Store(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		respondInternal(w, "store featured image failed", err)
		return nil, false
	}
	return &url, true
}

// postID extracts and parses the {id} route parameter, responding with
// 400 on garbage input.
func postID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid post id")
		return uuid.Nil, false
	}
	return id, true
}
