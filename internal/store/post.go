// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sporadicthinker/internal/models"
)

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, content, excerpt, featured_image, status,
       author_id, category_id, is_hero, hero_order, is_favorite, views,
       created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&p.Status, &p.AuthorID, &p.CategoryID, &p.IsHero, &p.HeroOrder,
		&p.IsFavorite, &p.Views, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// scanPostWithCategory scans a row produced by a categories LEFT JOIN,
// attaching the nested category when the post has one.
func scanPostWithCategory(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var catID *uuid.UUID
	var catName, catSlug, catDescription *string
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&p.Status, &p.AuthorID, &p.CategoryID, &p.IsHero, &p.HeroOrder,
		&p.IsFavorite, &p.Views, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catSlug, &catDescription,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil {
		p.Category = &models.Category{
			ID:          *catID,
			Name:        derefString(catName),
			Slug:        derefString(catSlug),
			Description: catDescription,
		}
	}
	return &p, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const postWithCategorySelect = `
	SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.featured_image,
	       p.status, p.author_id, p.category_id, p.is_hero, p.hero_order,
	       p.is_favorite, p.views, p.created_at, p.updated_at,
	       c.id, c.name, c.slug, c.description
	FROM posts p
	LEFT JOIN categories c ON p.category_id = c.id`

// List returns every post regardless of status, newest first. Admin view.
func (s *PostStore) List() ([]models.Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows, scanPost)
}

// ListPublished returns published posts with their category joined,
// newest first. Powers the public article feed.
func (s *PostStore) ListPublished() ([]models.Post, error) {
	rows, err := s.db.Query(postWithCategorySelect + `
		WHERE p.status = 'published'
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows, scanPostWithCategory)
}

// Hero returns up to three published hero posts for the homepage carousel,
// ordered by their explicit slot with unslotted entries last, then recency.
func (s *PostStore) Hero() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT ` + postColumns + `
		FROM posts
		WHERE status = 'published' AND is_hero
		ORDER BY hero_order ASC NULLS LAST, created_at DESC
		LIMIT 3`)
	if err != nil {
		return nil, fmt.Errorf("hero posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows, scanPost)
}

// Favorites returns up to three published favorite posts in random order.
// The ordering is intentionally non-deterministic per request.
func (s *PostStore) Favorites() ([]models.Post, error) {
	rows, err := s.db.Query(postWithCategorySelect + `
		WHERE p.status = 'published' AND p.is_favorite
		ORDER BY RANDOM()
		LIMIT 3`)
	if err != nil {
		return nil, fmt.Errorf("favorite posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows, scanPostWithCategory)
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by its slug, with the category joined.
// When onlyPublished is true, drafts are invisible. Returns nil if not found.
func (s *PostStore) FindBySlug(slug string, onlyPublished bool) (*models.Post, error) {
	query := postWithCategorySelect + ` WHERE p.slug = $1`
	if onlyPublished {
		query += ` AND p.status = 'published'`
	}
	row := s.db.QueryRow(query, slug)
	p, err := scanPostWithCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with generated fields populated.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO posts (title, slug, content, excerpt, featured_image, status,
		                   author_id, category_id, is_hero, hero_order, is_favorite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.Status,
		p.AuthorID, p.CategoryID, p.IsHero, p.HeroOrder, p.IsFavorite,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// NullableUUID distinguishes "leave unchanged" (Set false) from
// "assign, possibly to NULL" (Set true) for uuid columns in a patch.
type NullableUUID struct {
	Set   bool
	Value *uuid.UUID
}

// NullableInt is the integer counterpart of NullableUUID.
type NullableInt struct {
	Set   bool
	Value *int
}

// PostPatch describes a sparse update. Nil pointer fields are left
// untouched; nullable columns carry an explicit Set flag so an update can
// clear them to NULL without colliding with "field omitted".
type PostPatch struct {
	Title         *string
	Slug          *string
	Content       *string
	Excerpt       *string
	FeaturedImage *string
	Status        *models.PostStatus
	CategoryID    NullableUUID
	IsHero        *bool
	HeroOrder     NullableInt
	IsFavorite    *bool
}

// Update applies a sparse patch to a post, building a parameterized SET
// list from the fields present. An empty patch returns the row unchanged.
// Returns nil if no post with the given id exists.
func (s *PostStore) Update(id uuid.UUID, patch PostPatch) (*models.Post, error) {
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Slug != nil {
		set("slug", *patch.Slug)
	}
	if patch.Content != nil {
		set("content", *patch.Content)
	}
	if patch.Excerpt != nil {
		set("excerpt", *patch.Excerpt)
	}
	if patch.FeaturedImage != nil {
		set("featured_image", *patch.FeaturedImage)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if patch.CategoryID.Set {
		set("category_id", patch.CategoryID.Value)
	}
	if patch.IsHero != nil {
		set("is_hero", *patch.IsHero)
	}
	if patch.HeroOrder.Set {
		set("hero_order", patch.HeroOrder.Value)
	}
	if patch.IsFavorite != nil {
		set("is_favorite", *patch.IsFavorite)
	}

	if len(sets) == 0 {
		return s.FindByID(id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE posts SET %s WHERE id = $%d RETURNING `+postColumns,
		strings.Join(sets, ", "), len(args),
	)

	row := s.db.QueryRow(query, args...)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

// Delete removes a post by ID. Hard delete, no recycle bin.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// collectPosts drains rows using the given scan function.
func collectPosts(rows *sql.Rows, scan func(interface{ Scan(...any) error }) (*models.Post, error)) ([]models.Post, error) {
	var items []models.Post
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}
