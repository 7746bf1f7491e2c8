package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goodenergy/platform/internal/model"
)

// PostRepo provides read-only access to blog posts, authors and
// categories.  The blog is editorial content managed outside this
// service, so no write methods exist.  A post is visible once its
// published_at timestamp is not in the future.
type PostRepo struct {
	db *sql.DB
}

// NewPostRepo returns a new PostRepo bound to the given database.
func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{db: db} }

// postColumns is the shared projection for post queries, joining the
// author and category rows each post references.
const postColumns = `p.id, p.title, p.slug, p.excerpt, p.content, p.cover_image, p.published_at,
	       a.id, a.name, a.avatar, a.bio,
	       c.id, c.name, c.slug`

func scanPost(row interface{ Scan(...interface{}) error }) (*model.Post, error) {
	var p model.Post
	var cover, avatar, bio sql.NullString
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &cover, &p.PublishedAt,
		&p.Author.ID, &p.Author.Name, &avatar, &bio,
		&p.Category.ID, &p.Category.Name, &p.Category.Slug,
	)
	if err != nil {
		return nil, err
	}
	if cover.Valid {
		p.CoverImage = cover.String
	}
	if avatar.Valid {
		p.Author.Avatar = avatar.String
	}
	if bio.Valid {
		p.Author.Bio = bio.String
	}
	return &p, nil
}

// ListPublished returns all published posts ordered newest first.
// When categorySlug is non-empty the result is restricted to posts in
// that category.  An empty slice is returned when nothing matches.
func (r *PostRepo) ListPublished(ctx context.Context, categorySlug string) ([]model.Post, error) {
	q := `SELECT ` + postColumns + `
	      FROM posts p
	      JOIN authors a ON a.id = p.author_id
	      JOIN categories c ON c.id = p.category_id
	      WHERE p.published_at <= NOW()`
	args := []interface{}{}
	if categorySlug != "" {
		q += ` AND c.slug = ?`
		args = append(args, categorySlug)
	}
	q += ` ORDER BY p.published_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := make([]model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetBySlug returns a single post by its slug, including unpublished
// posts so editors can preview drafts via direct link.  It returns
// ErrPostNotFound when no post matches.
func (r *PostRepo) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	q := `SELECT ` + postColumns + `
	      FROM posts p
	      JOIN authors a ON a.id = p.author_id
	      JOIN categories c ON c.id = p.category_id
	      WHERE p.slug = ?`
	p, err := scanPost(r.db.QueryRowContext(ctx, q, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetFeatured returns the most recently published post.  It returns
// ErrPostNotFound when no post has been published yet.
func (r *PostRepo) GetFeatured(ctx context.Context) (*model.Post, error) {
	q := `SELECT ` + postColumns + `
	      FROM posts p
	      JOIN authors a ON a.id = p.author_id
	      JOIN categories c ON c.id = p.category_id
	      WHERE p.published_at <= NOW()
	      ORDER BY p.published_at DESC
	      LIMIT 1`
	p, err := scanPost(r.db.QueryRowContext(ctx, q))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListCategories returns all categories ordered by name.
func (r *PostRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	const q = `SELECT id, name, slug FROM categories ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cats := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cats, nil
}
