package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goodenergy/platform/internal/repository"
)

// BlogHandler serves read-only blog content: published posts, single
// posts by slug, categories and the featured (latest) post.
type BlogHandler struct {
	Posts *repository.PostRepo
}

// NewBlogHandler constructs a BlogHandler.
func NewBlogHandler(posts *repository.PostRepo) *BlogHandler {
	if posts == nil {
		panic("nil post repository passed to NewBlogHandler")
	}
	return &BlogHandler{Posts: posts}
}

// ListPosts handles GET /v1/blog/posts.  The optional ?category=slug
// query restricts the list to one category.
func (h *BlogHandler) ListPosts(c echo.Context) error {
	posts, err := h.Posts.ListPublished(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		c.Logger().Errorf("list posts failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load posts"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": posts})
}

// GetPost handles GET /v1/blog/posts/:slug.
func (h *BlogHandler) GetPost(c echo.Context) error {
	post, err := h.Posts.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		c.Logger().Errorf("get post failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load post"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": post})
}

// ListCategories handles GET /v1/blog/categories.
func (h *BlogHandler) ListCategories(c echo.Context) error {
	cats, err := h.Posts.ListCategories(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list categories failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load categories"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cats})
}

// FeaturedPost handles GET /v1/blog/featured, returning the most
// recently published post.
func (h *BlogHandler) FeaturedPost(c echo.Context) error {
	post, err := h.Posts.GetFeatured(c.Request().Context())
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no published posts"})
		}
		c.Logger().Errorf("featured post failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load featured post"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": post})
}
