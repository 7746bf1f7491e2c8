// Package router wires HTTP routes to their handlers and applies the
// Redis-backed middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/goodenergy/platform/internal/config"
	"github.com/goodenergy/platform/internal/handler"
	"github.com/goodenergy/platform/internal/middleware"
)

// Handlers groups every handler the router registers.
type Handlers struct {
	Conference *handler.ConferenceHandler
	Contact    *handler.ContactHandler
	Simulator  *handler.SimulatorHandler
	Blog       *handler.BlogHandler
}

// Register sets up all application routes.  The rate limiter guards
// the whole /v1 surface; the response cache applies only to the blog
// reads, never to seat availability, which must stay fresh for the
// polling seat counters.
func Register(e *echo.Echo, h Handlers, rdb *redis.Client) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")
	v1.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Conference reservation: write and read paths share the route.
	v1.POST("/conference/reserve", h.Conference.Reserve)
	v1.GET("/conference/reserve", h.Conference.Availability)

	// Contact-form leads.
	v1.POST("/contact", h.Contact.Submit)

	// Investment simulator.
	v1.POST("/simulator", h.Simulator.Simulate)
	v1.GET("/simulator", h.Simulator.Info)

	// Blog reads, cached.
	blog := v1.Group("/blog")
	blog.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	blog.GET("/posts", h.Blog.ListPosts)
	blog.GET("/posts/:slug", h.Blog.GetPost)
	blog.GET("/categories", h.Blog.ListCategories)
	blog.GET("/featured", h.Blog.FeaturedPost)
}
