// Package router registers the HTTP routes for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-discovery-booking/internal/config"
	"github.com/iliyamo/event-discovery-booking/internal/handler"
	"github.com/iliyamo/event-discovery-booking/internal/middleware"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth       *handler.AuthHandler
	Events     *handler.EventHandler
	Engagement *handler.EngagementHandler
	Home       *handler.HomeHandler
	Analytics  *handler.AnalyticsHandler
	Skiddle    *handler.SkiddleHandler
}

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check for load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Register, login
// and refresh live under /v1/auth and need no session; the account
// endpoints under /v1 require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/me/email", a.UpdateEmail)
}

// RegisterAPI wires the browse, engagement, analytics and external
// feed routes.  Browse endpoints accept anonymous callers and run
// behind the Redis response cache and rate limiter; everything that
// writes or reads per-user state requires a JWT.
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client, cacheCfg config.CacheConfig, rateCfg config.RateLimitConfig) {
	// Public browse routes.  OptionalJWTAuth lets the event detail and
	// home feed personalize responses when a token is present.  It runs
	// first so the limiter can key on user_id; the cache itself skips
	// any request carrying an Authorization header.
	pub := e.Group("/v1")
	pub.Use(middleware.OptionalJWTAuth(jwtSecret))
	pub.Use(middleware.NewTokenBucket(rateCfg, rdb))
	pub.Use(middleware.NewRedisCache(cacheCfg, rdb))
	pub.GET("/home", h.Home.Home)
	pub.GET("/events", h.Events.List)
	pub.GET("/events/:id", h.Events.Get)
	pub.GET("/events/calendar/data", h.Events.Calendar)
	pub.GET("/external/popular", h.Skiddle.PopularFeed)
	pub.GET("/external/festivals", h.Skiddle.FestivalsFeed)

	// Authenticated routes.  JWTAuth runs before the limiter so
	// per-user buckets apply instead of falling back to IP-only keys.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.NewTokenBucket(rateCfg, rdb))

	auth.POST("/events", h.Events.Create)
	auth.PUT("/events/:id", h.Events.Update)
	auth.DELETE("/events/:id", h.Events.Delete)
	auth.GET("/events/:id/analytics", h.Analytics.EventAnalytics)

	auth.POST("/events/:id/book", h.Engagement.Book)
	auth.DELETE("/events/:id/book", h.Engagement.CancelBooking)
	auth.POST("/events/:id/reviews", h.Engagement.SubmitReview)
	auth.POST("/events/:id/save", h.Engagement.SaveEvent)
	auth.DELETE("/events/:id/save", h.Engagement.UnsaveEvent)

	auth.GET("/me/bookings", h.Engagement.MyBookings)
	auth.GET("/me/saved", h.Engagement.MySavedEvents)
	auth.GET("/me/events", h.Events.MyEvents)
	auth.GET("/me/recommendations", h.Home.Recommended)
}
