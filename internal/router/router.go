package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing
	"github.com/redis/go-redis/v9"

	"github.com/navreet111/quickpark/internal/config"     // cache and rate-limit configuration
	"github.com/navreet111/quickpark/internal/handler"    // handlers implementing the endpoints
	"github.com/navreet111/quickpark/internal/middleware" // JWT, rate limit and cache middleware
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check
// used by load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires the public API surface: registration, login, the
// slot browser, the booking commit and the contact form. Only the
// booking endpoint sits behind JWT authentication; everything else is
// public. The Redis-backed rate limiter covers the whole surface and
// the response cache covers the slot listing, both degrading to
// pass-throughs when rdb is nil.
func RegisterAPI(e *echo.Echo, a *handler.AuthHandler, s *handler.SlotHandler, jwtSecret string, rdb *redis.Client) {
	// The limiter is attached per route so the health check stays
	// exempt; load balancers must never see a 429 there.
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e.POST("/register", a.Register, rl)
	e.POST("/login", a.Login, rl)
	e.POST("/contact", handler.Contact, rl)

	// Slot listings are cacheable for a few seconds; the area is part of
	// the route so each area caches independently.
	e.GET("/slots/:area", s.ListByArea, rl, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// The booking commit requires a valid bearer token; the slot id is a
	// path parameter and the parking hours come from the JSON body.
	e.POST("/book/:slotId", s.Book, rl, middleware.JWTAuth(jwtSecret))
}
