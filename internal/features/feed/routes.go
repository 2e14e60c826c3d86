package feed

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/foundit/internal/config"
	"github.com/xyz-asif/foundit/internal/features/identity"
	"github.com/xyz-asif/foundit/internal/middleware"
	"github.com/xyz-asif/foundit/internal/pkg/logger"
	"github.com/xyz-asif/foundit/internal/pkg/ratelimit"
)

// RegisterRoutes mounts /feed. ctx bounds the limiter's background cleanup.
func RegisterRoutes(ctx context.Context, router *gin.RouterGroup, store RecordStore, cfg *config.Config, verifier identity.Verifier, log *logger.Logger) {
	handler := NewHandler(NewService(store, log))

	// every call hits Mongo, so readers are limited per IP
	limiter := ratelimit.NewWithCleanup(ctx, cfg.FeedRateLimit, time.Minute)

	registerHandlers(router, handler, verifier, limiter)
}

func registerHandlers(router *gin.RouterGroup, handler *Handler, verifier identity.Verifier, limiter *ratelimit.RateLimiter) {
	feed := router.Group("/feed")
	{
		// Public feed - optional auth
		feed.GET("/recent", middleware.OptionalAuth(verifier), ratelimit.Middleware(limiter), handler.GetRecentFeed)
	}
}
