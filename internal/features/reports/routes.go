package reports

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/foundit/internal/config"
	"github.com/xyz-asif/foundit/internal/features/identity"
	"github.com/xyz-asif/foundit/internal/features/media"
	"github.com/xyz-asif/foundit/internal/middleware"
	"github.com/xyz-asif/foundit/internal/pkg/logger"
	"github.com/xyz-asif/foundit/internal/pkg/ratelimit"
)

// RegisterRoutes mounts /reports. ctx bounds the background work of the
// submit limiter and should live as long as the server.
func RegisterRoutes(ctx context.Context, router *gin.RouterGroup, store RecordStore, cfg *config.Config, verifier identity.Verifier, uploader Uploader, log *logger.Logger) {
	identities := identity.ContextProvider{}

	// Initialize service
	service := NewService(identities, uploader, store, log)

	// Initialize handler
	handler := NewHandler(service, media.NewStager(cfg.UploadStagingDir), identities)

	// Submissions are limited per reporter, anonymous callers per IP
	limiter := ratelimit.NewWithCleanup(ctx, cfg.SubmitRateLimit, time.Minute)

	registerHandlers(router, handler, verifier, limiter)
}

func registerHandlers(router *gin.RouterGroup, handler *Handler, verifier identity.Verifier, limiter *ratelimit.RateLimiter) {
	reports := router.Group("/reports")
	{
		// Missing fields are reported before a missing login, so auth is optional here
		// and Submit enforces it. The limiter keys on the user OptionalAuth attached.
		reports.POST("", middleware.OptionalAuth(verifier), ratelimit.UserBasedMiddleware(limiter), handler.CreateReport)
		reports.GET("/me", middleware.Auth(verifier), handler.GetMe)
	}
}
