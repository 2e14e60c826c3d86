package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/foundit/internal/config"
	"github.com/xyz-asif/foundit/internal/features/feed"
	"github.com/xyz-asif/foundit/internal/features/identity"
	"github.com/xyz-asif/foundit/internal/features/media"
	"github.com/xyz-asif/foundit/internal/features/reports"
	"github.com/xyz-asif/foundit/internal/pkg/cloudinary"
	"github.com/xyz-asif/foundit/internal/pkg/logger"
	"github.com/xyz-asif/foundit/internal/pkg/response"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRoutes wires the identity verifier, the object store and the feature
// routes under /api/v1. ctx must stay alive until the server stops.
func SetupRoutes(ctx context.Context, router *gin.Engine, db *mongo.Database, cfg *config.Config, log *logger.Logger) error {
	verifier, err := identity.NewVerifier(ctx, cfg)
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}

	cld, err := cloudinary.NewService(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.CloudinaryUploadFolder,
	)
	if err != nil {
		return fmt.Errorf("object store: %w", err)
	}
	pipeline := media.NewPipeline(cld, log)

	// one repository so both features share the index setup and the createdAt clock
	store := reports.NewRepository(db)

	api := router.Group("/api/v1")
	{
		reports.RegisterRoutes(ctx, api, store, cfg, verifier, pipeline, log)
		feed.RegisterRoutes(ctx, api, store, cfg, verifier, log)
	}

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found", "NOT_FOUND")
	})

	return nil
}
