package feed

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/foundit/internal/pkg/response"
)

// Fetcher is the part of Service the handler needs
type Fetcher interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type Handler struct {
	service Fetcher
}

func NewHandler(service Fetcher) *Handler {
	return &Handler{service: service}
}

// GetRecentFeed godoc
// @Summary Recent found items
// @Description Reports filed in the last 7 days, newest first. Every call re-queries the store.
// @Tags feed
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=Snapshot}
// @Failure 503 {object} response.ErrorResponse
// @Router /feed/recent [get]
func (h *Handler) GetRecentFeed(c *gin.Context) {
	snapshot, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	response.Success(c, snapshot)
}
