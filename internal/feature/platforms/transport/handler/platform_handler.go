// Package handler provides the HTTP handler for the platform comparison page.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_backend/internal/api"
	"finance_backend/internal/feature/platforms/domain/entity"
)

// PlatformUsecase defines the listing operation the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PlatformUsecase interface {
	List(ctx context.Context) ([]entity.Platform, error)
}

// PlatformHandler handles the HTTP requests for the platform catalog.
type PlatformHandler struct {
	uc PlatformUsecase
}

// NewPlatformHandler creates a new PlatformHandler.
func NewPlatformHandler(uc PlatformUsecase) *PlatformHandler {
	return &PlatformHandler{uc: uc}
}

// List handles GET /platforms.
func (h *PlatformHandler) List(c *gin.Context) {
	platforms, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list platforms", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load platforms"})
		return
	}
	c.JSON(http.StatusOK, platforms)
}
