// Package handler provides the HTTP handlers for the quotes feature.
// It is the presentation side of the refresh core: it formats normalized
// quotes for display and never performs market logic itself.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finance_backend/internal/api"
	"finance_backend/internal/feature/quotes/domain/entity"
	"finance_backend/internal/feature/quotes/transport/http/dto"
	"finance_backend/internal/feature/quotes/usecase"
)

// SnapshotUsecase defines the snapshot operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SnapshotUsecase interface {
	// GetSnapshot returns the current snapshot, refreshing it when stale.
	GetSnapshot(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error)
	// ForceRefresh refreshes regardless of the staleness timer.
	ForceRefresh(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error)
}

// QuoteHandler handles the HTTP requests for price snapshots.
type QuoteHandler struct {
	uc SnapshotUsecase
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(uc SnapshotUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// GetSnapshot handles GET /quotes/:type where :type is "stocks" or "crypto".
func (h *QuoteHandler) GetSnapshot(c *gin.Context) {
	typ, ok := parseType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unknown instrument type"})
		return
	}

	snap, stale, err := h.uc.GetSnapshot(c.Request.Context(), typ)
	h.respond(c, typ, snap, stale, err)
}

// ForceRefresh handles POST /quotes/:type/refresh.
func (h *QuoteHandler) ForceRefresh(c *gin.Context) {
	typ, ok := parseType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unknown instrument type"})
		return
	}

	snap, stale, err := h.uc.ForceRefresh(c.Request.Context(), typ)
	h.respond(c, typ, snap, stale, err)
}

func (h *QuoteHandler) respond(c *gin.Context, typ entity.InstrumentType, snap *entity.Snapshot, stale bool, err error) {
	if err != nil {
		if errors.Is(err, usecase.ErrNoData) {
			// Cold cache and the first fetch failed: there is nothing to show yet.
			slog.Warn("no snapshot available", "type", typ, "error", err)
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "no data available"})
			return
		}
		slog.Error("snapshot request failed", "type", typ, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to load quotes"})
		return
	}

	out := dto.SnapshotResponse{
		AsOf:   snap.AsOf,
		Stale:  stale,
		Quotes: make([]dto.QuoteResponse, 0, len(snap.Quotes)),
	}
	for _, q := range snap.Quotes {
		out.Quotes = append(out.Quotes, dto.QuoteResponse{
			Symbol:        q.Symbol,
			Type:          q.Type.String(),
			Price:         q.PriceLocal.StringFixed(2),
			PriceINR:      q.PriceINR.StringFixed(2),
			Currency:      q.Currency,
			ChangePercent: q.ChangePercent.StringFixed(2),
			Direction:     direction(q),
		})
	}
	c.JSON(http.StatusOK, out)
}

// direction derives the display color hint from the sign of the day change.
func direction(q entity.PriceQuote) string {
	switch q.ChangePercent.Sign() {
	case 1:
		return "up"
	case -1:
		return "down"
	default:
		return "flat"
	}
}

func parseType(s string) (entity.InstrumentType, bool) {
	switch strings.ToLower(s) {
	case "stocks", "stock":
		return entity.Stock, true
	case "crypto":
		return entity.Crypto, true
	default:
		return "", false
	}
}
