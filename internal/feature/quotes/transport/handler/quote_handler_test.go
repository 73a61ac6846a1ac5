package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"finance_backend/internal/feature/quotes/domain/entity"
	"finance_backend/internal/feature/quotes/transport/http/dto"
	"finance_backend/internal/feature/quotes/usecase"
)

// mockSnapshotUsecase is a mock implementation of the SnapshotUsecase interface.
type mockSnapshotUsecase struct {
	GetSnapshotFunc  func(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error)
	ForceRefreshFunc func(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error)
}

// GetSnapshot is the mock implementation of the GetSnapshot method.
func (m *mockSnapshotUsecase) GetSnapshot(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error) {
	if m.GetSnapshotFunc != nil {
		return m.GetSnapshotFunc(ctx, typ)
	}
	return &entity.Snapshot{}, false, nil
}

// ForceRefresh is the mock implementation of the ForceRefresh method.
func (m *mockSnapshotUsecase) ForceRefresh(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error) {
	if m.ForceRefreshFunc != nil {
		return m.ForceRefreshFunc(ctx, typ)
	}
	return &entity.Snapshot{}, false, nil
}

func newQuoteRouter(uc SnapshotUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewQuoteHandler(uc)
	r.GET("/quotes/:type", h.GetSnapshot)
	r.POST("/quotes/:type/refresh", h.ForceRefresh)
	return r
}

func sampleSnapshot(asOf time.Time) *entity.Snapshot {
	return &entity.Snapshot{
		AsOf: asOf,
		Quotes: []entity.PriceQuote{
			{
				Symbol:        "BTC/USD",
				Type:          entity.Crypto,
				PriceLocal:    decimal.RequireFromString("60000.123"),
				PriceINR:      decimal.RequireFromString("4995010.24"),
				ChangePercent: decimal.RequireFromString("2.5"),
				Currency:      "USD",
				FetchedAt:     asOf,
			},
			{
				Symbol:        "ETH/USD",
				Type:          entity.Crypto,
				PriceLocal:    decimal.RequireFromString("3000"),
				PriceINR:      decimal.RequireFromString("249750"),
				ChangePercent: decimal.RequireFromString("-1.75"),
				Currency:      "USD",
				FetchedAt:     asOf,
			},
			{
				Symbol:        "SOL/USD",
				Type:          entity.Crypto,
				PriceLocal:    decimal.RequireFromString("150"),
				PriceINR:      decimal.RequireFromString("12487.50"),
				ChangePercent: decimal.Zero,
				Currency:      "USD",
				FetchedAt:     asOf,
			},
		},
	}
}

func TestQuoteHandler_GetSnapshot(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := &mockSnapshotUsecase{
		GetSnapshotFunc: func(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error) {
			assert.Equal(t, entity.Crypto, typ)
			return sampleSnapshot(asOf), false, nil
		},
	}
	r := newQuoteRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quotes/crypto", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body dto.SnapshotResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Stale)
	assert.True(t, body.AsOf.Equal(asOf))
	assert.Len(t, body.Quotes, 3)

	// Prices are formatted with two decimals, direction follows the sign.
	assert.Equal(t, "60000.12", body.Quotes[0].Price)
	assert.Equal(t, "4995010.24", body.Quotes[0].PriceINR)
	assert.Equal(t, "up", body.Quotes[0].Direction)
	assert.Equal(t, "down", body.Quotes[1].Direction)
	assert.Equal(t, "flat", body.Quotes[2].Direction)
}

func TestQuoteHandler_GetSnapshot_StaleFlag(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := &mockSnapshotUsecase{
		GetSnapshotFunc: func(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error) {
			return sampleSnapshot(asOf), true, nil
		},
	}
	r := newQuoteRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quotes/crypto", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body dto.SnapshotResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Stale, "stale data must be marked, never hidden")
}

func TestQuoteHandler_GetSnapshot_TypeParsing(t *testing.T) {
	tests := []struct {
		path           string
		expectedType   entity.InstrumentType
		expectedStatus int
	}{
		{"/quotes/stocks", entity.Stock, http.StatusOK},
		{"/quotes/stock", entity.Stock, http.StatusOK},
		{"/quotes/crypto", entity.Crypto, http.StatusOK},
		{"/quotes/bonds", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var gotType entity.InstrumentType
			uc := &mockSnapshotUsecase{
				GetSnapshotFunc: func(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error) {
					gotType = typ
					return sampleSnapshot(time.Now()), false, nil
				},
			}
			r := newQuoteRouter(uc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedType, gotType)
			}
		})
	}
}

func TestQuoteHandler_GetSnapshot_NoData(t *testing.T) {
	uc := &mockSnapshotUsecase{
		GetSnapshotFunc: func(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error) {
			return nil, false, fmt.Errorf("%w: upstream down", usecase.ErrNoData)
		},
	}
	r := newQuoteRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quotes/stocks", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"no data available"}`, w.Body.String())
}

func TestQuoteHandler_ForceRefresh(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	called := false
	uc := &mockSnapshotUsecase{
		ForceRefreshFunc: func(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error) {
			called = true
			assert.Equal(t, entity.Stock, typ)
			return sampleSnapshot(asOf), false, nil
		},
	}
	r := newQuoteRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/quotes/stocks/refresh", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
