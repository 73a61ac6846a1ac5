package twelvedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finance_backend/internal/feature/quotes/usecase"
)

func newTestMarket(t *testing.T, handler http.HandlerFunc) *TwelveDataMarket {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: time.Second}
	return NewTwelveDataMarket(cfg, srv.Client())
}

func TestQuotes_SingleSymbol(t *testing.T) {
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "RELIANCE" {
			t.Errorf("expected symbol=RELIANCE, got %q", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("expected apikey to be sent, got %q", got)
		}
		w.Write([]byte(`{"symbol":"RELIANCE","currency":"INR","close":"2850.50","percent_change":"1.20"}`))
	})

	quotes, err := m.Quotes(context.Background(), []string{"RELIANCE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(quotes))
	}
	want := usecase.RawQuote{Symbol: "RELIANCE", Price: "2850.50", PercentChange: "1.20", Currency: "INR"}
	if quotes[0] != want {
		t.Errorf("expected %+v, got %+v", want, quotes[0])
	}
}

func TestQuotes_BatchPreservesRequestedOrder(t *testing.T) {
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"TCS": {"symbol":"TCS","currency":"INR","close":"3890.00","percent_change":"-0.50"},
			"RELIANCE": {"symbol":"RELIANCE","currency":"INR","close":"2850.50","percent_change":"1.20"}
		}`))
	})

	quotes, err := m.Quotes(context.Background(), []string{"RELIANCE", "TCS"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].Symbol != "RELIANCE" || quotes[1].Symbol != "TCS" {
		t.Errorf("expected requested order RELIANCE, TCS; got %s, %s", quotes[0].Symbol, quotes[1].Symbol)
	}
}

func TestQuotes_BatchMissingSymbol(t *testing.T) {
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RELIANCE": {"symbol":"RELIANCE","close":"2850.50"}}`))
	})

	_, err := m.Quotes(context.Background(), []string{"RELIANCE", "TCS"})
	if kind, ok := usecase.UpstreamKind(err); !ok || kind != usecase.UpstreamMalformed {
		t.Errorf("expected malformed, got %v", err)
	}
}

func TestQuotes_HTTP429(t *testing.T) {
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := m.Quotes(context.Background(), []string{"RELIANCE"})
	if kind, ok := usecase.UpstreamKind(err); !ok || kind != usecase.UpstreamRateLimited {
		t.Errorf("expected rate_limited, got %v", err)
	}
}

func TestQuotes_ErrorEnvelopeWith200(t *testing.T) {
	// Plan-limit errors arrive as HTTP 200 with an error body.
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","code":429,"message":"You have run out of API credits"}`))
	})

	_, err := m.Quotes(context.Background(), []string{"RELIANCE"})
	if kind, ok := usecase.UpstreamKind(err); !ok || kind != usecase.UpstreamRateLimited {
		t.Errorf("expected rate_limited from error envelope, got %v", err)
	}
}

func TestQuotes_ServerError(t *testing.T) {
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := m.Quotes(context.Background(), []string{"RELIANCE"})
	if kind, ok := usecase.UpstreamKind(err); !ok || kind != usecase.UpstreamUnreachable {
		t.Errorf("expected unreachable, got %v", err)
	}
}

func TestQuotes_MalformedBody(t *testing.T) {
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"close": `))
	})

	_, err := m.Quotes(context.Background(), []string{"RELIANCE"})
	if kind, ok := usecase.UpstreamKind(err); !ok || kind != usecase.UpstreamMalformed {
		t.Errorf("expected malformed, got %v", err)
	}
}

func TestQuotes_Timeout(t *testing.T) {
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Quotes(ctx, []string{"RELIANCE"})
	if kind, ok := usecase.UpstreamKind(err); !ok || kind != usecase.UpstreamTimeout {
		t.Errorf("expected timeout, got %v", err)
	}
}

func TestExchangeRate_Success(t *testing.T) {
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "USD/INR" {
			t.Errorf("expected symbol=USD/INR, got %q", got)
		}
		w.Write([]byte(`{"symbol":"USD/INR","rate":83.25,"timestamp":1717236000}`))
	})

	rate, err := m.USDINR(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.NewFromFloat(83.25)) {
		t.Errorf("expected 83.25, got %s", rate)
	}
}

func TestExchangeRate_NonPositiveRate(t *testing.T) {
	m := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"USD/INR","rate":0}`))
	})

	_, err := m.USDINR(context.Background())
	if kind, ok := usecase.UpstreamKind(err); !ok || kind != usecase.UpstreamMalformed {
		t.Errorf("expected malformed, got %v", err)
	}
}
