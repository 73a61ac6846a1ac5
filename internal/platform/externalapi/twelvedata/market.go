package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"finance_backend/internal/feature/quotes/usecase"
	"finance_backend/internal/platform/externalapi/twelvedata/dto"
)

// TwelveDataMarket fetches quote and exchange-rate payloads from the
// Twelve Data API. It classifies every failure into the upstream error
// taxonomy and never retries; retry policy belongs to the caller.
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
}

// Compile-time checks that TwelveDataMarket implements the quote repositories.
var (
	_ usecase.MarketRepository = (*TwelveDataMarket)(nil)
	_ usecase.RateRepository   = (*TwelveDataMarket)(nil)
)

// NewTwelveDataMarket creates a TwelveDataMarket with the given configuration
// and HTTP client.
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// Quotes fetches the raw quote payload for the given symbols, preserving the
// requested order in the result.
func (t *TwelveDataMarket) Quotes(ctx context.Context, symbols []string) ([]usecase.RawQuote, error) {
	if len(symbols) == 0 {
		return nil, errors.New("twelvedata: no symbols requested")
	}

	q := url.Values{}
	q.Set("symbol", strings.Join(symbols, ","))
	q.Set("apikey", t.cfg.APIKey)
	u := fmt.Sprintf("%s/quote?%s", t.cfg.BaseURL, q.Encode())

	body, err := t.get(ctx, "quote", u)
	if err != nil {
		return nil, err
	}

	// An API-level error (invalid key, plan limit) arrives as 200 with an
	// error envelope instead of quote data.
	if err := apiError(body, "quote"); err != nil {
		return nil, err
	}

	// The /quote endpoint is polymorphic: a single symbol yields one flat
	// quote object, several yield an object keyed by symbol.
	if len(symbols) == 1 {
		var one dto.Quote
		if err := json.Unmarshal(body, &one); err != nil {
			return nil, &usecase.UpstreamError{Kind: usecase.UpstreamMalformed, Op: "quote", Err: err}
		}
		return []usecase.RawQuote{rawQuote(symbols[0], one)}, nil
	}

	var batch map[string]dto.Quote
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, &usecase.UpstreamError{Kind: usecase.UpstreamMalformed, Op: "quote", Err: err}
	}

	out := make([]usecase.RawQuote, 0, len(symbols))
	for _, s := range symbols {
		entry, ok := batch[s]
		if !ok {
			return nil, &usecase.UpstreamError{Kind: usecase.UpstreamMalformed, Op: "quote", Err: fmt.Errorf("symbol %s missing from response", s)}
		}
		if entry.Status == "error" {
			return nil, &usecase.UpstreamError{Kind: usecase.UpstreamMalformed, Op: "quote", Err: fmt.Errorf("symbol %s: %s", s, entry.Message)}
		}
		out = append(out, rawQuote(s, entry))
	}
	return out, nil
}

// USDINR fetches the USD/INR conversion rate.
func (t *TwelveDataMarket) USDINR(ctx context.Context) (decimal.Decimal, error) {
	return t.ExchangeRate(ctx, "USD/INR")
}

// ExchangeRate fetches the current rate for a currency pair such as "USD/INR".
func (t *TwelveDataMarket) ExchangeRate(ctx context.Context, pair string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("symbol", pair)
	q.Set("apikey", t.cfg.APIKey)
	u := fmt.Sprintf("%s/exchange_rate?%s", t.cfg.BaseURL, q.Encode())

	body, err := t.get(ctx, "exchange_rate", u)
	if err != nil {
		return decimal.Zero, err
	}
	if err := apiError(body, "exchange_rate"); err != nil {
		return decimal.Zero, err
	}

	var out dto.ExchangeRateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return decimal.Zero, &usecase.UpstreamError{Kind: usecase.UpstreamMalformed, Op: "exchange_rate", Err: err}
	}
	if out.Rate <= 0 {
		return decimal.Zero, &usecase.UpstreamError{Kind: usecase.UpstreamMalformed, Op: "exchange_rate", Err: fmt.Errorf("non-positive rate %v for %s", out.Rate, pair)}
	}
	return decimal.NewFromFloat(out.Rate), nil
}

// get performs one GET request and maps transport and status failures onto
// the upstream error taxonomy.
func (t *TwelveDataMarket) get(ctx context.Context, op, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &usecase.UpstreamError{Kind: usecase.UpstreamUnreachable, Op: op, Err: err}
	}

	res, err := t.client.Do(req)
	if err != nil {
		kind := usecase.UpstreamUnreachable
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			kind = usecase.UpstreamTimeout
		}
		return nil, &usecase.UpstreamError{Kind: kind, Op: op, Err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return nil, &usecase.UpstreamError{Kind: usecase.UpstreamRateLimited, Op: op, Err: fmt.Errorf("http %d", res.StatusCode)}
	case res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices:
		return nil, &usecase.UpstreamError{Kind: usecase.UpstreamUnreachable, Op: op, Err: fmt.Errorf("http %d", res.StatusCode)}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		kind := usecase.UpstreamUnreachable
		if errors.Is(err, context.DeadlineExceeded) {
			kind = usecase.UpstreamTimeout
		}
		return nil, &usecase.UpstreamError{Kind: kind, Op: op, Err: err}
	}
	return body, nil
}

// apiError detects the 200-with-error-envelope responses the API uses for
// key, plan, and credit problems.
func apiError(body []byte, op string) error {
	var env struct {
		Status  string `json:"status"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Status != "error" {
		return nil
	}
	kind := usecase.UpstreamUnreachable
	if env.Code == http.StatusTooManyRequests {
		kind = usecase.UpstreamRateLimited
	}
	return &usecase.UpstreamError{Kind: kind, Op: op, Err: fmt.Errorf("twelvedata %d: %s", env.Code, env.Message)}
}

func rawQuote(symbol string, q dto.Quote) usecase.RawQuote {
	if q.Symbol != "" {
		symbol = q.Symbol
	}
	return usecase.RawQuote{
		Symbol:        symbol,
		Price:         q.Close,
		PercentChange: q.PercentChange,
		Currency:      q.Currency,
	}
}
