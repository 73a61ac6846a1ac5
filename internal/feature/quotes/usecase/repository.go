package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// RawQuote is one entry of the upstream payload before normalization.
// Numeric fields stay as strings on purpose: parsing and validation belong
// to the normalizer, not the transport client.
type RawQuote struct {
	Symbol        string
	Price         string
	PercentChange string
	Currency      string
}

// MarketRepository abstracts the upstream market-data provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// Quotes fetches the raw quote payload for the given symbols.
	// Implementations apply a bounded request timeout, never retry, and
	// classify failures as *UpstreamError.
	Quotes(ctx context.Context, symbols []string) ([]RawQuote, error)
}

// RateRepository supplies the USD/INR conversion rate applied to crypto quotes.
type RateRepository interface {
	USDINR(ctx context.Context) (decimal.Decimal, error)
}
