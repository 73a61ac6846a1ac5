package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"finance_backend/internal/feature/quotes/domain/entity"
)

// Normalize converts a raw upstream payload into PriceQuotes.
//
// Stocks pass price and change through unchanged (NSE quotes are already in
// INR). Crypto prices are quoted in USD and converted with the given rate;
// a missing or non-positive rate fails the whole normalization.
// ChangePercent is rounded to two decimal places for display.
//
// The result is deterministic: the same payload, rate, and fetchedAt always
// produce the same sequence.
func Normalize(raw []RawQuote, typ entity.InstrumentType, usdInr decimal.Decimal, fetchedAt time.Time) ([]entity.PriceQuote, error) {
	if !typ.Valid() {
		return nil, ErrUnknownInstrumentType
	}
	if typ == entity.Crypto && usdInr.LessThanOrEqual(decimal.Zero) {
		return nil, ErrMissingConversionRate
	}

	quotes := make([]entity.PriceQuote, 0, len(raw))
	for _, r := range raw {
		if r.Symbol == "" {
			return nil, fmt.Errorf("%w: quote without symbol", ErrUnexpectedShape)
		}
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: price %q for %s", ErrUnexpectedShape, r.Price, r.Symbol)
		}

		change := decimal.Zero
		if r.PercentChange != "" {
			change, err = decimal.NewFromString(r.PercentChange)
			if err != nil {
				return nil, fmt.Errorf("%w: percent_change %q for %s", ErrUnexpectedShape, r.PercentChange, r.Symbol)
			}
		}

		q := entity.PriceQuote{
			Symbol:        r.Symbol,
			Type:          typ,
			PriceLocal:    price,
			ChangePercent: change.Round(2),
			Currency:      r.Currency,
			FetchedAt:     fetchedAt,
		}
		switch typ {
		case entity.Stock:
			q.PriceINR = price
			if q.Currency == "" {
				q.Currency = "INR"
			}
		case entity.Crypto:
			q.PriceINR = price.Mul(usdInr)
			if q.Currency == "" {
				q.Currency = "USD"
			}
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
