// Package entity defines the domain models for the quotes feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentType identifies the kind of instrument a quote belongs to.
type InstrumentType string

const (
	// Stock is an NSE-listed equity quoted directly in INR.
	Stock InstrumentType = "STOCK"
	// Crypto is a cryptocurrency quoted upstream in USD and converted to INR.
	Crypto InstrumentType = "CRYPTO"
)

// String returns the type as its wire representation.
func (t InstrumentType) String() string { return string(t) }

// Valid reports whether t is one of the known instrument types.
func (t InstrumentType) Valid() bool { return t == Stock || t == Crypto }

// PriceQuote is a single normalized price for one symbol.
// A quote is immutable once constructed; a new fetch produces new values.
type PriceQuote struct {
	Symbol        string          // Ticker symbol (e.g., "TCS", "BTC/USD")
	Type          InstrumentType  // STOCK or CRYPTO
	PriceLocal    decimal.Decimal // Price in the source currency
	PriceINR      decimal.Decimal // Price converted to the display currency (INR)
	ChangePercent decimal.Decimal // Day change, rounded to two decimal places
	Currency      string          // Source currency code (e.g., "INR", "USD")
	FetchedAt     time.Time       // When the upstream payload was fetched
}
