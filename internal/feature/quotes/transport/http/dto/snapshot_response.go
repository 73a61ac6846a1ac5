// Package dto defines the response payloads for the quote endpoints.
package dto

import "time"

// QuoteResponse is one formatted price row for the dashboard.
type QuoteResponse struct {
	Symbol        string `json:"symbol"`
	Type          string `json:"type"`
	Price         string `json:"price"`     // source currency, two decimals
	PriceINR      string `json:"price_inr"` // display currency, two decimals
	Currency      string `json:"currency"`
	ChangePercent string `json:"change_percent"`
	Direction     string `json:"direction"` // "up", "down", or "flat"
}

// SnapshotResponse is the body of GET /quotes/:type.
type SnapshotResponse struct {
	AsOf   time.Time       `json:"as_of"`
	Stale  bool            `json:"stale"`
	Quotes []QuoteResponse `json:"quotes"`
}
