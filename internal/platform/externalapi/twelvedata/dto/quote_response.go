// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// Quote represents one quote object from the Twelve Data /quote endpoint.
// Numeric fields arrive as strings and are parsed downstream.
type Quote struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name,omitempty"`
	Currency      string `json:"currency"`
	Close         string `json:"close"`
	PercentChange string `json:"percent_change"`

	// Per-symbol error envelope used by the batch form of /quote.
	Status  string `json:"status,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// ExchangeRateResponse represents the JSON response from /exchange_rate.
type ExchangeRateResponse struct {
	Symbol    string  `json:"symbol"`
	Rate      float64 `json:"rate"`
	Timestamp int64   `json:"timestamp"`

	Status  string `json:"status,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
