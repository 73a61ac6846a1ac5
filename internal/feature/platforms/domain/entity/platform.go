// Package entity defines the investment platform comparison model.
package entity

// Platform describes one brokerage or exchange shown on the comparison page.
type Platform struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"` // "stocks", "crypto", or "both"
	Brokerage  string   `json:"brokerage"`
	AccountFee string   `json:"account_fee"`
	Rating     float64  `json:"rating"`
	Features   []string `json:"features"`
}
