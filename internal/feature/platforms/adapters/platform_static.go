// Package adapters provides the platform catalog implementation.
package adapters

import (
	"context"

	"finance_backend/internal/feature/platforms/domain/entity"
	"finance_backend/internal/feature/platforms/usecase"
)

// platformStatic serves a curated, in-process catalog. The comparison data
// changes rarely enough that a code change per revision is acceptable.
type platformStatic struct {
	platforms []entity.Platform
}

// Compile-time check that platformStatic satisfies usecase.PlatformRepository.
var _ usecase.PlatformRepository = (*platformStatic)(nil)

// NewPlatformRepository creates the static platform catalog.
func NewPlatformRepository() *platformStatic {
	return &platformStatic{platforms: []entity.Platform{
		{
			Name:       "Zerodha",
			Type:       "stocks",
			Brokerage:  "0.03% or Rs 20 per executed order, whichever is lower",
			AccountFee: "Rs 300 per year",
			Rating:     4.5,
			Features:   []string{"Kite trading platform", "Coin for mutual funds", "Console reporting"},
		},
		{
			Name:       "Groww",
			Type:       "both",
			Brokerage:  "Rs 20 or 0.05% per executed order, whichever is lower",
			AccountFee: "Free",
			Rating:     4.3,
			Features:   []string{"Stocks and mutual funds", "Simple onboarding", "No account opening fee"},
		},
		{
			Name:       "Upstox",
			Type:       "stocks",
			Brokerage:  "Rs 20 per executed order",
			AccountFee: "Free",
			Rating:     4.2,
			Features:   []string{"Pro web and mobile platforms", "Margin trading", "IPO applications"},
		},
		{
			Name:       "Angel One",
			Type:       "stocks",
			Brokerage:  "Rs 20 per executed order",
			AccountFee: "Free for first year",
			Rating:     4.0,
			Features:   []string{"SmartAPI access", "Advisory services", "Wide branch network"},
		},
		{
			Name:       "WazirX",
			Type:       "crypto",
			Brokerage:  "0.2% per trade",
			AccountFee: "Free",
			Rating:     3.9,
			Features:   []string{"INR deposits", "Large coin selection", "P2P trading"},
		},
		{
			Name:       "CoinDCX",
			Type:       "crypto",
			Brokerage:  "0.1% to 0.5% per trade",
			AccountFee: "Free",
			Rating:     4.1,
			Features:   []string{"Futures trading", "Staking", "Instant INR withdrawals"},
		},
	}}
}

// List returns every platform in the catalog.
func (r *platformStatic) List(ctx context.Context) ([]entity.Platform, error) {
	out := make([]entity.Platform, len(r.platforms))
	copy(out, r.platforms)
	return out, nil
}
