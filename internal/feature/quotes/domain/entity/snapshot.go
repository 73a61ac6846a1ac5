package entity

import "time"

// Snapshot is an immutable, timestamped collection of quotes for one
// instrument type. The refresh controller replaces it atomically on every
// successful refresh; readers never observe a partially updated Snapshot.
type Snapshot struct {
	Quotes []PriceQuote
	AsOf   time.Time
}
