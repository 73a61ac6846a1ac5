// Package usecase implements the business logic for the quotes feature:
// upstream fetch orchestration, payload normalization, and snapshot refresh.
package usecase

import (
	"errors"
	"fmt"
)

// UpstreamErrorKind classifies failures when talking to the market-data provider.
type UpstreamErrorKind string

const (
	// UpstreamTimeout indicates the bounded request timeout elapsed.
	UpstreamTimeout UpstreamErrorKind = "timeout"
	// UpstreamRateLimited indicates the provider rejected the call with a rate-limit status.
	UpstreamRateLimited UpstreamErrorKind = "rate_limited"
	// UpstreamMalformed indicates a 2xx response whose body did not match the expected shape.
	UpstreamMalformed UpstreamErrorKind = "malformed"
	// UpstreamUnreachable indicates any other transport or HTTP failure.
	UpstreamUnreachable UpstreamErrorKind = "unreachable"
)

// UpstreamError is returned by MarketRepository implementations. It maps
// provider-specific failures onto a small local taxonomy so upper layers
// never see raw transport errors.
type UpstreamError struct {
	Kind UpstreamErrorKind
	Op   string // upstream operation, e.g. "quote" or "exchange_rate"
	Err  error  // underlying cause, may be nil
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("upstream %s: %s", e.Op, e.Kind)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// UpstreamKind extracts the error kind from an error chain.
// The second return value reports whether an UpstreamError was found.
func UpstreamKind(err error) (UpstreamErrorKind, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind, true
	}
	return "", false
}

var (
	// ErrMissingConversionRate is returned when a crypto refresh cannot obtain
	// a usable USD/INR rate. The whole normalization fails rather than
	// emitting a zero or null converted price.
	ErrMissingConversionRate = errors.New("missing USD/INR conversion rate")

	// ErrUnexpectedShape is returned when an upstream payload field cannot be
	// interpreted as the expected quote shape.
	ErrUnexpectedShape = errors.New("unexpected upstream payload shape")

	// ErrNoData is returned when there is no snapshot at all: the first fetch
	// failed and nothing older can be served.
	ErrNoData = errors.New("no price data available")

	// ErrUnknownInstrumentType is returned for instrument types outside
	// {STOCK, CRYPTO}.
	ErrUnknownInstrumentType = errors.New("unknown instrument type")

	// ErrNoSymbolsConfigured is returned when the allow-list for an
	// instrument type is empty.
	ErrNoSymbolsConfigured = errors.New("no symbols configured for instrument type")
)
