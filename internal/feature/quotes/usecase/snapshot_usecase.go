package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"finance_backend/internal/feature/quotes/domain/entity"
)

// SnapshotState describes the lifecycle of the cached snapshot for one
// instrument type.
type SnapshotState string

const (
	// StateCold means no snapshot has been fetched yet.
	StateCold SnapshotState = "COLD"
	// StateFresh means the snapshot is younger than the staleness interval.
	StateFresh SnapshotState = "FRESH"
	// StateStale means the staleness interval has elapsed since AsOf.
	StateStale SnapshotState = "STALE"
	// StateRefreshing means a fetch is currently in flight.
	StateRefreshing SnapshotState = "REFRESHING"
)

const (
	// DefaultStaleAfter is the staleness interval applied when none is configured.
	DefaultStaleAfter = 60 * time.Second
	// DefaultRefreshGrace bounds how long a reader waits on an in-flight refresh
	// before falling back to the last known snapshot.
	DefaultRefreshGrace = 2 * time.Second
	// DefaultFetchTimeout bounds a single upstream refresh attempt.
	DefaultFetchTimeout = 10 * time.Second
)

// SnapshotConfig carries the per-type symbol allow-lists and the refresh timing knobs.
type SnapshotConfig struct {
	StockSymbols  []string      // NSE tickers shown on the dashboard
	CryptoSymbols []string      // crypto pairs (e.g., "BTC/USD")
	StaleAfter    time.Duration // snapshot age after which a read triggers a refresh
	RefreshGrace  time.Duration // bounded wait on an in-flight refresh
	FetchTimeout  time.Duration // per-refresh upstream budget
}

// typeState is the mutable refresh state for one instrument type.
// Guarded by snapshotUsecase.mu.
type typeState struct {
	snap       *entity.Snapshot
	lastErr    error
	refreshing bool
}

// snapshotUsecase owns the current snapshot per instrument type and decides
// when it must be re-fetched. Staleness is computed lazily on read; there is
// no background timer. At most one upstream fetch per type is in flight at
// any instant, shared by all concurrent callers.
type snapshotUsecase struct {
	market MarketRepository
	rates  RateRepository
	cfg    SnapshotConfig

	now   func() time.Time // injectable clock for tests
	group singleflight.Group

	mu     sync.RWMutex
	states map[entity.InstrumentType]*typeState
}

// NewSnapshotUsecase creates a snapshotUsecase with defaults applied for any
// unset timing knob.
func NewSnapshotUsecase(market MarketRepository, rates RateRepository, cfg SnapshotConfig) *snapshotUsecase {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultStaleAfter
	}
	if cfg.RefreshGrace <= 0 {
		cfg.RefreshGrace = DefaultRefreshGrace
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	return &snapshotUsecase{
		market: market,
		rates:  rates,
		cfg:    cfg,
		now:    time.Now,
		states: map[entity.InstrumentType]*typeState{
			entity.Stock:  {},
			entity.Crypto: {},
		},
	}
}

// GetSnapshot returns the current snapshot for the given type, refreshing it
// first when cold or stale. The second return value flags a snapshot that is
// older than the staleness interval (served because the refresh behind it
// failed or is still running).
func (u *snapshotUsecase) GetSnapshot(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error) {
	if !typ.Valid() {
		return nil, false, ErrUnknownInstrumentType
	}
	snap, state := u.peek(typ)
	if state == StateFresh {
		return snap, false, nil
	}
	return u.await(ctx, typ, snap)
}

// ForceRefresh triggers a refresh regardless of the staleness timer and
// returns the resulting snapshot. Concurrent forces share one upstream fetch.
func (u *snapshotUsecase) ForceRefresh(ctx context.Context, typ entity.InstrumentType) (*entity.Snapshot, bool, error) {
	if !typ.Valid() {
		return nil, false, ErrUnknownInstrumentType
	}
	snap, _ := u.peek(typ)
	return u.await(ctx, typ, snap)
}

// State reports the current lifecycle state for one instrument type.
func (u *snapshotUsecase) State(typ entity.InstrumentType) SnapshotState {
	_, state := u.peek(typ)
	return state
}

// LastError returns the recorded reason for the most recent failed refresh,
// or nil after a successful one.
func (u *snapshotUsecase) LastError(typ entity.InstrumentType) error {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if st, ok := u.states[typ]; ok {
		return st.lastErr
	}
	return nil
}

// peek reads the current snapshot and state without triggering a refresh.
func (u *snapshotUsecase) peek(typ entity.InstrumentType) (*entity.Snapshot, SnapshotState) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	st := u.states[typ]
	switch {
	case st.refreshing:
		return st.snap, StateRefreshing
	case st.snap == nil:
		return nil, StateCold
	case u.now().Sub(st.snap.AsOf) > u.cfg.StaleAfter:
		return st.snap, StateStale
	default:
		return st.snap, StateFresh
	}
}

// isStale reports whether a snapshot is older than the staleness interval.
func (u *snapshotUsecase) isStale(snap *entity.Snapshot) bool {
	return snap != nil && u.now().Sub(snap.AsOf) > u.cfg.StaleAfter
}

// await joins (or starts) the single in-flight refresh for typ and waits for
// it within the grace period. When the refresh fails or outlives the grace
// period, the prior snapshot is served instead of an error; only a cold
// cache with a failed first fetch surfaces ErrNoData.
func (u *snapshotUsecase) await(ctx context.Context, typ entity.InstrumentType, prior *entity.Snapshot) (*entity.Snapshot, bool, error) {
	ch := u.group.DoChan(typ.String(), func() (interface{}, error) {
		return u.refresh(typ)
	})

	grace := time.NewTimer(u.cfg.RefreshGrace)
	defer grace.Stop()

	for {
		select {
		case res := <-ch:
			if res.Err != nil {
				if prior != nil {
					return prior, u.isStale(prior), nil
				}
				return nil, false, fmt.Errorf("%w: %w", ErrNoData, res.Err)
			}
			return res.Val.(*entity.Snapshot), false, nil
		case <-grace.C:
			if prior != nil {
				return prior, u.isStale(prior), nil
			}
			// Cold cache: nothing older to serve, keep waiting on the fetch.
		case <-ctx.Done():
			if prior != nil {
				return prior, u.isStale(prior), nil
			}
			return nil, false, ctx.Err()
		}
	}
}

// refresh performs one upstream fetch + normalization for typ. It runs inside
// the singleflight group and is detached from any caller context so that one
// impatient caller cannot cancel a fetch shared by others.
func (u *snapshotUsecase) refresh(typ entity.InstrumentType) (*entity.Snapshot, error) {
	u.setRefreshing(typ, true)
	defer u.setRefreshing(typ, false)

	ctx, cancel := context.WithTimeout(context.Background(), u.cfg.FetchTimeout)
	defer cancel()

	symbols := u.symbolsFor(typ)
	if len(symbols) == 0 {
		err := fmt.Errorf("%w: %s", ErrNoSymbolsConfigured, typ)
		u.recordFailure(typ, err)
		return nil, err
	}

	raw, err := u.market.Quotes(ctx, symbols)
	if err != nil {
		u.recordFailure(typ, err)
		return nil, err
	}

	rate := decimal.Zero
	if typ == entity.Crypto {
		rate, err = u.rates.USDINR(ctx)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrMissingConversionRate, err)
			u.recordFailure(typ, err)
			return nil, err
		}
	}

	fetchedAt := u.now()
	quotes, err := Normalize(raw, typ, rate, fetchedAt)
	if err != nil {
		u.recordFailure(typ, err)
		return nil, err
	}

	snap := &entity.Snapshot{Quotes: quotes, AsOf: fetchedAt}

	u.mu.Lock()
	st := u.states[typ]
	// AsOf never decreases: an out-of-order result must not clobber a newer snapshot.
	if st.snap == nil || !snap.AsOf.Before(st.snap.AsOf) {
		st.snap = snap
	}
	st.lastErr = nil
	u.mu.Unlock()

	slog.Info("snapshot refreshed", "type", typ, "quotes", len(quotes), "as_of", fetchedAt)
	return snap, nil
}

// recordFailure stores the refresh failure reason for observability. The
// prior snapshot, if any, is left untouched.
func (u *snapshotUsecase) recordFailure(typ entity.InstrumentType, err error) {
	u.mu.Lock()
	u.states[typ].lastErr = err
	u.mu.Unlock()
	slog.Warn("snapshot refresh failed", "type", typ, "error", err)
}

func (u *snapshotUsecase) setRefreshing(typ entity.InstrumentType, v bool) {
	u.mu.Lock()
	u.states[typ].refreshing = v
	u.mu.Unlock()
}

func (u *snapshotUsecase) symbolsFor(typ entity.InstrumentType) []string {
	if typ == entity.Crypto {
		return u.cfg.CryptoSymbols
	}
	return u.cfg.StockSymbols
}
