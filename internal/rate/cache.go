package rate

import (
	"context"
	"sync"
	"time"

	"tienda-pos/internal/backend"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Cache memoises the local-per-base exchange rate with a freshness window.
// It is owned by the wiring layer and passed by reference; there is no
// package-level state.
type Cache struct {
	backend  backend.Backend
	logger   zerolog.Logger
	ttl      time.Duration
	fallback decimal.Decimal
	now      func() time.Time

	mu        sync.Mutex
	value     decimal.Decimal
	fetchedAt time.Time
	seq       uint64
	applied   uint64
}

// New creates a rate cache. ttl is the freshness window; fallback is used
// when a fetch fails or yields a non-positive rate.
func New(b backend.Backend, ttl time.Duration, fallback decimal.Decimal, logger zerolog.Logger) *Cache {
	return &Cache{
		backend:  b,
		logger:   logger.With().Str("component", "rate-cache").Logger(),
		ttl:      ttl,
		fallback: fallback,
		now:      time.Now,
	}
}

// Rate returns the cached rate when the last fetch is inside the freshness
// window, refetching otherwise. A failed or non-positive fetch falls back
// to the configured default and still stamps the fetch time, so a broken
// backend is not polled again until the window expires. A fetch that
// finishes after a newer one has already been applied is discarded.
func (c *Cache) Rate(ctx context.Context) decimal.Decimal {
	c.mu.Lock()
	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		v := c.value
		c.mu.Unlock()
		return v
	}
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	fetched, err := c.backend.ExchangeRate(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.applied {
		c.logger.Debug().Uint64("seq", seq).Msg("discarding stale rate fetch")
		return c.value
	}
	c.applied = seq
	c.fetchedAt = c.now()

	switch {
	case err != nil:
		c.logger.Warn().Err(err).
			Str("fallback", c.fallback.String()).
			Msg("rate fetch failed, using fallback")
		c.value = c.fallback
	case !fetched.IsPositive():
		c.logger.Warn().
			Str("rate", fetched.String()).
			Str("fallback", c.fallback.String()).
			Msg("non-positive rate from backend, using fallback")
		c.value = c.fallback
	default:
		c.logger.Debug().Str("rate", fetched.String()).Msg("exchange rate refreshed")
		c.value = fetched
	}
	return c.value
}
