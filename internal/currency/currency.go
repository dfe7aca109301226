// Package currency normalizes monetary amounts into the reporting currency.
//
// Rates are cached for an hour and refreshed from an external provider on
// demand. Conversion never fails: a fetch error falls back to the cached or
// default table, and an unknown currency resolves to the input amount
// unchanged. Recording a transaction must always produce some answer.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/duartefn/moneybook/internal/kv"
	"github.com/duartefn/moneybook/internal/metrics"
)

const (
	ratesKey    = "exchange-rates"
	settingsKey = "currency-settings"

	// cacheTTL is the staleness window after which cached rates are
	// eligible for refresh.
	cacheTTL = time.Hour
)

// Cache is the persisted rate table. Rates are expressed as units of the
// keyed currency per one unit of the reporting currency; the reporting
// currency itself always maps to 1.
type Cache struct {
	Rates      map[string]decimal.Decimal `json:"rates"`
	LastUpdate time.Time                  `json:"lastUpdate"`
}

type settings struct {
	Reporting string `json:"reporting"`
}

// defaultRates is the hardcoded fallback used when a fetch fails and no
// cache exists yet.
func defaultRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"CNY": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("0.14"),
		"EUR": decimal.RequireFromString("0.13"),
	}
}

type Service struct {
	store    kv.Store
	provider RateProvider
	now      func() time.Time

	mu        sync.Mutex
	reporting string
	cache     Cache
}

// NewService restores the persisted reporting currency and rate cache.
// defaultReporting is used when no setting has been stored yet.
func NewService(ctx context.Context, store kv.Store, provider RateProvider, defaultReporting string) (*Service, error) {
	s := &Service{
		store:     store,
		provider:  provider,
		now:       time.Now,
		reporting: strings.ToUpper(defaultReporting),
	}

	raw, err := store.Get(ctx, settingsKey)
	switch {
	case err == nil:
		var st settings
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, fmt.Errorf("decoding currency settings: %w", err)
		}

		if st.Reporting != "" {
			s.reporting = st.Reporting
		}
	case !errors.Is(err, kv.ErrNotFound):
		return nil, fmt.Errorf("loading currency settings: %w", err)
	}

	raw, err = store.Get(ctx, ratesKey)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.cache); err != nil {
			return nil, fmt.Errorf("decoding rate cache: %w", err)
		}
	case !errors.Is(err, kv.ErrNotFound):
		return nil, fmt.Errorf("loading rate cache: %w", err)
	}

	return s, nil
}

// Reporting returns the active reporting currency code.
func (s *Service) Reporting() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reporting
}

// SetReporting changes the reporting currency and invalidates the entire
// rate cache, forcing a fresh fetch on next use.
func (s *Service) SetReporting(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return errors.New("reporting currency is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(settings{Reporting: code})
	if err != nil {
		return fmt.Errorf("encoding currency settings: %w", err)
	}

	if err := s.store.Put(ctx, settingsKey, raw); err != nil {
		return fmt.Errorf("saving currency settings: %w", err)
	}

	if err := s.store.Delete(ctx, ratesKey); err != nil {
		return fmt.Errorf("invalidating rate cache: %w", err)
	}

	s.reporting = code
	s.cache = Cache{}

	return nil
}

// Rates returns the active rate table, refreshing it from the provider when
// the cache is older than an hour. A failed fetch is logged and resolved to
// the previous cache, or the default table when no cache exists.
func (s *Service) Rates(ctx context.Context) map[string]decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Callers get a copy so the cached table is never read or mutated
	// outside the lock.
	return maps.Clone(s.ratesLocked(ctx))
}

func (s *Service) ratesLocked(ctx context.Context) map[string]decimal.Decimal {
	now := s.now()

	if len(s.cache.Rates) > 0 && now.Sub(s.cache.LastUpdate) < cacheTTL {
		return s.cache.Rates
	}

	fetched, err := s.provider.Fetch(ctx, s.reporting)
	if err != nil {
		metrics.RateFetches.WithLabelValues("failure").Inc()
		slog.Warn("rate fetch failed, using cached or default rates",
			"reporting", s.reporting, "error", err)

		if len(s.cache.Rates) == 0 {
			s.cache.Rates = defaultRates()
			s.cache.Rates[s.reporting] = decimal.NewFromInt(1)
		}

		return s.cache.Rates
	}

	metrics.RateFetches.WithLabelValues("success").Inc()

	fetched[s.reporting] = decimal.NewFromInt(1)
	s.cache = Cache{Rates: fetched, LastUpdate: now}

	raw, err := json.Marshal(s.cache)
	if err == nil {
		err = s.store.Put(ctx, ratesKey, raw)
	}

	if err != nil {
		// The fresh table is still usable in memory.
		slog.Warn("failed to persist rate cache", "error", err)
	}

	return s.cache.Rates
}

// ToReporting converts amount from the given currency into the reporting
// currency. The rate is defined as units of `from` per unit of the
// reporting currency, so conversion divides by it. Unknown currencies are
// logged and passed through unchanged.
func (s *Service) ToReporting(ctx context.Context, amount decimal.Decimal, from string) decimal.Decimal {
	from = strings.ToUpper(strings.TrimSpace(from))

	s.mu.Lock()
	defer s.mu.Unlock()

	if from == s.reporting {
		return amount
	}

	rate, ok := s.ratesLocked(ctx)[from]
	if !ok || rate.IsZero() {
		metrics.ConversionFallbacks.Inc()
		slog.Warn("no exchange rate for currency, keeping amount unchanged", "currency", from)

		return amount
	}

	return amount.Div(rate)
}

// FromReporting converts amount from the reporting currency into the given
// currency, with the same unknown-currency fallback as ToReporting.
func (s *Service) FromReporting(ctx context.Context, amount decimal.Decimal, to string) decimal.Decimal {
	to = strings.ToUpper(strings.TrimSpace(to))

	s.mu.Lock()
	defer s.mu.Unlock()

	if to == s.reporting {
		return amount
	}

	rate, ok := s.ratesLocked(ctx)[to]
	if !ok || rate.IsZero() {
		metrics.ConversionFallbacks.Inc()
		slog.Warn("no exchange rate for currency, keeping amount unchanged", "currency", to)

		return amount
	}

	return amount.Mul(rate)
}
