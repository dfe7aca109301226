package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duartefn/moneybook/internal/kv/memory"
)

type providerFunc func(ctx context.Context, base string) (map[string]decimal.Decimal, error)

func (f providerFunc) Fetch(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	return f(ctx, base)
}

func fixedRates(rates map[string]string) providerFunc {
	return func(_ context.Context, _ string) (map[string]decimal.Decimal, error) {
		out := make(map[string]decimal.Decimal, len(rates))
		for code, r := range rates {
			out[code] = decimal.RequireFromString(r)
		}

		return out, nil
	}
}

func failingProvider() providerFunc {
	return func(_ context.Context, _ string) (map[string]decimal.Decimal, error) {
		return nil, errors.New("provider unreachable")
	}
}

func newTestService(t *testing.T, provider RateProvider) *Service {
	t.Helper()

	svc, err := NewService(context.Background(), memory.New(), provider, "CNY")
	require.NoError(t, err)

	return svc
}

func TestService_RatesFreshCacheNotRefetched(t *testing.T) {
	calls := 0
	provider := providerFunc(func(_ context.Context, _ string) (map[string]decimal.Decimal, error) {
		calls++
		return map[string]decimal.Decimal{"USD": decimal.RequireFromString("0.14")}, nil
	})

	svc := newTestService(t, provider)
	ctx := context.Background()

	svc.Rates(ctx)
	svc.Rates(ctx)

	assert.Equal(t, 1, calls, "cache younger than an hour must be reused")
}

func TestService_RatesReturnsCopy(t *testing.T) {
	svc := newTestService(t, fixedRates(map[string]string{"USD": "0.14"}))
	ctx := context.Background()

	got := svc.Rates(ctx)
	got["USD"] = decimal.NewFromInt(99)
	delete(got, "CNY")

	fresh := svc.Rates(ctx)
	assert.True(t, fresh["USD"].Equal(decimal.RequireFromString("0.14")), "caller mutation must not reach the cache")
	assert.True(t, fresh["CNY"].Equal(decimal.NewFromInt(1)))
}

func TestService_RatesStaleCacheRefetched(t *testing.T) {
	calls := 0
	provider := providerFunc(func(_ context.Context, _ string) (map[string]decimal.Decimal, error) {
		calls++
		return map[string]decimal.Decimal{"USD": decimal.RequireFromString("0.14")}, nil
	})

	svc := newTestService(t, provider)
	ctx := context.Background()

	now := time.Now()
	svc.now = func() time.Time { return now }
	svc.Rates(ctx)

	svc.now = func() time.Time { return now.Add(61 * time.Minute) }
	svc.Rates(ctx)

	assert.Equal(t, 2, calls)
}

func TestService_RatesForcesReportingToOne(t *testing.T) {
	svc := newTestService(t, fixedRates(map[string]string{
		"CNY": "0.99", // provider quirk, must be overridden
		"USD": "0.14",
	}))

	rates := svc.Rates(context.Background())
	assert.True(t, rates["CNY"].Equal(decimal.NewFromInt(1)))
}

func TestService_RatesFallbackOnFetchFailure(t *testing.T) {
	svc := newTestService(t, failingProvider())

	rates := svc.Rates(context.Background())

	// Empty cache resolves to the hardcoded default table.
	assert.True(t, rates["CNY"].Equal(decimal.NewFromInt(1)))
	assert.True(t, rates["USD"].Equal(decimal.RequireFromString("0.14")))
	assert.True(t, rates["EUR"].Equal(decimal.RequireFromString("0.13")))
}

func TestService_RatesFallbackKeepsExistingCache(t *testing.T) {
	calls := 0
	provider := providerFunc(func(_ context.Context, _ string) (map[string]decimal.Decimal, error) {
		calls++
		if calls == 1 {
			return map[string]decimal.Decimal{"USD": decimal.RequireFromString("0.15")}, nil
		}

		return nil, errors.New("provider unreachable")
	})

	svc := newTestService(t, provider)
	ctx := context.Background()

	now := time.Now()
	svc.now = func() time.Time { return now }
	svc.Rates(ctx)

	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	rates := svc.Rates(ctx)

	assert.True(t, rates["USD"].Equal(decimal.RequireFromString("0.15")),
		"failed refresh must keep the previous table")
}

func TestService_ToReporting(t *testing.T) {
	svc := newTestService(t, fixedRates(map[string]string{"USD": "0.14"}))
	ctx := context.Background()

	t.Run("Identity", func(t *testing.T) {
		got := svc.ToReporting(ctx, decimal.NewFromInt(250), "CNY")
		assert.True(t, got.Equal(decimal.NewFromInt(250)))
	})

	t.Run("DividesByRate", func(t *testing.T) {
		got := svc.ToReporting(ctx, decimal.NewFromInt(100), "USD")
		assert.Equal(t, "714.29", got.StringFixed(2))
	})

	t.Run("UnknownCurrencyPassthrough", func(t *testing.T) {
		got := svc.ToReporting(ctx, decimal.NewFromInt(100), "GBP")
		assert.True(t, got.Equal(decimal.NewFromInt(100)))
	})
}

func TestService_ConversionRoundTrip(t *testing.T) {
	svc := newTestService(t, fixedRates(map[string]string{"USD": "0.14", "EUR": "0.13"}))
	ctx := context.Background()

	for _, code := range []string{"USD", "EUR"} {
		in := decimal.RequireFromString("123.45")
		out := svc.ToReporting(ctx, svc.FromReporting(ctx, in, code), code)

		diff := out.Sub(in).Abs()
		assert.True(t, diff.LessThan(decimal.RequireFromString("0.0000001")),
			"round trip for %s drifted by %s", code, diff)
	}
}

func TestService_SetReportingInvalidatesCache(t *testing.T) {
	calls := 0
	provider := providerFunc(func(_ context.Context, base string) (map[string]decimal.Decimal, error) {
		calls++
		return map[string]decimal.Decimal{"USD": decimal.RequireFromString("0.14")}, nil
	})

	svc := newTestService(t, provider)
	ctx := context.Background()

	svc.Rates(ctx)
	require.NoError(t, svc.SetReporting(ctx, "usd"))

	assert.Equal(t, "USD", svc.Reporting())

	svc.Rates(ctx)
	assert.Equal(t, 2, calls, "changing the reporting currency must force a fresh fetch")
}

func TestService_ReportingRestoredFromStore(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	first, err := NewService(ctx, store, failingProvider(), "CNY")
	require.NoError(t, err)
	require.NoError(t, first.SetReporting(ctx, "EUR"))

	second, err := NewService(ctx, store, failingProvider(), "CNY")
	require.NoError(t, err)
	assert.Equal(t, "EUR", second.Reporting())
}
