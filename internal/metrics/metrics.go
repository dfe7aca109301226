// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TransactionsRecorded counts transactions appended to any ledger.
	TransactionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneybook_transactions_recorded_total",
		Help: "Number of transactions recorded.",
	})

	// RateFetches counts exchange-rate fetch attempts by outcome
	// (success, failure).
	RateFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moneybook_rate_fetches_total",
		Help: "Number of exchange-rate fetch attempts.",
	}, []string{"outcome"})

	// ConversionFallbacks counts conversions that returned the input
	// unchanged because the currency had no cached rate.
	ConversionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneybook_conversion_fallbacks_total",
		Help: "Number of degraded-mode currency conversions.",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
