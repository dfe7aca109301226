package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/duartefn/moneybook/internal/auth"
	authhttp "github.com/duartefn/moneybook/internal/http/auth"
	backuphttp "github.com/duartefn/moneybook/internal/http/backup"
	categoryhttp "github.com/duartefn/moneybook/internal/http/category"
	currencyhttp "github.com/duartefn/moneybook/internal/http/currency"
	goalhttp "github.com/duartefn/moneybook/internal/http/goal"
	ledgerhttp "github.com/duartefn/moneybook/internal/http/ledger"
	"github.com/duartefn/moneybook/internal/http/middleware"
	transactionhttp "github.com/duartefn/moneybook/internal/http/transaction"
	"github.com/duartefn/moneybook/internal/metrics"
)

func New(
	tokens *auth.Manager,
	authV1 *authhttp.Handler,
	ledgersV1 *ledgerhttp.Handler,
	transactionsV1 *transactionhttp.Handler,
	goalsV1 *goalhttp.Handler,
	categoriesV1 *categoryhttp.Handler,
	currencyV1 *currencyhttp.Handler,
	backupV1 *backuphttp.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Handle("/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))

			r.Route("/ledgers", func(r chi.Router) {
				ledgersV1.Routes(r)

				r.Route("/{ledgerID}/transactions", transactionsV1.Routes)
				r.Route("/{ledgerID}/goals", goalsV1.Routes)
				r.Route("/{ledgerID}/categories", categoriesV1.Routes)
				backupV1.Routes(r)
			})

			r.Route("/currency", currencyV1.Routes)
			r.Route("/backup", backupV1.SnapshotRoutes)
		})
	})

	return router
}
