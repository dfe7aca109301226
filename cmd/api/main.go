package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/duartefn/moneybook/internal/auth"
	"github.com/duartefn/moneybook/internal/backup"
	"github.com/duartefn/moneybook/internal/category"
	"github.com/duartefn/moneybook/internal/config"
	"github.com/duartefn/moneybook/internal/currency"
	"github.com/duartefn/moneybook/internal/database"
	"github.com/duartefn/moneybook/internal/goal"
	goalStore "github.com/duartefn/moneybook/internal/goal/store"
	moneybookHttp "github.com/duartefn/moneybook/internal/http"
	authHandler "github.com/duartefn/moneybook/internal/http/auth"
	backupHandler "github.com/duartefn/moneybook/internal/http/backup"
	categoryHandler "github.com/duartefn/moneybook/internal/http/category"
	currencyHandler "github.com/duartefn/moneybook/internal/http/currency"
	goalHandler "github.com/duartefn/moneybook/internal/http/goal"
	ledgerHandler "github.com/duartefn/moneybook/internal/http/ledger"
	txHandler "github.com/duartefn/moneybook/internal/http/transaction"
	"github.com/duartefn/moneybook/internal/invite"
	"github.com/duartefn/moneybook/internal/kv"
	kvPostgres "github.com/duartefn/moneybook/internal/kv/postgres"
	kvSqlite "github.com/duartefn/moneybook/internal/kv/sqlite"
	"github.com/duartefn/moneybook/internal/ledger"
	ledgerStore "github.com/duartefn/moneybook/internal/ledger/store"
	"github.com/duartefn/moneybook/internal/transaction"
	txStore "github.com/duartefn/moneybook/internal/transaction/store"
	"github.com/duartefn/moneybook/internal/user"
	userStore "github.com/duartefn/moneybook/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log.Format)

	db, store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	currencyService, err := currency.NewService(ctx, store,
		currency.NewHTTPProvider(cfg.Currency.ProviderURL, cfg.Currency.FetchTimeout),
		cfg.Currency.Reporting)
	if err != nil {
		slog.Error("failed to init currency service", "error", err)
		os.Exit(1)
	}

	var sender invite.Sender = invite.NopSender{}
	if cfg.Mail.WebhookURL != "" {
		sender = invite.NewWebhookSender(cfg.Mail.WebhookURL, cfg.Mail.InviteBaseURL)
	}

	var (
		transactions = txStore.New(store)
		registry     = category.NewRegistry(store)

		backupService      = backup.NewService(store, transactions)
		transactionService = transaction.NewService(transactions, currencyService, backupService)
		goalService        = goal.NewService(goalStore.New(store), transactions)
		ledgerService      = ledger.NewService(ledgerStore.New(store),
			txPurger{transactions}, goalService, registry)
		userService = user.NewService(userStore.New(store), sender)
		tokens      = auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	)

	router := moneybookHttp.New(
		tokens,
		authHandler.NewHandler(userService, tokens),
		ledgerHandler.NewHandler(ledgerService, sender),
		txHandler.NewHandler(transactionService, ledgerService),
		goalHandler.NewHandler(goalService, ledgerService),
		categoryHandler.NewHandler(registry, ledgerService),
		currencyHandler.NewHandler(currencyService),
		backupHandler.NewHandler(backupService, transactionService, ledgerService, currencyService),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "pretty" {
		handler = tint.NewHandler(os.Stderr, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))
}

func openStore(cfg *config.Config) (*sql.DB, kv.Store, error) {
	switch cfg.DB.Driver {
	case "postgres":
		db, err := database.NewPostgres(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}
		store, err := kvPostgres.New(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, store, nil
	case "sqlite":
		db, err := database.NewSQLite(cfg.DB.Path)
		if err != nil {
			return nil, nil, err
		}
		store, err := kvSqlite.New(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.DB.Driver)
	}
}

// txPurger adapts the transaction store to the ledger cascade hook,
// which passes the owner alongside the ledger id.
type txPurger struct {
	store *txStore.Store
}

func (p txPurger) Purge(ctx context.Context, _, ledgerID string) error {
	return p.store.Purge(ctx, ledgerID)
}
