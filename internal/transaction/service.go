package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/duartefn/moneybook/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	// LoadTransactions returns the full ordered sequence for one ledger,
	// newest first. Absent data yields an empty sequence.
	LoadTransactions(ctx context.Context, ledgerID string) ([]Transaction, error)

	// SaveTransactions overwrites the full sequence for one ledger.
	SaveTransactions(ctx context.Context, ledgerID string, txs []Transaction) error
}

// Converter normalizes an amount into the reporting currency. Conversion
// never fails; unknown currencies resolve to the input unchanged.
type Converter interface {
	ToReporting(ctx context.Context, amount decimal.Decimal, from string) decimal.Decimal
}

// Snapshotter writes the automatic per-user backup after every mutation.
type Snapshotter interface {
	Snapshot(ctx context.Context, user string, txs []Transaction) error
}

type Service struct {
	repo      Repository
	converter Converter
	snapshots Snapshotter
	now       func() time.Time
}

func NewService(repo Repository, converter Converter, snapshots Snapshotter) *Service {
	return &Service{
		repo:      repo,
		converter: converter,
		snapshots: snapshots,
		now:       time.Now,
	}
}

type AddParams struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	Currency    string
	Type        Type
	Date        time.Time
	User        string
	LedgerID    string
}

func (p AddParams) validate() error {
	switch {
	case p.Description == "":
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	case p.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	case p.Currency == "":
		return fmt.Errorf("%w: currency is required", ErrInvalidInput)
	case p.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	case !p.Type.Valid():
		return fmt.Errorf("%w: type must be income or expense", ErrInvalidInput)
	case !p.Amount.IsPositive():
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	}

	return nil
}

// Add converts the amount into the reporting currency, signs it by type and
// prepends the transaction to the ledger's sequence (newest first).
func (s *Service) Add(ctx context.Context, params AddParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	amount := s.converter.ToReporting(ctx, params.Amount, params.Currency)
	if params.Type == TypeExpense {
		amount = amount.Neg()
	}

	tx := Transaction{
		ID:               uuid.NewString(),
		Description:      params.Description,
		Amount:           amount,
		OriginalAmount:   params.Amount,
		OriginalCurrency: params.Currency,
		Category:         params.Category,
		Type:             params.Type,
		Date:             params.Date,
		RecordedBy:       params.User,
		LedgerID:         params.LedgerID,
	}

	txs, err := s.repo.LoadTransactions(ctx, params.LedgerID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	txs = append([]Transaction{tx}, txs...)

	if err := s.repo.SaveTransactions(ctx, params.LedgerID, txs); err != nil {
		return nil, fmt.Errorf("saving transactions: %w", err)
	}

	s.snapshot(ctx, params.User, txs)
	metrics.TransactionsRecorded.Inc()

	return &tx, nil
}

// Delete removes a transaction by id.
func (s *Service) Delete(ctx context.Context, user, ledgerID, id string) error {
	txs, err := s.repo.LoadTransactions(ctx, ledgerID)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	kept := txs[:0:0]

	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}

	if len(kept) == len(txs) {
		return ErrNotFound
	}

	if err := s.repo.SaveTransactions(ctx, ledgerID, kept); err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}

	s.snapshot(ctx, user, kept)

	return nil
}

// snapshot failures must not fail the primary operation.
func (s *Service) snapshot(ctx context.Context, user string, txs []Transaction) {
	if s.snapshots == nil {
		return
	}

	if err := s.snapshots.Snapshot(ctx, user, txs); err != nil {
		slog.Warn("automatic backup failed", "user", user, "error", err)
	}
}

// List returns the ledger's sequence, newest first.
func (s *Service) List(ctx context.Context, ledgerID string) ([]Transaction, error) {
	return s.repo.LoadTransactions(ctx, ledgerID)
}

// Balance is the sum of all amounts in the ledger's sequence.
func (s *Service) Balance(ctx context.Context, ledgerID string) (decimal.Decimal, error) {
	txs, err := s.repo.LoadTransactions(ctx, ledgerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("loading transactions: %w", err)
	}

	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(tx.Amount)
	}

	return balance, nil
}

// Summary aggregates income and expense over a period. Expense is reported
// as an absolute value.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net is income minus expense.
func (s Summary) Net() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

func (s *Service) Summarize(ctx context.Context, ledgerID string, period Period) (Summary, error) {
	txs, err := s.repo.LoadTransactions(ctx, ledgerID)
	if err != nil {
		return Summary{}, fmt.Errorf("loading transactions: %w", err)
	}

	return summarize(txs, period), nil
}

func summarize(txs []Transaction, period Period) Summary {
	var out Summary

	for _, tx := range txs {
		if !period(tx.Date) {
			continue
		}

		switch tx.Type {
		case TypeIncome:
			out.Income = out.Income.Add(tx.Amount)
		case TypeExpense:
			out.Expense = out.Expense.Add(tx.Amount.Abs())
		}
	}

	return out
}

// CategoryTotal is one row of the expense breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CategoryBreakdown totals expenses per category over a period, largest
// first.
func (s *Service) CategoryBreakdown(ctx context.Context, ledgerID string, period Period) ([]CategoryTotal, error) {
	txs, err := s.repo.LoadTransactions(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	totals := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if tx.Type != TypeExpense || !period(tx.Date) {
			continue
		}

		totals[tx.Category] = totals[tx.Category].Add(tx.Amount.Abs())
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}

		return out[i].Category < out[j].Category
	})

	return out, nil
}

// MonthTotal is one month of the yearly trend.
type MonthTotal struct {
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// MonthlyTrend returns one row per calendar month of the given year.
func (s *Service) MonthlyTrend(ctx context.Context, ledgerID string, year int) ([]MonthTotal, error) {
	txs, err := s.repo.LoadTransactions(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	out := make([]MonthTotal, 0, 12)

	for month := time.January; month <= time.December; month++ {
		sum := summarize(txs, Month(year, month))
		out = append(out, MonthTotal{
			Month:   month,
			Income:  sum.Income,
			Expense: sum.Expense,
			Net:     sum.Net(),
		})
	}

	return out, nil
}
