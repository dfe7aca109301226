// Package backup handles automatic snapshots, file exports and restores
// of a ledger's transaction history.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/duartefn/moneybook/internal/currency"
	"github.com/duartefn/moneybook/internal/encoding"
	"github.com/duartefn/moneybook/internal/kv"
	"github.com/duartefn/moneybook/internal/transaction"
)

const (
	keyPrefix = "backup-"
	version   = "1.0"
)

var ErrMalformed = errors.New("malformed backup file")

// Snapshot is the document written after every transaction mutation.
type Snapshot struct {
	User         string                    `json:"user"`
	Transactions []transaction.Transaction `json:"transactions"`
	BackupTime   time.Time                 `json:"backupTime"`
	Version      string                    `json:"version"`
}

// TransactionWriter replaces a ledger's transaction sequence.
type TransactionWriter interface {
	SaveTransactions(ctx context.Context, ledgerID string, txs []transaction.Transaction) error
}

// Service writes snapshots under backup-{user} and turns transaction
// histories into downloadable files.
type Service struct {
	kv  kv.Store
	txs TransactionWriter
	now func() time.Time
}

func NewService(store kv.Store, txs TransactionWriter) *Service {
	return &Service{kv: store, txs: txs, now: time.Now}
}

// Snapshot persists the user's latest transaction state. It satisfies
// the snapshotter hook of the transaction service.
func (s *Service) Snapshot(ctx context.Context, user string, txs []transaction.Transaction) error {
	snap := Snapshot{
		User:         user,
		Transactions: txs,
		BackupTime:   s.now(),
		Version:      version,
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := s.kv.Put(ctx, keyPrefix+user, raw); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Latest returns the user's most recent snapshot.
func (s *Service) Latest(ctx context.Context, user string) (Snapshot, error) {
	raw, err := s.kv.Get(ctx, keyPrefix+user)
	if errors.Is(err, kv.ErrNotFound) {
		return Snapshot{}, fmt.Errorf("no snapshot for %s: %w", user, err)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}

// ExportJSON writes the full-fidelity transaction array. The output
// round-trips through Restore without loss.
func (s *Service) ExportJSON(w io.Writer, txs []transaction.Transaction) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	doc := struct {
		Transactions []transaction.Transaction `json:"transactions"`
	}{Transactions: txs}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// ExportXLSX writes a spreadsheet with one row per transaction.
func (s *Service) ExportXLSX(w io.Writer, txs []transaction.Transaction, reportingCurrency string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("dropping default sheet: %w", err)
	}

	headers := []string{"Date", "Type", "Category", "Description", "Amount (" + reportingCurrency + ")", "Original Amount", "Original Currency", "Recorded By"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("naming header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for idx, tx := range txs {
		row := idx + 2
		original := ""
		if !tx.OriginalAmount.IsZero() && tx.OriginalCurrency != reportingCurrency {
			original = currency.Format(tx.OriginalAmount, tx.OriginalCurrency)
		}
		values := []any{
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			tx.Category,
			tx.Description,
			tx.Amount.StringFixed(2),
			original,
			tx.OriginalCurrency,
			tx.RecordedBy,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("naming cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "D", "D", 30)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}
	return nil
}

// Restore replaces a ledger's transactions with the contents of an
// exported file. The upload is normalized to UTF-8 first and must carry
// a top-level transactions array; anything else leaves the ledger
// untouched.
func (s *Service) Restore(ctx context.Context, ledgerID string, r io.Reader) (int, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var doc struct {
		Transactions *[]transaction.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(utf8r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Transactions == nil {
		return 0, fmt.Errorf("%w: missing transactions array", ErrMalformed)
	}

	txs := *doc.Transactions
	for i := range txs {
		txs[i].LedgerID = ledgerID
	}
	if err := s.txs.SaveTransactions(ctx, ledgerID, txs); err != nil {
		return 0, fmt.Errorf("saving restored transactions: %w", err)
	}
	return len(txs), nil
}
