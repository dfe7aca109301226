package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/duartefn/moneybook/internal/kv"
	"github.com/duartefn/moneybook/internal/transaction"
)

// Store persists each ledger's transaction sequence as one JSON document
// under transactions-{ledgerID}. Writes replace the whole document.
type Store struct {
	kv kv.Store
}

func New(store kv.Store) *Store {
	return &Store{kv: store}
}

func key(ledgerID string) string {
	return "transactions-" + ledgerID
}

func (s *Store) LoadTransactions(ctx context.Context, ledgerID string) ([]transaction.Transaction, error) {
	raw, err := s.kv.Get(ctx, key(ledgerID))
	if errors.Is(err, kv.ErrNotFound) {
		return []transaction.Transaction{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading transactions for %s: %w", ledgerID, err)
	}

	var txs []transaction.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		return nil, fmt.Errorf("decoding transactions for %s: %w", ledgerID, err)
	}

	return txs, nil
}

func (s *Store) SaveTransactions(ctx context.Context, ledgerID string, txs []transaction.Transaction) error {
	if txs == nil {
		txs = []transaction.Transaction{}
	}

	raw, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encoding transactions for %s: %w", ledgerID, err)
	}

	if err := s.kv.Put(ctx, key(ledgerID), raw); err != nil {
		return fmt.Errorf("saving transactions for %s: %w", ledgerID, err)
	}

	return nil
}

// Purge removes a ledger's entire transaction collection. Used by the
// ledger deletion cascade.
func (s *Store) Purge(ctx context.Context, ledgerID string) error {
	if err := s.kv.Delete(ctx, key(ledgerID)); err != nil {
		return fmt.Errorf("purging transactions for %s: %w", ledgerID, err)
	}

	return nil
}
