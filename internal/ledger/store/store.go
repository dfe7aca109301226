// Package store persists ledger collections in the key-value store,
// one JSON document per user under accounts-{user}.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/duartefn/moneybook/internal/kv"
	"github.com/duartefn/moneybook/internal/ledger"
)

const keyPrefix = "accounts-"

type Store struct {
	kv kv.Store
}

func New(store kv.Store) *Store {
	return &Store{kv: store}
}

func (s *Store) LoadLedgers(ctx context.Context, user string) ([]ledger.Ledger, error) {
	raw, err := s.kv.Get(ctx, keyPrefix+user)
	if errors.Is(err, kv.ErrNotFound) {
		return []ledger.Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledgers: %w", err)
	}

	var ledgers []ledger.Ledger
	if err := json.Unmarshal(raw, &ledgers); err != nil {
		return nil, fmt.Errorf("decoding ledgers: %w", err)
	}
	return ledgers, nil
}

func (s *Store) SaveLedgers(ctx context.Context, user string, ledgers []ledger.Ledger) error {
	if ledgers == nil {
		ledgers = []ledger.Ledger{}
	}
	raw, err := json.Marshal(ledgers)
	if err != nil {
		return fmt.Errorf("encoding ledgers: %w", err)
	}
	if err := s.kv.Put(ctx, keyPrefix+user, raw); err != nil {
		return fmt.Errorf("writing ledgers: %w", err)
	}
	return nil
}

func (s *Store) ScanOwned(ctx context.Context) (map[string][]ledger.Ledger, error) {
	entries, err := s.kv.List(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing ledgers: %w", err)
	}

	out := make(map[string][]ledger.Ledger, len(entries))
	for key, raw := range entries {
		user := strings.TrimPrefix(key, keyPrefix)
		var ledgers []ledger.Ledger
		if err := json.Unmarshal(raw, &ledgers); err != nil {
			return nil, fmt.Errorf("decoding ledgers for %s: %w", user, err)
		}
		out[user] = ledgers
	}
	return out, nil
}
