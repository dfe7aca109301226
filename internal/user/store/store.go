// Package store keeps the user directory and reset codes in the
// key-value store as single JSON documents.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/duartefn/moneybook/internal/kv"
	"github.com/duartefn/moneybook/internal/user"
)

const (
	usersKey      = "users"
	resetCodesKey = "reset-codes"
)

type Store struct {
	kv kv.Store
}

func New(store kv.Store) *Store {
	return &Store{kv: store}
}

func (s *Store) LoadUsers(ctx context.Context) (map[string]user.User, error) {
	var users map[string]user.User
	if err := s.loadDoc(ctx, usersKey, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = map[string]user.User{}
	}
	return users, nil
}

func (s *Store) SaveUsers(ctx context.Context, users map[string]user.User) error {
	return s.saveDoc(ctx, usersKey, users)
}

func (s *Store) LoadResetCodes(ctx context.Context) (map[string]user.ResetCode, error) {
	var codes map[string]user.ResetCode
	if err := s.loadDoc(ctx, resetCodesKey, &codes); err != nil {
		return nil, err
	}
	if codes == nil {
		codes = map[string]user.ResetCode{}
	}
	return codes, nil
}

func (s *Store) SaveResetCodes(ctx context.Context, codes map[string]user.ResetCode) error {
	return s.saveDoc(ctx, resetCodesKey, codes)
}

func (s *Store) loadDoc(ctx context.Context, key string, dst any) error {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func (s *Store) saveDoc(ctx context.Context, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
