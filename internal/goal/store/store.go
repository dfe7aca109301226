// Package store persists goal collections in the key-value store, one
// JSON document per user under goals-{user}.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/duartefn/moneybook/internal/goal"
	"github.com/duartefn/moneybook/internal/kv"
)

const keyPrefix = "goals-"

type Store struct {
	kv kv.Store
}

func New(store kv.Store) *Store {
	return &Store{kv: store}
}

func (s *Store) LoadGoals(ctx context.Context, user string) ([]goal.Goal, error) {
	raw, err := s.kv.Get(ctx, keyPrefix+user)
	if errors.Is(err, kv.ErrNotFound) {
		return []goal.Goal{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading goals: %w", err)
	}

	var goals []goal.Goal
	if err := json.Unmarshal(raw, &goals); err != nil {
		return nil, fmt.Errorf("decoding goals: %w", err)
	}
	return goals, nil
}

func (s *Store) SaveGoals(ctx context.Context, user string, goals []goal.Goal) error {
	if goals == nil {
		goals = []goal.Goal{}
	}
	raw, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encoding goals: %w", err)
	}
	if err := s.kv.Put(ctx, keyPrefix+user, raw); err != nil {
		return fmt.Errorf("writing goals: %w", err)
	}
	return nil
}
