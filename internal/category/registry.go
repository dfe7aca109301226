// Package category manages the per-ledger transaction category sets: a
// fixed default list per transaction type plus a user-defined custom list.
package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/duartefn/moneybook/internal/kv"
)

// Type mirrors the transaction type the categories belong to.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

var (
	ErrBlankName = errors.New("category name cannot be empty")
	ErrExists    = errors.New("category already exists")
	ErrNotCustom = errors.New("category is not a custom category")
)

// Defaults are fixed and cannot be removed.
var defaults = map[Type][]string{
	TypeExpense: {"Food", "Transport", "Shopping", "Entertainment", "Other"},
	TypeIncome:  {"Salary", "Bonus", "Investment", "Other"},
}

// Defaults returns the built-in category list for a type.
func Defaults(t Type) []string {
	out := make([]string, len(defaults[t]))
	copy(out, defaults[t])

	return out
}

type customSets struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}

func (c *customSets) list(t Type) []string {
	if t == TypeIncome {
		return c.Income
	}

	return c.Expense
}

func (c *customSets) setList(t Type, names []string) {
	if t == TypeIncome {
		c.Income = names
		return
	}

	c.Expense = names
}

// Registry persists custom categories per user and ledger.
type Registry struct {
	store kv.Store
}

func NewRegistry(store kv.Store) *Registry {
	return &Registry{store: store}
}

func key(user, ledgerID string) string {
	return fmt.Sprintf("custom-categories-%s-%s", user, ledgerID)
}

func (r *Registry) load(ctx context.Context, user, ledgerID string) (*customSets, error) {
	raw, err := r.store.Get(ctx, key(user, ledgerID))
	if errors.Is(err, kv.ErrNotFound) {
		return &customSets{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading custom categories: %w", err)
	}

	var sets customSets
	if err := json.Unmarshal(raw, &sets); err != nil {
		return nil, fmt.Errorf("decoding custom categories: %w", err)
	}

	return &sets, nil
}

func (r *Registry) save(ctx context.Context, user, ledgerID string, sets *customSets) error {
	raw, err := json.Marshal(sets)
	if err != nil {
		return fmt.Errorf("encoding custom categories: %w", err)
	}

	if err := r.store.Put(ctx, key(user, ledgerID), raw); err != nil {
		return fmt.Errorf("saving custom categories: %w", err)
	}

	return nil
}

// All returns defaults followed by custom categories, in insertion order.
func (r *Registry) All(ctx context.Context, user, ledgerID string, t Type) ([]string, error) {
	sets, err := r.load(ctx, user, ledgerID)
	if err != nil {
		return nil, err
	}

	return append(Defaults(t), sets.list(t)...), nil
}

// AddCustom appends a custom category. Names are trimmed; blanks and
// duplicates across the combined default+custom set are rejected
// (case-sensitive).
func (r *Registry) AddCustom(ctx context.Context, user, ledgerID string, t Type, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}

	sets, err := r.load(ctx, user, ledgerID)
	if err != nil {
		return err
	}

	for _, existing := range append(Defaults(t), sets.list(t)...) {
		if existing == name {
			return ErrExists
		}
	}

	sets.setList(t, append(sets.list(t), name))

	return r.save(ctx, user, ledgerID, sets)
}

// RemoveCustom deletes a custom category. Defaults and unknown names are
// rejected.
func (r *Registry) RemoveCustom(ctx context.Context, user, ledgerID string, t Type, name string) error {
	sets, err := r.load(ctx, user, ledgerID)
	if err != nil {
		return err
	}

	current := sets.list(t)

	for i, existing := range current {
		if existing == name {
			sets.setList(t, append(current[:i:i], current[i+1:]...))
			return r.save(ctx, user, ledgerID, sets)
		}
	}

	return ErrNotCustom
}

// Purge removes the custom category sets for a ledger. Used by the ledger
// deletion cascade.
func (r *Registry) Purge(ctx context.Context, user, ledgerID string) error {
	if err := r.store.Delete(ctx, key(user, ledgerID)); err != nil {
		return fmt.Errorf("purging custom categories: %w", err)
	}

	return nil
}
