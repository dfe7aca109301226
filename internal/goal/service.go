package goal

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/duartefn/moneybook/internal/transaction"
)

// Repository persists each user's goals as a whole document.
type Repository interface {
	LoadGoals(ctx context.Context, user string) ([]Goal, error)
	SaveGoals(ctx context.Context, user string, goals []Goal) error
}

// TransactionSource loads a ledger's transactions for progress sums.
type TransactionSource interface {
	LoadTransactions(ctx context.Context, ledgerID string) ([]transaction.Transaction, error)
}

// Service manages savings goals and their progress.
type Service struct {
	repo Repository
	txs  TransactionSource
	now  func() time.Time
}

func NewService(repo Repository, txs TransactionSource) *Service {
	return &Service{repo: repo, txs: txs, now: time.Now}
}

// List returns the user's goals for one ledger.
func (s *Service) List(ctx context.Context, user, ledgerID string) ([]Goal, error) {
	goals, err := s.repo.LoadGoals(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if g.LedgerID == ledgerID {
			out = append(out, g)
		}
	}
	return out, nil
}

// UpsertParams carries the caller-editable fields of a goal. A non-empty
// ID updates the existing goal in place.
type UpsertParams struct {
	ID           string
	Name         string
	TargetAmount decimal.Decimal
	Deadline     time.Time
	Description  string
	LedgerID     string
}

func (p UpsertParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !p.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: target amount must be positive", ErrInvalidInput)
	}
	if p.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalidInput)
	}
	if p.LedgerID == "" {
		return fmt.Errorf("%w: ledger id is required", ErrInvalidInput)
	}
	return nil
}

// Upsert creates or replaces a goal. Updates keep the original creation
// time so progress keeps counting from the same start.
func (s *Service) Upsert(ctx context.Context, user string, params UpsertParams) (Goal, error) {
	if err := params.validate(); err != nil {
		return Goal{}, err
	}

	goals, err := s.repo.LoadGoals(ctx, user)
	if err != nil {
		return Goal{}, fmt.Errorf("loading goals: %w", err)
	}

	g := Goal{
		ID:           params.ID,
		Name:         strings.TrimSpace(params.Name),
		TargetAmount: params.TargetAmount,
		Deadline:     params.Deadline,
		Description:  params.Description,
		CreatedAt:    s.now(),
		LedgerID:     params.LedgerID,
	}

	if g.ID == "" {
		g.ID = uuid.NewString()
		goals = append(goals, g)
	} else {
		found := false
		for i := range goals {
			if goals[i].ID == g.ID {
				g.CreatedAt = goals[i].CreatedAt
				goals[i] = g
				found = true
				break
			}
		}
		if !found {
			return Goal{}, ErrNotFound
		}
	}

	if err := s.repo.SaveGoals(ctx, user, goals); err != nil {
		return Goal{}, fmt.Errorf("saving goals: %w", err)
	}
	return g, nil
}

// Delete removes one goal.
func (s *Service) Delete(ctx context.Context, user, id string) error {
	goals, err := s.repo.LoadGoals(ctx, user)
	if err != nil {
		return fmt.Errorf("loading goals: %w", err)
	}
	kept := goals[:0:0]
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(goals) {
		return ErrNotFound
	}
	if err := s.repo.SaveGoals(ctx, user, kept); err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	return nil
}

// Purge drops every goal scoped to a deleted ledger.
func (s *Service) Purge(ctx context.Context, user, ledgerID string) error {
	goals, err := s.repo.LoadGoals(ctx, user)
	if err != nil {
		return fmt.Errorf("loading goals: %w", err)
	}
	kept := goals[:0:0]
	for _, g := range goals {
		if g.LedgerID != ledgerID {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(goals) {
		return nil
	}
	if err := s.repo.SaveGoals(ctx, user, kept); err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	return nil
}

// Report describes how far along a goal is.
type Report struct {
	Goal          Goal            `json:"goal"`
	Saved         decimal.Decimal `json:"saved"`
	Percent       float64         `json:"percent"`
	RemainingDays int             `json:"remainingDays"`
}

// Progress sums income recorded in the goal's ledger between its
// creation and now. The percentage is capped at 100.
func (s *Service) Progress(ctx context.Context, g Goal) (Report, error) {
	txs, err := s.txs.LoadTransactions(ctx, g.LedgerID)
	if err != nil {
		return Report{}, fmt.Errorf("loading transactions: %w", err)
	}

	now := s.now()
	saved := decimal.Zero
	for _, tx := range txs {
		if tx.Type != transaction.TypeIncome {
			continue
		}
		if tx.Date.Before(g.CreatedAt) || tx.Date.After(now) {
			continue
		}
		saved = saved.Add(tx.Amount)
	}

	percent := 0.0
	if g.TargetAmount.IsPositive() {
		percent, _ = saved.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
		if percent > 100 {
			percent = 100
		}
		if percent < 0 {
			percent = 0
		}
	}

	return Report{
		Goal:          g,
		Saved:         saved,
		Percent:       percent,
		RemainingDays: remainingDays(now, g.Deadline),
	}, nil
}

// remainingDays rounds up so a deadline later today still counts as one
// day. Past deadlines come out negative.
func remainingDays(now, deadline time.Time) int {
	d := deadline.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
