package ledger

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository persists each user's ledger collection as a whole document.
type Repository interface {
	LoadLedgers(ctx context.Context, user string) ([]Ledger, error)
	SaveLedgers(ctx context.Context, user string, ledgers []Ledger) error
	// ScanOwned returns every user's collection, keyed by owner, so
	// invite codes can be matched across accounts.
	ScanOwned(ctx context.Context) (map[string][]Ledger, error)
}

// Purger removes data scoped to a ledger when the ledger is deleted.
type Purger interface {
	Purge(ctx context.Context, user, ledgerID string) error
}

// Service manages ledger lifecycle and membership.
type Service struct {
	repo    Repository
	purgers []Purger
	now     func() time.Time
}

func NewService(repo Repository, purgers ...Purger) *Service {
	return &Service{repo: repo, purgers: purgers, now: time.Now}
}

const defaultLedgerName = "Personal Ledger"

// List returns the user's owned and joined ledgers. A user with no
// ledgers gets a personal one created on first access.
func (s *Service) List(ctx context.Context, user string) ([]Ledger, error) {
	ledgers, err := s.repo.LoadLedgers(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("loading ledgers: %w", err)
	}
	if len(ledgers) > 0 {
		return ledgers, nil
	}

	first := Ledger{
		ID:        uuid.NewString(),
		Name:      defaultLedgerName,
		Type:      TypePersonal,
		Members:   []string{user},
		CreatedBy: user,
		CreatedAt: s.now(),
	}
	if err := s.repo.SaveLedgers(ctx, user, []Ledger{first}); err != nil {
		return nil, fmt.Errorf("saving default ledger: %w", err)
	}
	return []Ledger{first}, nil
}

// Get returns one ledger from the user's collection.
func (s *Service) Get(ctx context.Context, user, id string) (Ledger, error) {
	ledgers, err := s.repo.LoadLedgers(ctx, user)
	if err != nil {
		return Ledger{}, fmt.Errorf("loading ledgers: %w", err)
	}
	for _, l := range ledgers {
		if l.ID == id {
			return l, nil
		}
	}
	return Ledger{}, ErrNotFound
}

// Create adds a new ledger to the user's collection. Member names are
// trimmed and deduplicated; the creator is always listed. Personal
// ledgers ignore the supplied members entirely.
func (s *Service) Create(ctx context.Context, user string, typ Type, name string, members []string) (Ledger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Ledger{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !typ.Valid() {
		return Ledger{}, fmt.Errorf("%w: unknown ledger type %q", ErrInvalidInput, typ)
	}

	l := Ledger{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      typ,
		Members:   s.normalizeMembers(user, typ, members),
		CreatedBy: user,
		CreatedAt: s.now(),
	}
	if typ == TypeFriend {
		l.InviteCode = GenerateInviteCode()
	}

	ledgers, err := s.repo.LoadLedgers(ctx, user)
	if err != nil {
		return Ledger{}, fmt.Errorf("loading ledgers: %w", err)
	}
	ledgers = append(ledgers, l)
	if err := s.repo.SaveLedgers(ctx, user, ledgers); err != nil {
		return Ledger{}, fmt.Errorf("saving ledgers: %w", err)
	}
	return l, nil
}

func (s *Service) normalizeMembers(creator string, typ Type, members []string) []string {
	if typ == TypePersonal {
		return []string{creator}
	}
	out := []string{creator}
	seen := map[string]bool{creator: true}
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// RedeemResult reports what a successful invite redemption did.
type RedeemResult struct {
	Ledger        Ledger
	AlreadyMember bool
}

// Redeem joins the caller to the friend ledger matching code. Matching
// uppercases and trims the input, compares against stored invite codes
// and falls back to the last six characters of the ledger id for
// records created before codes existed. Redeeming a code for a ledger
// the caller already belongs to succeeds without changing membership.
func (s *Service) Redeem(ctx context.Context, user, code string) (RedeemResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return RedeemResult{}, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	all, err := s.repo.ScanOwned(ctx)
	if err != nil {
		return RedeemResult{}, fmt.Errorf("scanning ledgers: %w", err)
	}

	owner, idx := "", -1
	var owned []Ledger
	for u, ledgers := range all {
		for i, l := range ledgers {
			if l.CreatedBy != u {
				continue // joined replica, not the defining record
			}
			if l.InviteCode == code || matchesIDSuffix(l.ID, code) {
				owner, idx, owned = u, i, ledgers
			}
		}
		if idx >= 0 {
			break
		}
	}
	if idx < 0 {
		return RedeemResult{}, ErrCodeNotFound
	}

	matched := owned[idx]
	if matched.Type != TypeFriend {
		return RedeemResult{}, ErrNotJoinable
	}
	if matched.HasMember(user) {
		return RedeemResult{Ledger: matched, AlreadyMember: true}, nil
	}

	matched.Members = append(matched.Members, user)
	owned[idx] = matched
	if err := s.repo.SaveLedgers(ctx, owner, owned); err != nil {
		return RedeemResult{}, fmt.Errorf("saving owner ledgers: %w", err)
	}

	// The caller keeps a replica in their own collection so the ledger
	// shows up in their list without cross-user reads.
	mine, err := s.repo.LoadLedgers(ctx, user)
	if err != nil {
		return RedeemResult{}, fmt.Errorf("loading ledgers: %w", err)
	}
	for _, l := range mine {
		if l.ID == matched.ID {
			return RedeemResult{Ledger: matched}, nil
		}
	}
	mine = append(mine, matched)
	if err := s.repo.SaveLedgers(ctx, user, mine); err != nil {
		return RedeemResult{}, fmt.Errorf("saving ledgers: %w", err)
	}
	return RedeemResult{Ledger: matched}, nil
}

func matchesIDSuffix(id, code string) bool {
	if len(id) < 6 {
		return false
	}
	return strings.EqualFold(id[len(id)-6:], code)
}

// AddMember appends name to a family or friend ledger.
func (s *Service) AddMember(ctx context.Context, user, ledgerID, name string) (Ledger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Ledger{}, fmt.Errorf("%w: member name is required", ErrInvalidInput)
	}
	return s.mutate(ctx, user, ledgerID, func(l *Ledger) error {
		if l.Type == TypePersonal {
			return ErrPersonal
		}
		if l.HasMember(name) {
			return ErrDuplicate
		}
		l.Members = append(l.Members, name)
		return nil
	})
}

// RemoveMember removes name from a family or friend ledger. The creator
// cannot be removed and membership never drops below one.
func (s *Service) RemoveMember(ctx context.Context, user, ledgerID, name string) (Ledger, error) {
	return s.mutate(ctx, user, ledgerID, func(l *Ledger) error {
		if l.Type == TypePersonal {
			return ErrPersonal
		}
		if name == l.CreatedBy {
			return ErrCreatorLocked
		}
		if !l.HasMember(name) {
			return fmt.Errorf("%w: member %q", ErrNotFound, name)
		}
		if len(l.Members) <= 1 {
			return ErrLastMember
		}
		kept := l.Members[:0:0]
		for _, m := range l.Members {
			if m != name {
				kept = append(kept, m)
			}
		}
		l.Members = kept
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, user, ledgerID string, fn func(*Ledger) error) (Ledger, error) {
	ledgers, err := s.repo.LoadLedgers(ctx, user)
	if err != nil {
		return Ledger{}, fmt.Errorf("loading ledgers: %w", err)
	}
	for i := range ledgers {
		if ledgers[i].ID != ledgerID {
			continue
		}
		if err := fn(&ledgers[i]); err != nil {
			return Ledger{}, err
		}
		if err := s.repo.SaveLedgers(ctx, user, ledgers); err != nil {
			return Ledger{}, fmt.Errorf("saving ledgers: %w", err)
		}
		return ledgers[i], nil
	}
	return Ledger{}, ErrNotFound
}

// Delete removes a ledger and everything scoped to it. The creator's
// delete cascades to transactions, goals and custom categories; a member
// deleting a shared ledger only drops their own replica, the owner's data
// stays intact.
func (s *Service) Delete(ctx context.Context, user, ledgerID string) error {
	ledgers, err := s.repo.LoadLedgers(ctx, user)
	if err != nil {
		return fmt.Errorf("loading ledgers: %w", err)
	}
	var removed *Ledger
	kept := ledgers[:0:0]
	for i, l := range ledgers {
		if l.ID == ledgerID {
			removed = &ledgers[i]
			continue
		}
		kept = append(kept, l)
	}
	if removed == nil {
		return ErrNotFound
	}
	if err := s.repo.SaveLedgers(ctx, user, kept); err != nil {
		return fmt.Errorf("saving ledgers: %w", err)
	}
	if removed.CreatedBy != user {
		return nil
	}
	for _, p := range s.purgers {
		if err := p.Purge(ctx, user, ledgerID); err != nil {
			slog.Warn("purging ledger data", "ledger", ledgerID, "error", err)
		}
	}
	return nil
}
