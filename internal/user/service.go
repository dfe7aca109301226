package user

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Repository persists the user directory and outstanding reset codes,
// each as a whole document.
type Repository interface {
	LoadUsers(ctx context.Context) (map[string]User, error)
	SaveUsers(ctx context.Context, users map[string]User) error
	LoadResetCodes(ctx context.Context) (map[string]ResetCode, error)
	SaveResetCodes(ctx context.Context, codes map[string]ResetCode) error
}

// CodeSender delivers a password reset code to its recipient.
type CodeSender interface {
	SendResetCode(ctx context.Context, email, code string) error
}

const (
	minPasswordLen = 6
	resetCodeTTL   = 10 * time.Minute
)

// Service handles registration, login and password resets.
type Service struct {
	repo   Repository
	sender CodeSender
	now    func() time.Time
	code   func() string
}

func NewService(repo Repository, sender CodeSender) *Service {
	return &Service{
		repo:   repo,
		sender: sender,
		now:    time.Now,
		code:   numericCode,
	}
}

// numericCode returns a 6-digit code, zero-padded.
func numericCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return User{}, fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return User{}, fmt.Errorf("loading users: %w", err)
	}
	if _, ok := users[email]; ok {
		return User{}, ErrDuplicateEmail
	}

	u := User{Email: email, Password: password, CreatedAt: s.now()}
	users[email] = u
	if err := s.repo.SaveUsers(ctx, users); err != nil {
		return User{}, fmt.Errorf("saving users: %w", err)
	}
	return u, nil
}

// Login checks credentials. An unknown email and a wrong password are
// the same failure so callers cannot probe the directory.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return User{}, fmt.Errorf("loading users: %w", err)
	}
	u, ok := users[strings.TrimSpace(email)]
	if !ok || u.Password != password {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// RequestPasswordReset issues a reset code for email and hands it to the
// sender. Delivery failure is returned to the caller; the code stays
// valid so a retry does not need a new one.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	if _, ok := users[email]; !ok {
		return ErrNotFound
	}

	codes, err := s.repo.LoadResetCodes(ctx)
	if err != nil {
		return fmt.Errorf("loading reset codes: %w", err)
	}
	rc := ResetCode{Code: s.code(), ExpiresAt: s.now().Add(resetCodeTTL)}
	codes[email] = rc
	if err := s.repo.SaveResetCodes(ctx, codes); err != nil {
		return fmt.Errorf("saving reset codes: %w", err)
	}

	if err := s.sender.SendResetCode(ctx, email, rc.Code); err != nil {
		return fmt.Errorf("delivering reset code: %w", err)
	}
	return nil
}

// ResetPassword overwrites the password after verifying the reset code.
// A used code is consumed.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.TrimSpace(email)
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	codes, err := s.repo.LoadResetCodes(ctx)
	if err != nil {
		return fmt.Errorf("loading reset codes: %w", err)
	}
	rc, ok := codes[email]
	if !ok || rc.Code != code || s.now().After(rc.ExpiresAt) {
		return ErrInvalidResetCode
	}

	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	u, ok := users[email]
	if !ok {
		return ErrNotFound
	}
	u.Password = newPassword
	users[email] = u
	if err := s.repo.SaveUsers(ctx, users); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}

	delete(codes, email)
	if err := s.repo.SaveResetCodes(ctx, codes); err != nil {
		return fmt.Errorf("saving reset codes: %w", err)
	}
	return nil
}
