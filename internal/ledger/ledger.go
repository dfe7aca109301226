package ledger

import (
	"crypto/rand"
	"errors"
	"time"
)

// Type classifies a ledger and drives its membership rules.
type Type string

const (
	TypePersonal Type = "personal"
	TypeFamily   Type = "family"
	TypeFriend   Type = "friend"
)

func (t Type) Valid() bool {
	switch t {
	case TypePersonal, TypeFamily, TypeFriend:
		return true
	}
	return false
}

var (
	ErrNotFound      = errors.New("ledger not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrCodeNotFound  = errors.New("invite code not found")
	ErrNotJoinable   = errors.New("ledger does not accept invites")
	ErrDuplicate     = errors.New("member already listed")
	ErrCreatorLocked = errors.New("creator cannot be removed")
	ErrLastMember    = errors.New("ledger must keep at least one member")
	ErrPersonal      = errors.New("personal ledgers have a fixed membership")
)

// Ledger is a shared or personal book of transactions. Personal ledgers
// hold exactly their creator; only friend ledgers carry an invite code,
// assigned once at creation.
type Ledger struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       Type      `json:"type"`
	Members    []string  `json:"members"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	InviteCode string    `json:"inviteCode,omitempty"`
}

// HasMember reports whether name is listed, matching exactly.
func (l Ledger) HasMember(name string) bool {
	for _, m := range l.Members {
		if m == name {
			return true
		}
	}
	return false
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInviteCode returns 6 characters drawn uniformly from [A-Z0-9].
// Codes are not checked for collisions; the space is large enough for
// the expected ledger counts.
func GenerateInviteCode() string {
	// Bytes past the largest multiple of the alphabet size are rejected
	// so every character is equally likely.
	const limit = 256 - 256%len(codeAlphabet)

	buf := make([]byte, 6)
	for i := 0; i < len(buf); {
		var b [1]byte
		if _, err := rand.Read(b[:]); err != nil {
			panic(err)
		}
		if int(b[0]) >= limit {
			continue
		}
		buf[i] = codeAlphabet[int(b[0])%len(codeAlphabet)]
		i++
	}
	return string(buf)
}
