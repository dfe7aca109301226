package goal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("goal not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Goal is a savings target scoped to one ledger. Progress counts income
// recorded after the goal was created.
type Goal struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Deadline     time.Time       `json:"deadline"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	LedgerID     string          `json:"ledgerId"`
}
