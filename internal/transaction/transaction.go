package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

var (
	ErrNotFound     = errors.New("transaction not found")
	ErrInvalidInput = errors.New("invalid transaction")
)

// Transaction is a single income or expense record. Amount is always
// expressed in the reporting currency and carries the sign of the type:
// negative for expenses, non-negative for income. OriginalAmount and
// OriginalCurrency preserve the value as entered when it was recorded in
// another currency.
//
// The JSON form is the storage format; every field must round-trip exactly.
// OriginalAmount, OriginalCurrency and RecordedBy are optional for
// forward compatibility with older records.
type Transaction struct {
	ID               string          `json:"id"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency,omitempty"`
	Category         string          `json:"category"`
	Type             Type            `json:"type"`
	Date             time.Time       `json:"date"`
	RecordedBy       string          `json:"recordedBy,omitempty"`
	LedgerID         string          `json:"ledgerId"`
}
