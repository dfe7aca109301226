package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duartefn/moneybook/internal/kv/memory"
	"github.com/duartefn/moneybook/internal/transaction"
	"github.com/duartefn/moneybook/internal/transaction/store"
)

func TestStore_RoundTrip(t *testing.T) {
	s := store.New(memory.New())
	ctx := context.Background()

	txs := []transaction.Transaction{
		{
			ID:               "t1",
			Description:      "Groceries",
			Amount:           decimal.RequireFromString("-714.2857142857142857"),
			OriginalAmount:   decimal.RequireFromString("100"),
			OriginalCurrency: "USD",
			Category:         "Food",
			Type:             transaction.TypeExpense,
			Date:             time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
			RecordedBy:       "alice@example.com",
			LedgerID:         "ledger-1",
		},
		{
			ID:          "t2",
			Description: "Salary",
			Amount:      decimal.RequireFromString("5000"),
			Category:    "Salary",
			Type:        transaction.TypeIncome,
			Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			LedgerID:    "ledger-1",
		},
	}

	require.NoError(t, s.SaveTransactions(ctx, "ledger-1", txs))

	got, err := s.LoadTransactions(ctx, "ledger-1")
	require.NoError(t, err)

	// Every field must survive the round trip, order included.
	require.Len(t, got, 2)

	for i := range txs {
		assert.Equal(t, txs[i].ID, got[i].ID)
		assert.Equal(t, txs[i].Description, got[i].Description)
		assert.True(t, txs[i].Amount.Equal(got[i].Amount))
		assert.True(t, txs[i].OriginalAmount.Equal(got[i].OriginalAmount))
		assert.Equal(t, txs[i].OriginalCurrency, got[i].OriginalCurrency)
		assert.Equal(t, txs[i].Category, got[i].Category)
		assert.Equal(t, txs[i].Type, got[i].Type)
		assert.True(t, txs[i].Date.Equal(got[i].Date))
		assert.Equal(t, txs[i].RecordedBy, got[i].RecordedBy)
		assert.Equal(t, txs[i].LedgerID, got[i].LedgerID)
	}
}

func TestStore_LoadAbsentLedger(t *testing.T) {
	s := store.New(memory.New())

	got, err := s.LoadTransactions(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Purge(t *testing.T) {
	s := store.New(memory.New())
	ctx := context.Background()

	require.NoError(t, s.SaveTransactions(ctx, "ledger-1", []transaction.Transaction{{ID: "t1"}}))
	require.NoError(t, s.Purge(ctx, "ledger-1"))

	got, err := s.LoadTransactions(ctx, "ledger-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
