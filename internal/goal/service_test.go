package goal

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/duartefn/moneybook/internal/transaction"
)

var frozen = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(repo Repository, txs TransactionSource) *Service {
	svc := NewService(repo, txs)
	svc.now = func() time.Time { return frozen }
	return svc
}

func TestService_Upsert(t *testing.T) {
	deadline := frozen.AddDate(0, 3, 0)

	t.Run("CreatesWithFreshID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		repo.EXPECT().LoadGoals(gomock.Any(), "alice").Return([]Goal{}, nil)
		repo.EXPECT().SaveGoals(gomock.Any(), "alice", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, goals []Goal) error {
				require.Len(t, goals, 1)
				assert.NotEmpty(t, goals[0].ID)
				assert.Equal(t, frozen, goals[0].CreatedAt)
				return nil
			})

		svc := newTestService(repo, nil)
		got, err := svc.Upsert(context.Background(), "alice", UpsertParams{
			Name:         "Vacation",
			TargetAmount: dec("1000"),
			Deadline:     deadline,
			LedgerID:     "l1",
		})
		require.NoError(t, err)
		assert.Equal(t, "Vacation", got.Name)
	})

	t.Run("UpdateKeepsCreatedAt", func(t *testing.T) {
		created := frozen.AddDate(0, -1, 0)
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		repo.EXPECT().LoadGoals(gomock.Any(), "alice").Return([]Goal{
			{ID: "g1", Name: "Vacation", TargetAmount: dec("1000"), Deadline: deadline, CreatedAt: created, LedgerID: "l1"},
		}, nil)
		repo.EXPECT().SaveGoals(gomock.Any(), "alice", gomock.Any()).Return(nil)

		svc := newTestService(repo, nil)
		got, err := svc.Upsert(context.Background(), "alice", UpsertParams{
			ID:           "g1",
			Name:         "Big Vacation",
			TargetAmount: dec("2000"),
			Deadline:     deadline,
			LedgerID:     "l1",
		})
		require.NoError(t, err)
		assert.Equal(t, created, got.CreatedAt)
		assert.Equal(t, "Big Vacation", got.Name)
	})

	t.Run("UnknownID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		repo.EXPECT().LoadGoals(gomock.Any(), "alice").Return([]Goal{}, nil)

		svc := newTestService(repo, nil)
		_, err := svc.Upsert(context.Background(), "alice", UpsertParams{
			ID: "missing", Name: "X", TargetAmount: dec("1"), Deadline: deadline, LedgerID: "l1",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Validation", func(t *testing.T) {
		tests := []struct {
			name   string
			params UpsertParams
		}{
			{"BlankName", UpsertParams{Name: " ", TargetAmount: dec("1"), Deadline: deadline, LedgerID: "l1"}},
			{"ZeroTarget", UpsertParams{Name: "X", TargetAmount: dec("0"), Deadline: deadline, LedgerID: "l1"}},
			{"NegativeTarget", UpsertParams{Name: "X", TargetAmount: dec("-5"), Deadline: deadline, LedgerID: "l1"}},
			{"MissingDeadline", UpsertParams{Name: "X", TargetAmount: dec("1"), LedgerID: "l1"}},
			{"MissingLedger", UpsertParams{Name: "X", TargetAmount: dec("1"), Deadline: deadline}},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				svc := newTestService(NewMockRepository(gomock.NewController(t)), nil)
				_, err := svc.Upsert(context.Background(), "alice", tc.params)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})
}

func TestService_ListFiltersByLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	repo.EXPECT().LoadGoals(gomock.Any(), "alice").Return([]Goal{
		{ID: "g1", LedgerID: "l1"},
		{ID: "g2", LedgerID: "l2"},
		{ID: "g3", LedgerID: "l1"},
	}, nil)

	svc := newTestService(repo, nil)
	got, err := svc.List(context.Background(), "alice", "l1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "g1", got[0].ID)
	assert.Equal(t, "g3", got[1].ID)
}

func TestService_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		repo.EXPECT().LoadGoals(gomock.Any(), "alice").Return([]Goal{{ID: "g1"}, {ID: "g2"}}, nil)
		repo.EXPECT().SaveGoals(gomock.Any(), "alice", []Goal{{ID: "g2"}}).Return(nil)

		svc := newTestService(repo, nil)
		require.NoError(t, svc.Delete(context.Background(), "alice", "g1"))
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		repo.EXPECT().LoadGoals(gomock.Any(), "alice").Return([]Goal{}, nil)

		svc := newTestService(repo, nil)
		assert.ErrorIs(t, svc.Delete(context.Background(), "alice", "g1"), ErrNotFound)
	})
}

func TestService_Purge(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	repo.EXPECT().LoadGoals(gomock.Any(), "alice").Return([]Goal{
		{ID: "g1", LedgerID: "l1"},
		{ID: "g2", LedgerID: "l2"},
	}, nil)
	repo.EXPECT().SaveGoals(gomock.Any(), "alice", []Goal{{ID: "g2", LedgerID: "l2"}}).Return(nil)

	svc := newTestService(repo, nil)
	require.NoError(t, svc.Purge(context.Background(), "alice", "l1"))
}

func TestService_Progress(t *testing.T) {
	created := frozen.AddDate(0, -1, 0)
	g := Goal{
		ID:           "g1",
		Name:         "Vacation",
		TargetAmount: dec("1000"),
		Deadline:     frozen.AddDate(0, 1, 0),
		CreatedAt:    created,
		LedgerID:     "l1",
	}

	txs := []transaction.Transaction{
		// Counted: income inside the window.
		{Type: transaction.TypeIncome, Amount: dec("250"), Date: created.AddDate(0, 0, 5), LedgerID: "l1"},
		{Type: transaction.TypeIncome, Amount: dec("150"), Date: created.AddDate(0, 0, 20), LedgerID: "l1"},
		// Ignored: expense, pre-creation income, future-dated income.
		{Type: transaction.TypeExpense, Amount: dec("-900"), Date: created.AddDate(0, 0, 6), LedgerID: "l1"},
		{Type: transaction.TypeIncome, Amount: dec("500"), Date: created.AddDate(0, 0, -1), LedgerID: "l1"},
		{Type: transaction.TypeIncome, Amount: dec("500"), Date: frozen.AddDate(0, 0, 1), LedgerID: "l1"},
	}

	ctrl := gomock.NewController(t)
	source := NewMockTransactionSource(ctrl)
	source.EXPECT().LoadTransactions(gomock.Any(), "l1").Return(txs, nil)

	svc := newTestService(NewMockRepository(ctrl), source)
	report, err := svc.Progress(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, "400", report.Saved.String())
	assert.InDelta(t, 40.0, report.Percent, 1e-9)
	assert.Equal(t, 30, report.RemainingDays)
}

func TestService_ProgressCapsAtHundred(t *testing.T) {
	g := Goal{TargetAmount: dec("100"), CreatedAt: frozen.AddDate(0, -1, 0), Deadline: frozen.AddDate(0, 1, 0), LedgerID: "l1"}

	ctrl := gomock.NewController(t)
	source := NewMockTransactionSource(ctrl)
	source.EXPECT().LoadTransactions(gomock.Any(), "l1").Return([]transaction.Transaction{
		{Type: transaction.TypeIncome, Amount: dec("250"), Date: frozen.AddDate(0, 0, -2), LedgerID: "l1"},
	}, nil)

	svc := newTestService(NewMockRepository(ctrl), source)
	report, err := svc.Progress(context.Background(), g)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, report.Percent, 1e-9)
}

func TestRemainingDays(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"LaterToday", frozen.Add(6 * time.Hour), 1},
		{"ExactDays", frozen.AddDate(0, 0, 7), 7},
		{"PartialDayRoundsUp", frozen.AddDate(0, 0, 7).Add(time.Hour), 8},
		{"Past", frozen.AddDate(0, 0, -3), -3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, remainingDays(frozen, tc.deadline))
		})
	}
}
