package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/duartefn/moneybook/internal/transaction"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_Add(t *testing.T) {
	type testCase struct {
		name      string
		params    transaction.AddParams
		setupMock func(repo *transaction.MockRepository, conv *transaction.MockConverter, snap *transaction.MockSnapshotter)
		check     func(t *testing.T, tx *transaction.Transaction)
		wantErr   error
	}

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	valid := transaction.AddParams{
		Description: "Groceries",
		Amount:      dec("100"),
		Category:    "Food",
		Currency:    "USD",
		Type:        transaction.TypeExpense,
		Date:        date,
		User:        "alice@example.com",
		LedgerID:    "ledger-1",
	}

	tests := []testCase{
		{
			name:   "ExpenseConvertedAndSigned",
			params: valid,
			setupMock: func(repo *transaction.MockRepository, conv *transaction.MockConverter, snap *transaction.MockSnapshotter) {
				conv.EXPECT().
					ToReporting(gomock.Any(), dec("100"), "USD").
					Return(dec("100").Div(dec("0.14")))
				repo.EXPECT().
					LoadTransactions(gomock.Any(), "ledger-1").
					Return([]transaction.Transaction{{ID: "older"}}, nil)
				repo.EXPECT().
					SaveTransactions(gomock.Any(), "ledger-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, txs []transaction.Transaction) error {
						// Newest first.
						require.Len(t, txs, 2)
						assert.Equal(t, "Groceries", txs[0].Description)
						assert.Equal(t, "older", txs[1].ID)
						return nil
					})
				snap.EXPECT().Snapshot(gomock.Any(), "alice@example.com", gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, tx *transaction.Transaction) {
				assert.Equal(t, "714.29", tx.Amount.StringFixed(2))
				assert.True(t, tx.Amount.IsNegative())
				assert.True(t, tx.OriginalAmount.Equal(dec("100")))
				assert.Equal(t, "USD", tx.OriginalCurrency)
				assert.Equal(t, "alice@example.com", tx.RecordedBy)
				assert.Equal(t, "ledger-1", tx.LedgerID)
				assert.NotEmpty(t, tx.ID)
			},
		},
		{
			name: "IncomeKeepsPositiveSign",
			params: transaction.AddParams{
				Description: "Salary",
				Amount:      dec("5000"),
				Category:    "Salary",
				Currency:    "CNY",
				Type:        transaction.TypeIncome,
				Date:        date,
				User:        "alice@example.com",
				LedgerID:    "ledger-1",
			},
			setupMock: func(repo *transaction.MockRepository, conv *transaction.MockConverter, snap *transaction.MockSnapshotter) {
				conv.EXPECT().
					ToReporting(gomock.Any(), dec("5000"), "CNY").
					Return(dec("5000"))
				repo.EXPECT().
					LoadTransactions(gomock.Any(), "ledger-1").
					Return([]transaction.Transaction{}, nil)
				repo.EXPECT().
					SaveTransactions(gomock.Any(), "ledger-1", gomock.Any()).
					Return(nil)
				snap.EXPECT().Snapshot(gomock.Any(), "alice@example.com", gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, tx *transaction.Transaction) {
				assert.True(t, tx.Amount.Equal(dec("5000")))
			},
		},
		{
			name: "MissingDescription",
			params: func() transaction.AddParams {
				p := valid
				p.Description = ""
				return p
			}(),
			wantErr: transaction.ErrInvalidInput,
		},
		{
			name: "ZeroAmount",
			params: func() transaction.AddParams {
				p := valid
				p.Amount = decimal.Zero
				return p
			}(),
			wantErr: transaction.ErrInvalidInput,
		},
		{
			name: "NegativeAmount",
			params: func() transaction.AddParams {
				p := valid
				p.Amount = dec("-5")
				return p
			}(),
			wantErr: transaction.ErrInvalidInput,
		},
		{
			name: "UnknownType",
			params: func() transaction.AddParams {
				p := valid
				p.Type = "transfer"
				return p
			}(),
			wantErr: transaction.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			conv := transaction.NewMockConverter(ctrl)
			snap := transaction.NewMockSnapshotter(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, conv, snap)
			}

			svc := transaction.NewService(repo, conv, snap)
			got, err := svc.Add(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_AddSucceedsWhenSnapshotFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	conv := transaction.NewMockConverter(ctrl)
	snap := transaction.NewMockSnapshotter(ctrl)

	conv.EXPECT().ToReporting(gomock.Any(), gomock.Any(), gomock.Any()).Return(dec("10"))
	repo.EXPECT().LoadTransactions(gomock.Any(), "ledger-1").Return(nil, nil)
	repo.EXPECT().SaveTransactions(gomock.Any(), "ledger-1", gomock.Any()).Return(nil)
	snap.EXPECT().Snapshot(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := transaction.NewService(repo, conv, snap)

	_, err := svc.Add(context.Background(), transaction.AddParams{
		Description: "Coffee",
		Amount:      dec("10"),
		Category:    "Food",
		Currency:    "CNY",
		Type:        transaction.TypeIncome,
		Date:        time.Now(),
		User:        "alice@example.com",
		LedgerID:    "ledger-1",
	})
	assert.NoError(t, err, "backup failure must not fail the add")
}

func TestService_Delete(t *testing.T) {
	existing := []transaction.Transaction{
		{ID: "keep-1"}, {ID: "drop"}, {ID: "keep-2"},
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		snap := transaction.NewMockSnapshotter(ctrl)

		repo.EXPECT().LoadTransactions(gomock.Any(), "ledger-1").Return(existing, nil)
		repo.EXPECT().
			SaveTransactions(gomock.Any(), "ledger-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, txs []transaction.Transaction) error {
				require.Len(t, txs, 2)
				assert.Equal(t, "keep-1", txs[0].ID)
				assert.Equal(t, "keep-2", txs[1].ID)
				return nil
			})
		snap.EXPECT().Snapshot(gomock.Any(), "alice@example.com", gomock.Any()).Return(nil)

		svc := transaction.NewService(repo, nil, snap)
		assert.NoError(t, svc.Delete(context.Background(), "alice@example.com", "ledger-1", "drop"))
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().LoadTransactions(gomock.Any(), "ledger-1").Return(existing, nil)

		svc := transaction.NewService(repo, nil, nil)
		err := svc.Delete(context.Background(), "alice@example.com", "ledger-1", "missing")
		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})
}

func TestService_Balance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any(), "ledger-1").Return([]transaction.Transaction{
		{Type: transaction.TypeIncome, Amount: dec("5000")},
		{Type: transaction.TypeExpense, Amount: dec("-714.29")},
		{Type: transaction.TypeExpense, Amount: dec("-85.71")},
	}, nil)

	svc := transaction.NewService(repo, nil, nil)

	balance, err := svc.Balance(context.Background(), "ledger-1")
	require.NoError(t, err)
	assert.Equal(t, "4200.00", balance.StringFixed(2))
}

func trendFixture() []transaction.Transaction {
	return []transaction.Transaction{
		{Type: transaction.TypeIncome, Amount: dec("1000"), Category: "Salary",
			Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Type: transaction.TypeExpense, Amount: dec("-200"), Category: "Food",
			Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Type: transaction.TypeExpense, Amount: dec("-300"), Category: "Transport",
			Date: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)},
		{Type: transaction.TypeExpense, Amount: dec("-50"), Category: "Food",
			Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func TestService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any(), "ledger-1").Return(trendFixture(), nil)

	svc := transaction.NewService(repo, nil, nil)

	sum, err := svc.Summarize(context.Background(), "ledger-1", transaction.Month(2025, time.March))
	require.NoError(t, err)

	assert.Equal(t, "1000.00", sum.Income.StringFixed(2))
	assert.Equal(t, "500.00", sum.Expense.StringFixed(2), "expense is reported as an absolute value")
	assert.Equal(t, "500.00", sum.Net().StringFixed(2))
}

func TestService_CategoryBreakdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any(), "ledger-1").Return(trendFixture(), nil)

	svc := transaction.NewService(repo, nil, nil)

	rows, err := svc.CategoryBreakdown(context.Background(), "ledger-1", transaction.Month(2025, time.March))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Transport", rows[0].Category, "largest total first")
	assert.Equal(t, "300.00", rows[0].Total.StringFixed(2))
	assert.Equal(t, "Food", rows[1].Category)
	assert.Equal(t, "200.00", rows[1].Total.StringFixed(2))
}

func TestService_MonthlyTrend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadTransactions(gomock.Any(), "ledger-1").Return(trendFixture(), nil)

	svc := transaction.NewService(repo, nil, nil)

	rows, err := svc.MonthlyTrend(context.Background(), "ledger-1", 2025)
	require.NoError(t, err)
	require.Len(t, rows, 12)

	march := rows[time.March-1]
	assert.Equal(t, "500.00", march.Net.StringFixed(2))

	april := rows[time.April-1]
	assert.Equal(t, "-50.00", april.Net.StringFixed(2))

	january := rows[time.January-1]
	assert.True(t, january.Income.IsZero())
	assert.True(t, january.Expense.IsZero())
}
