package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/republica/internal/finance"
	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/internal/queue"
	"github.com/mmynk/republica/internal/storage/sqlite"
)

func TestBillingHandler(t *testing.T) {
	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "worker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	group := &models.Group{Name: "Republica Worker"}
	require.NoError(t, store.CreateGroup(ctx, group))

	admin := &models.Member{Name: "Ana", Email: "ana@example.com", GroupID: group.ID, Role: models.RoleFinanceAdmin}
	resident := &models.Member{Name: "Bruno", Email: "bruno@example.com", GroupID: group.ID, Role: models.RoleResident}
	require.NoError(t, store.CreateMember(ctx, admin))
	require.NoError(t, store.CreateMember(ctx, resident))

	ledger := finance.New(store, finance.WithClock(func() time.Time {
		return time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	}))
	handle := newBillingHandler(ledger)

	t.Run("no templates is dropped", func(t *testing.T) {
		err := handle(ctx, queue.NewBillingRequest(admin.ID, ""))
		require.Error(t, err)
		assert.True(t, queue.IsPermanent(err))
		assert.ErrorIs(t, err, finance.ErrNoTemplates)
	})

	require.NoError(t, store.CreateTemplate(ctx, &models.ExpenseTemplate{
		GroupID:     group.ID,
		Description: "Internet",
		BaseValue:   decimal.RequireFromString("99.99"),
		Category:    "utilities",
	}))

	t.Run("bills the requested period", func(t *testing.T) {
		require.NoError(t, handle(ctx, queue.NewBillingRequest(admin.ID, "2024-04")))

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "2024-04", expenses[0].BillingPeriod)
	})

	t.Run("rerun for the same period is dropped", func(t *testing.T) {
		err := handle(ctx, queue.NewBillingRequest(admin.ID, "2024-04"))
		require.Error(t, err)
		assert.True(t, queue.IsPermanent(err))
		assert.ErrorIs(t, err, finance.ErrAlreadyBilled)
	})

	t.Run("resident requester is dropped", func(t *testing.T) {
		err := handle(ctx, queue.NewBillingRequest(resident.ID, ""))
		require.Error(t, err)
		assert.True(t, queue.IsPermanent(err))
		assert.ErrorIs(t, err, finance.ErrForbidden)
	})

	t.Run("unknown requester is dropped", func(t *testing.T) {
		err := handle(ctx, queue.NewBillingRequest("ghost", ""))
		require.Error(t, err)
		assert.True(t, queue.IsPermanent(err))
	})
}

func TestClassify(t *testing.T) {
	transient := errors.New("database is locked")
	assert.False(t, queue.IsPermanent(classify(transient)))
	assert.True(t, queue.IsPermanent(classify(finance.ErrEmptyGroup)))
}
