package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instudio/internal/domain"
)

func TestWithinTxDiscardsFailedWrites(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		require.NoError(t, repos.Users().Create(ctx, &domain.User{ID: "u-1", Username: "alice"}))
		return errors.New("abort")
	})
	require.Error(t, err)

	_ = store.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		u, err := repos.Users().FindByID(ctx, "u-1")
		assert.NoError(t, err)
		assert.Nil(t, u)
		return nil
	})
}

func TestOrderSequenceAndAmount(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		first, _ := repos.Orders().NextCode(ctx)
		second, _ := repos.Orders().NextCode(ctx)
		assert.Equal(t, int64(1), first)
		assert.Equal(t, int64(2), second)

		require.NoError(t, repos.Orders().Create(ctx, &domain.Order{ID: "o-1", Amount: decimal.Zero}))
		_, err := repos.Orders().AddAmount(ctx, "o-1", decimal.NewFromInt(10))
		require.NoError(t, err)
		total, err := repos.Orders().AddAmount(ctx, "o-1", decimal.NewFromInt(15))
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(25)))
		return nil
	})
	require.NoError(t, err)
}

func TestActivePageSkipsInactive(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		for i := 0; i < 16; i++ {
			status := domain.StatusActive
			if i == 0 {
				status = domain.StatusInactive
			}
			if err := repos.Products().Create(ctx, &domain.Product{
				ID:     fmt.Sprintf("p-%02d", i),
				Name:   fmt.Sprintf("Product %02d", i),
				Status: status,
			}); err != nil {
				return err
			}
		}
		return nil
	}))

	_ = store.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		first, total, err := repos.Products().FindActivePage(ctx, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, first, 10)
		assert.Equal(t, "p-01", first[0].ID)

		second, _, _ := repos.Products().FindActivePage(ctx, 1, 10)
		assert.Len(t, second, 5)

		third, _, _ := repos.Products().FindActivePage(ctx, 2, 10)
		assert.Empty(t, third)
		return nil
	})
}

func TestAuditLogsNewestFirst(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		for _, action := range []domain.ActionType{domain.ActionTypeCreate, domain.ActionTypeUpdate} {
			if err := repos.AuditLogs().Create(ctx, &domain.AuditLog{
				EntityType: domain.EntityTypeProduct, EntityID: "p-1", Action: action,
			}); err != nil {
				return err
			}
		}
		return nil
	}))

	_ = store.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		logs, err := repos.AuditLogs().FindByEntityID(ctx, domain.EntityTypeProduct, "p-1")
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, domain.ActionTypeUpdate, logs[0].Action)
		assert.Equal(t, int64(2), logs[0].ID)
		return nil
	})
}
