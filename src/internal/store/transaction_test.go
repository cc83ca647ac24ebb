package store_test

import (
	"context"
	"errors"
	"testing"

	"chatbot-svc/src/internal/store"
	"chatbot-svc/src/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   string `gorm:"primaryKey"`
	Body string
}

func TestGormTransactor_RunInTransaction(t *testing.T) {
	db := storetest.NewSQLite(t, &note{})
	tx := store.NewGormTransactor(db)
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		err := tx.RunInTransaction(ctx, func(ctx context.Context) error {
			return store.Conn(ctx, db).Create(&note{ID: "a", Body: "kept"}).Error
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&note{}).Where("id = ?", "a").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		boom := errors.New("boom")
		err := tx.RunInTransaction(ctx, func(ctx context.Context) error {
			if err := store.Conn(ctx, db).Create(&note{ID: "b", Body: "dropped"}).Error; err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var count int64
		require.NoError(t, db.Model(&note{}).Where("id = ?", "b").Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestDirectTransactor_RunsFnOnce(t *testing.T) {
	calls := 0
	err := store.NewDirectTransactor().RunInTransaction(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
