package migration

import (
	"testing"

	"chatbot-svc/src/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoMigrate_IsIdempotent(t *testing.T) {
	db := storetest.NewSQLite(t)

	require.NoError(t, AutoMigrate(db))
	require.NoError(t, AutoMigrate(db))

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("sessions"))
	assert.True(t, db.Migrator().HasIndex("users", "idx_users_email"))
}
