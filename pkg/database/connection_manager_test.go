package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instudio/internal/config"
	"instudio/pkg/logger"
)

func TestSQLiteConnection(t *testing.T) {
	cm, err := NewConnectionManager(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    "file::memory:?cache=shared",
	}, logger.NewNop())
	require.NoError(t, err)
	defer cm.Close()

	assert.NoError(t, cm.Ping(context.Background()))
	assert.Equal(t, 1, cm.DB().Stats().MaxOpenConnections)
	assert.Equal(t, "sqlite3", cm.Stats()["driver"])
}

func TestMemoryDriverHasNoConnection(t *testing.T) {
	_, err := NewConnectionManager(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory}, logger.NewNop())
	assert.Error(t, err)
}
