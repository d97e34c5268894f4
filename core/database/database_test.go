package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "site",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg, nil)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"}, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"}, zap.NewNop())
		require.NoError(t, err)

		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	})
}

func TestDialectorFor_Postgres(t *testing.T) {
	d, err := dialectorFor(Config{
		Driver:   DriverPostgres,
		Host:     "db.example.com",
		Port:     5432,
		User:     "site",
		Password: "p@ss word",
		Name:     "site",
	}, 5)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}
