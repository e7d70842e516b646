package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/shortlinks/internal/config"
	"github.com/axellelanca/shortlinks/internal/models"
)

func TestOpenAndMigrate_SQLite(t *testing.T) {
	db, err := Open(Options{Driver: config.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.Link{}))
	assert.True(t, db.Migrator().HasIndex(&models.Link{}, "FullURL"))
	assert.True(t, db.Migrator().HasIndex(&models.Link{}, "ShortURL"))

	// Running it again is a no-op.
	require.NoError(t, Migrate(db))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverMySQL
	cfg.Database.DSN = "user:pass@tcp(127.0.0.1:3306)/links?parseTime=true"
	cfg.Database.MaxOpenConns = 7
	cfg.Database.ConnMaxLifetimeMinutes = 2
	cfg.Log.Level = "debug"

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, config.DriverMySQL, opts.Driver)
	assert.Equal(t, 7, opts.MaxOpenConns)
	assert.Equal(t, cfg.ConnMaxLifetime(), opts.ConnMaxLifetime)
	assert.True(t, opts.Debug)
}
