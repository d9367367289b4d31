package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewGormUnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewGormSQLiteMigrate(t *testing.T) {
	db, err := NewGorm(Opts{
		Driver:   "sqlite",
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, Close(db)) }()

	require.NoError(t, Ping(context.Background(), db))
	require.NoError(t, Migrate(db))
	for _, table := range []string{"users", "matches", "match_participants"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestDialectorLogsMaskedMySQLDSN(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dial, err := dialector(Opts{
		Driver: "mysql",
		DSN:    "mysql://app:secret@db:3306/padel",
		Log:    zap.New(core),
	})
	require.NoError(t, err)
	assert.Equal(t, "mysql", dial.Name())

	entries := logs.FilterMessage("mysql dsn resolved").All()
	require.Len(t, entries, 1)
	dsn := entries[0].ContextMap()["dsn"].(string)
	assert.NotContains(t, dsn, "secret")
	assert.Contains(t, dsn, "app:****@tcp(db:3306)/padel")
}

func TestDialectorWithoutLogger(t *testing.T) {
	dial, err := dialector(Opts{Driver: "mysql", DSN: "mysql://app:secret@db:3306/padel"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", dial.Name())
}
