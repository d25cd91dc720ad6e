package db

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authapi/internal/auth/config"
	"authapi/migrations"
	"authapi/pkg/db/postgres"
	"authapi/pkg/logger"
)

func stubBootstrap(t *testing.T,
	migrate func(ctx context.Context, url string, fsys fs.FS, dir string) error,
	open func(ctx context.Context, dsn string, minConn, maxConn int32) (*postgres.Database, error),
) {
	t.Helper()
	origMigrate, origConnect := migrateFS, connect
	migrateFS, connect = migrate, open
	t.Cleanup(func() {
		migrateFS, connect = origMigrate, origConnect
	})
}

func testConfig() *config.PostgresConfig {
	return &config.PostgresConfig{
		Host:     "testhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		Database: "testdb",
		SSLMode:  "disable",
		MinConn:  1,
		MaxConn:  10,
	}
}

func TestNew(t *testing.T) {
	logger.SetGlobalLogger(logger.NewNop())
	ctx := context.Background()
	cfg := testConfig()

	t.Run("применяет встроенные миграции и открывает пул", func(t *testing.T) {
		expected := &postgres.Database{}
		var migrated bool

		stubBootstrap(t,
			func(_ context.Context, url string, fsys fs.FS, dir string) error {
				migrated = true
				assert.Equal(t, cfg.GetConnectionURL(), url)
				assert.Equal(t, migrations.AuthDir, dir)
				entries, err := fs.ReadDir(fsys, dir)
				require.NoError(t, err)
				assert.NotEmpty(t, entries)
				return nil
			},
			func(_ context.Context, dsn string, minConn, maxConn int32) (*postgres.Database, error) {
				assert.True(t, migrated, "миграции должны идти до открытия пула")
				assert.Equal(t, cfg.GetDSN(), dsn)
				assert.Equal(t, cfg.MinConn, minConn)
				assert.Equal(t, cfg.MaxConn, maxConn)
				return expected, nil
			},
		)

		database, err := New(ctx, cfg)
		require.NoError(t, err)
		assert.Same(t, expected, database.database)
	})

	t.Run("ошибка миграции не открывает пул", func(t *testing.T) {
		migrationErr := errors.New("dirty database")
		stubBootstrap(t,
			func(context.Context, string, fs.FS, string) error { return migrationErr },
			func(context.Context, string, int32, int32) (*postgres.Database, error) {
				t.Fatal("pool must not be opened")
				return nil, nil
			},
		)

		database, err := New(ctx, cfg)
		require.Error(t, err)
		assert.Nil(t, database)
		assert.ErrorIs(t, err, migrationErr)
		assert.Contains(t, err.Error(), ErrDBMigrations)
	})

	t.Run("ошибка подключения", func(t *testing.T) {
		connErr := errors.New("connection refused")
		stubBootstrap(t,
			func(context.Context, string, fs.FS, string) error { return nil },
			func(context.Context, string, int32, int32) (*postgres.Database, error) { return nil, connErr },
		)

		database, err := New(ctx, cfg)
		require.Error(t, err)
		assert.Nil(t, database)
		assert.ErrorIs(t, err, connErr)
		assert.Contains(t, err.Error(), ErrDBConnection)
	})

	t.Run("произвольный набор миграций", func(t *testing.T) {
		custom := fstest.MapFS{
			"sql/000001_init.up.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
		}
		stubBootstrap(t,
			func(_ context.Context, _ string, fsys fs.FS, dir string) error {
				assert.Equal(t, "sql", dir)
				_, err := fs.Stat(fsys, "sql/000001_init.up.sql")
				return err
			},
			func(context.Context, string, int32, int32) (*postgres.Database, error) {
				return &postgres.Database{}, nil
			},
		)

		_, err := newWithMigrations(ctx, cfg, custom, "sql")
		require.NoError(t, err)
	})
}
