package pg_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knijam/jason/pkg/config"
	"github.com/knijam/jason/pkg/pg"
)

func loadConfig(t *testing.T, values map[string]string, mixins ...config.Mixin) *config.Config {
	t.Helper()
	cfg, err := config.Define("db-test", nil, mixins...).LoadFrom(config.MapSource(values), nil)
	require.NoError(t, err)
	return cfg
}

func TestDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  map[string]string
		testing bool
		want    string
	}{
		{
			name: "defaults without credentials",
			want: "postgres://localhost:5432",
		},
		{
			name:   "user and password",
			values: map[string]string{"DB_HOST": "db", "DB_PORT": "6543", "DB_USER": "app", "DB_PASS": "s3cr:t"},
			want:   "postgres://app:s3cr%3At@db:6543",
		},
		{
			name:   "user without password",
			values: map[string]string{"DB_USER": "app"},
			want:   "postgres://app@localhost:5432",
		},
		{
			name:   "password ignored without user",
			values: map[string]string{"DB_PASS": "x"},
			want:   "postgres://localhost:5432",
		},
		{
			name:    "testing uses TEST_DB_URL",
			values:  map[string]string{"DB_USER": "app", "TEST_DB_URL": "postgres://t/db"},
			testing: true,
			want:    "postgres://t/db",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := loadConfig(t, tt.values, config.PostgresMixin)
			got, err := pg.DSN(cfg, tt.testing)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("requires postgres mixin", func(t *testing.T) {
		t.Parallel()
		cfg := loadConfig(t, nil, config.RedisMixin)
		_, err := pg.DSN(cfg, false)
		assert.ErrorIs(t, err, config.ErrMixinRequired)
		assert.Contains(t, err.Error(), "could not initialise database")
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("empty dsn", func(t *testing.T) {
		t.Parallel()
		_, err := pg.Connect(context.Background(), "", pg.Config{})
		assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
	})

	t.Run("invalid dsn", func(t *testing.T) {
		t.Parallel()
		_, err := pg.Connect(context.Background(), "postgres://%zz", pg.Config{})
		assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
	})

	t.Run("stops retrying when context ends", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		_, err := pg.Connect(ctx, "postgres://127.0.0.1:1/none?connect_timeout=1", pg.Config{
			RetryAttempts: 5,
			RetryInterval: time.Minute,
		})
		assert.ErrorIs(t, err, pg.ErrFailedToOpenDBConnection)
	})
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	ok := pg.Healthcheck(pingFunc(func(context.Context) error { return nil }))
	assert.NoError(t, ok(context.Background()))

	down := errors.New("down")
	bad := pg.Healthcheck(pingFunc(func(context.Context) error { return down }))
	err := bad(context.Background())
	assert.ErrorIs(t, err, pg.ErrHealthcheckFailed)
	assert.ErrorIs(t, err, down)
}

func TestMigrate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, pg.Migrate(context.Background(), nil, pg.Config{}, nil))

	err := pg.Migrate(context.Background(), nil, pg.Config{MigrationsPath: "testdata/does-not-exist"}, nil)
	assert.ErrorIs(t, err, pg.ErrMigrationsDirNotFound)
}
