package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"APP_ENV", "PORT", "DB_DRIVER", "DB_DSN", "SUBMIT_LIMIT", "SUBMIT_WINDOW", "SITE_URL", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "./dev.db", cfg.DBDSN)
	assert.Equal(t, 5, cfg.SubmitLimit)
	assert.Equal(t, 10*time.Minute, cfg.SubmitWindow)
	assert.Equal(t, "http://localhost:8080", cfg.SiteURL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://timber@localhost/timber?sslmode=disable")
	t.Setenv("SUBMIT_WINDOW", "90s")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("SITE_URL", "https://newindiatimber.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsDev())
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 90*time.Second, cfg.SubmitWindow)
	assert.Equal(t, int64(-100123), cfg.TelegramChatID)
	assert.Equal(t, "https://newindiatimber.com", cfg.SiteURL)
}

func TestLoad_ReadsDotEnvInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	writeDotEnvAt(t, dir, "PORT=9999\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DB_DRIVER", "mysql"},
		{"SUBMIT_LIMIT", "0"},
		{"SUBMIT_WINDOW", "soon"},
		{"REDIS_DB", "first"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
