package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.Equal(t, "smartrw.id", cfg.Account.EmailDomain)
	assert.Equal(t, "0 0 6 * * *", cfg.Scheduler.EventReminderCronExpression)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_EXPIRY_HOURS", "72")
	t.Setenv("ACCOUNT_EMAIL_DOMAIN", "rw05.example.id")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 72, cfg.JWT.ExpiryHours)
	assert.Equal(t, "rw05.example.id", cfg.Account.EmailDomain)
}

func TestGetEnvAsInt_IgnoresGarbage(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "smartrw",
		Password: "secret",
		DBName:   "smartrw",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=smartrw password=secret dbname=smartrw sslmode=disable", db.GetDSN())
}
