package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	c, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Driver:         "sqlite",
		DatabaseURL:    "data/folio.db",
		Port:           "8080",
		ReloadSchedule: "@every 1h",
		Language:       "English",
		Currency:       "INR",
		LogLevel:       logrus.InfoLevel,
	}, c)
}

func TestFromEnv_Postgres(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"DB_DRIVER":    "postgres",
		"POSTGRES_URL": "postgres://localhost/folio",
		"LOG_LEVEL":    "debug",
		"CURRENCY":     "USD",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/folio", c.DatabaseURL)
	assert.Equal(t, logrus.DebugLevel, c.LogLevel)
	assert.Equal(t, "USD", c.Currency)

	c, err = FromEnv(env(map[string]string{
		"DB_DRIVER":    "postgres",
		"DATABASE_URL": "postgres://db/main",
		"POSTGRES_URL": "postgres://localhost/folio",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://db/main", c.DatabaseURL)
}

func TestFromEnv_Invalid(t *testing.T) {
	for _, m := range []map[string]string{
		{"DB_DRIVER": "postgres"},
		{"DB_DRIVER": "mysql"},
		{"LOG_LEVEL": "loud"},
	} {
		_, err := FromEnv(env(m))
		assert.Error(t, err, "%v", m)
	}
}
