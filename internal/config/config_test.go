package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"TELEGRAM_TOKEN": " token "}))
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramToken)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "data.json", cfg.DataPath)
	assert.Equal(t, StorageCSV, cfg.StorageDriver)
	assert.Equal(t, "users.csv", cfg.UsersFile)
	assert.Equal(t, "messages.csv", cfg.MessagesFile)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 90*time.Second, cfg.AITimeout)
	assert.Equal(t, time.Duration(0), cfg.ReloadInterval)
	assert.Equal(t, "Asia/Dhaka", cfg.Location.String())
	assert.Zero(t, cfg.AdminID)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"TELEGRAM_TOKEN":         "t",
		"ADMIN_ID":               "42",
		"PORT":                   "8080",
		"STORAGE_DRIVER":         "SQLite",
		"TIMEZONE":               "UTC",
		"CONTENT_RELOAD_MINUTES": "15",
		"AI_TIMEOUT_SECONDS":     "0",
	}))
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.AdminID)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, time.UTC.String(), cfg.Location.String())
	assert.Equal(t, 15*time.Minute, cfg.ReloadInterval)
	assert.Equal(t, time.Duration(0), cfg.AITimeout)
}

func TestFromLookupErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing token", map[string]string{}, "TELEGRAM_TOKEN is required"},
		{"bad admin", map[string]string{"TELEGRAM_TOKEN": "t", "ADMIN_ID": "boss"}, "ADMIN_ID"},
		{"bad driver", map[string]string{"TELEGRAM_TOKEN": "t", "STORAGE_DRIVER": "mongo"}, "STORAGE_DRIVER"},
		{"bad timezone", map[string]string{"TELEGRAM_TOKEN": "t", "TIMEZONE": "Mars/Olympus"}, "TIMEZONE"},
		{"negative reload", map[string]string{"TELEGRAM_TOKEN": "t", "CONTENT_RELOAD_MINUTES": "-1"}, "CONTENT_RELOAD_MINUTES"},
		{"bad port", map[string]string{"TELEGRAM_TOKEN": "t", "PORT": "http"}, "PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
