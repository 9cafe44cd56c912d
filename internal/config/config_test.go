package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "parking"
user = "parking"
password = "secret"

[auth]
jwt_secret = "s3cr3t"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, AuthProviderJWT, cfg.Auth.Provider)
	assert.Equal(t, PaymentProviderMock, cfg.Payments.Provider)
	assert.Equal(t, "INR", cfg.Payments.Currency)
	assert.Equal(t, 3, cfg.Reconciler.MaxRetries)
	assert.Equal(t, 24, cfg.Booking.MaxDurationHours)
	assert.Equal(t, "host=db port=5432 user=parking password=secret dbname=parking sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Sections(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "parking"

[auth]
provider = "remote"
url = "https://identity.example.com"
api_key = "anon"

[kafka]
enabled = true
brokers = ["kafka-1:9092", "kafka-2:9092"]
topic = "bookings"

[reconciler]
sweep_interval = 60
timeout = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, AuthProviderRemote, cfg.Auth.Provider)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "bookings", cfg.Kafka.Topic)
	assert.Equal(t, int64(60), int64(cfg.Reconciler.SweepEvery().Seconds()))
	assert.Equal(t, int64(5), int64(cfg.Reconciler.ReconcileTimeout().Seconds()))
}

func TestLoad_Validation(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "parking"

[auth]
provider = "jwt"

[payments]
provider = "stripe"

[kafka]
enabled = true
`)

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "auth.jwt_secret")
	assert.Contains(t, err.Error(), "payments.stripe_secret_key")
	assert.Contains(t, err.Error(), "kafka.brokers")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
