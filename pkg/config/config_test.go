package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
bridge:
  self: icp.token
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "icp_bridge", cfg.Database.Database)
	assert.Equal(t, "icp.token", cfg.Bridge.Self)
	assert.Equal(t, "callback", cfg.Bridge.CallbackPermission)
	assert.Equal(t, 256, cfg.Bridge.MemoMaxBytes)
	assert.Equal(t, "ICP_JWT_SECRET", cfg.Auth.SecretEnv)
	assert.Equal(t, 30*time.Second, cfg.Reconciliation.InitialTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Reconciliation.Interval)
	assert.True(t, cfg.Outbox.Enabled)
	assert.Equal(t, 5, cfg.Outbox.MaxAttempts)
	assert.Equal(t, 9090, cfg.Monitoring.MetricsPort)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "s3cret")

	cfg, err := Parse([]byte(`
server:
  port: 9000
  shutdown_timeout: 5s
database:
  driver: memory
  password: ${TEST_DB_PASSWORD}
bridge:
  self: icp.token
  callback_permission: relay
outbox:
  interval: 250ms
  endpoints:
    icp.channel: http://localhost:7000/actions
logging:
  format: console
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "relay", cfg.Bridge.CallbackPermission)
	assert.Equal(t, 250*time.Millisecond, cfg.Outbox.Interval)
	assert.Equal(t, "http://localhost:7000/actions", cfg.Outbox.Endpoints["icp.channel"])
	assert.Equal(t, 9090, cfg.MetricsServer().Port)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing self":   `database: {driver: memory}`,
		"unknown driver": "database: {driver: mysql}\nbridge: {self: icp.token}",
		"bad endpoint":   "bridge: {self: icp.token}\noutbox: {endpoints: {icp: not-a-url}}",
		"bad format":     "bridge: {self: icp.token}\nlogging: {format: xml}",
		"bad yaml":       "bridge: [",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "icp.token", cfg.Bridge.Self)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAuthConfig_Secret(t *testing.T) {
	cfg := AuthConfig{SecretEnv: "TEST_ICP_JWT_SECRET"}
	_, err := cfg.Secret()
	assert.Error(t, err)

	t.Setenv("TEST_ICP_JWT_SECRET", "top-secret")
	secret, err := cfg.Secret()
	require.NoError(t, err)
	assert.Equal(t, []byte("top-secret"), secret)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(LoggingConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}
