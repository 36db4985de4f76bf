// Package config loads the YAML configuration of the bridge binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config represents the bridge service configuration
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Database       DatabaseConfig       `yaml:"database"`
	Bridge         BridgeConfig         `yaml:"bridge"`
	Auth           AuthConfig           `yaml:"auth"`
	Outbox         OutboxConfig         `yaml:"outbox"`
	Reconciliation ReconciliationConfig `yaml:"reconciliation"`
	Monitoring     MonitoringConfig     `yaml:"monitoring"`
	Logging        LoggingConfig        `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"gte=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" default:"postgres" validate:"oneof=postgres memory"`
	Host            string        `yaml:"host" default:"localhost" validate:"required_if=Driver postgres"`
	Port            int           `yaml:"port" default:"5432"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database" default:"icp_bridge" validate:"required_if=Driver postgres"`
	SSLMode         string        `yaml:"ssl_mode" default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" default:"10" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" default:"5" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" default:"30m"`
}

// BridgeConfig contains the identity of the bridge contract
type BridgeConfig struct {
	// Self is the account the bridge acts as. It holds the custodied
	// underlying tokens and is the only authority allowed to mint.
	Self string `yaml:"self" validate:"required"`
	// CallbackPermission is the permission of Self the channel uses to
	// deliver peer transfers and receipts.
	CallbackPermission string `yaml:"callback_permission" default:"callback" validate:"required"`
	MemoMaxBytes       int    `yaml:"memo_max_bytes" default:"256" validate:"gt=0"`
}

// AuthConfig contains JWT settings. The HMAC secret is read from the
// environment variable named by SecretEnv.
type AuthConfig struct {
	SecretEnv string        `yaml:"secret_env" default:"ICP_JWT_SECRET" validate:"required"`
	Issuer    string        `yaml:"issuer" default:"icp-bridge"`
	TokenTTL  time.Duration `yaml:"token_ttl" default:"1h"`
}

// Secret returns the JWT secret from the environment
func (c *AuthConfig) Secret() ([]byte, error) {
	secret := os.Getenv(c.SecretEnv)
	if secret == "" {
		return nil, fmt.Errorf("jwt secret not set: env=%s", c.SecretEnv)
	}
	return []byte(secret), nil
}

// OutboxConfig contains settings of the outbound action relayer
type OutboxConfig struct {
	Enabled        bool              `yaml:"enabled" default:"true"`
	Interval       time.Duration     `yaml:"interval" default:"2s" validate:"gt=0"`
	BatchSize      int               `yaml:"batch_size" default:"50" validate:"gt=0"`
	MaxAttempts    int               `yaml:"max_attempts" default:"5" validate:"gt=0"`
	RequestTimeout time.Duration     `yaml:"request_timeout" default:"10s"`
	Endpoints      map[string]string `yaml:"endpoints" validate:"dive,url"`
}

// ReconciliationConfig controls the invariant checks over the bridge ledger.
// A zero InitialTimeout skips the startup check, a zero Interval disables
// the periodic one.
type ReconciliationConfig struct {
	InitialTimeout time.Duration `yaml:"initial_timeout" default:"30s" validate:"gte=0"`
	Interval       time.Duration `yaml:"interval" default:"5m" validate:"gte=0"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled     bool `yaml:"enabled" default:"true"`
	MetricsPort int  `yaml:"metrics_port" default:"9090" validate:"gte=0,lte=65535"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// MetricsServer returns the server settings of the metrics endpoint
func (c *Config) MetricsServer() *ServerConfig {
	return &ServerConfig{
		Host:            c.Server.Host,
		Port:            c.Monitoring.MetricsPort,
		ReadTimeout:     c.Server.ReadTimeout,
		WriteTimeout:    c.Server.WriteTimeout,
		IdleTimeout:     c.Server.IdleTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
	}
}

// Load reads the configuration file at path. Environment variables in the
// file are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration, applies defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := new(Config)
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
