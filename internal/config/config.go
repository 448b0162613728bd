// Package config loads server configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file or a field is absent.
const (
	// DefaultListenAddr is the default HTTP bind address.
	DefaultListenAddr = ":3000"
	// DefaultDatabaseDSN is the default embedded database file.
	DefaultDatabaseDSN = "fundabenefica.db"
	// DefaultTokenExpiry is the default admin session lifetime.
	DefaultTokenExpiry = 12 * time.Hour
	// DefaultBackupInterval is the default periodic snapshot interval.
	DefaultBackupInterval = 6 * time.Hour
)

// Config holds the resolved server configuration.
type Config struct {
	ListenAddr     string
	DatabaseDSN    string
	JWTSecret      string
	TokenExpiry    time.Duration
	BackupInterval time.Duration
	LogFile        string
	LogLevel       string
}

// fileConfig is the YAML file schema. Durations are plain hour counts.
type fileConfig struct {
	ListenAddr          string `yaml:"listen-addr"`
	DatabaseDSN         string `yaml:"database-dsn"`
	JWTSecret           string `yaml:"jwt-secret"`
	TokenExpiryHours    int    `yaml:"token-expiry-hours"`
	BackupIntervalHours int    `yaml:"backup-interval-hours"`
	LogFile             string `yaml:"log-file"`
	LogLevel            string `yaml:"log-level"`
}

// ResolveConfigPath returns the explicit path when given, otherwise the
// RAFFLE_CONFIG environment variable, otherwise config.yaml in the working
// directory.
func ResolveConfigPath(explicit string) string {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return filepath.Clean(trimmed)
	}
	if env := strings.TrimSpace(os.Getenv("RAFFLE_CONFIG")); env != "" {
		return filepath.Clean(env)
	}
	return "config.yaml"
}

// Load reads the YAML config file, applies defaults and environment
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddr:     DefaultListenAddr,
		DatabaseDSN:    DefaultDatabaseDSN,
		TokenExpiry:    DefaultTokenExpiry,
		BackupInterval: DefaultBackupInterval,
		LogLevel:       "info",
	}

	data, errRead := os.ReadFile(path)
	switch {
	case errRead == nil:
		var file fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &file); errUnmarshal != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
		}
		applyFile(&cfg, file)
	case os.IsNotExist(errRead):
		// Defaults plus environment only.
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, errRead)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyFile copies non-empty file values onto the config.
func applyFile(cfg *Config, file fileConfig) {
	if v := strings.TrimSpace(file.ListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(file.DatabaseDSN); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := strings.TrimSpace(file.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if file.TokenExpiryHours > 0 {
		cfg.TokenExpiry = time.Duration(file.TokenExpiryHours) * time.Hour
	}
	if file.BackupIntervalHours > 0 {
		cfg.BackupInterval = time.Duration(file.BackupIntervalHours) * time.Hour
	}
	if v := strings.TrimSpace(file.LogFile); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(file.LogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// applyEnv lets environment variables override file values.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("RAFFLE_LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.ListenAddr = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("RAFFLE_DB_DSN")); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("RAFFLE_JWT_SECRET")); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("RAFFLE_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("RAFFLE_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("RAFFLE_BACKUP_INTERVAL_HOURS")); v != "" {
		if hours, errAtoi := strconv.Atoi(v); errAtoi == nil && hours > 0 {
			cfg.BackupInterval = time.Duration(hours) * time.Hour
		}
	}
}
