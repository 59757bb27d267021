// Package mwenv resolves process configuration from MWOPS_* environment
// variables. The settings object is constructed once at process start and
// passed through the dependency graph; nothing here is mutable afterward.
package mwenv

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names.
const (
	DBURLEnvKey        = "MWOPS_DB_URL"
	SecretKeyEnvKey    = "MWOPS_SECRET_KEY"
	OldSecretKeyEnvKey = "MWOPS_OLD_SECRET_KEY"
	RuntimeModeEnvKey  = "MWOPS_RUNTIME_MODE"
	TimezoneEnvKey     = "MWOPS_TIMEZONE"
	LogFormatEnvKey    = "MWOPS_LOG_FORMAT"
	LogLevelEnvKey     = "MWOPS_LOG_LEVEL"
	TemplateRootEnvKey = "MWOPS_TEMPLATE_ROOT"
	PollIntervalEnvKey = "MWOPS_POLL_INTERVAL"
	PollWorkersEnvKey  = "MWOPS_POLL_WORKERS"
)

// Runtime modes.
const (
	RuntimeModeInCluster = "in-cluster"
	RuntimeModeRemote    = "remote"
)

// Settings is the typed process configuration.
type Settings struct {
	// DBURL is the relational store DSN (sqlite: or postgres://).
	DBURL string
	// SecretKey is the symmetric key for redacted fields. Required for any
	// operation touching an encrypted field.
	SecretKey string
	// RuntimeMode is "in-cluster" or "remote".
	RuntimeMode string
	// Timezone is the deployment timezone name, e.g. "Europe/Berlin".
	Timezone string
	// LogFormat is "text" or "json".
	LogFormat string
	// LogLevel is DEBUG, INFO, WARN, or ERROR.
	LogLevel string
	// TemplateRoot is the directory holding per-kind template bundles.
	TemplateRoot string
	// PollInterval is the background poll cadence.
	PollInterval time.Duration
	// PollWorkers bounds concurrent polls per sweep.
	PollWorkers int
}

// Load reads settings from the environment, applying defaults for the
// optional keys.
func Load() (*Settings, error) {
	s := &Settings{
		DBURL:        os.Getenv(DBURLEnvKey),
		SecretKey:    os.Getenv(SecretKeyEnvKey),
		RuntimeMode:  getenvDefault(RuntimeModeEnvKey, RuntimeModeRemote),
		Timezone:     getenvDefault(TimezoneEnvKey, "UTC"),
		LogFormat:    getenvDefault(LogFormatEnvKey, "text"),
		LogLevel:     getenvDefault(LogLevelEnvKey, "INFO"),
		TemplateRoot: getenvDefault(TemplateRootEnvKey, "resources/platform"),
		PollInterval: 30 * time.Second,
		PollWorkers:  4,
	}
	if v := os.Getenv(PollIntervalEnvKey); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", PollIntervalEnvKey, err)
		}
		s.PollInterval = d
	}
	if v := os.Getenv(PollWorkersEnvKey); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s: must be a positive integer", PollWorkersEnvKey)
		}
		s.PollWorkers = n
	}
	if s.RuntimeMode != RuntimeModeInCluster && s.RuntimeMode != RuntimeModeRemote {
		return nil, fmt.Errorf("%s: unknown mode %q", RuntimeModeEnvKey, s.RuntimeMode)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return nil, fmt.Errorf("%s: %w", TimezoneEnvKey, err)
	}
	return s, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
