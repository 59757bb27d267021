package mwenv

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.RuntimeMode != RuntimeModeRemote {
		t.Errorf("RuntimeMode = %q, want remote", s.RuntimeMode)
	}
	if s.Timezone != "UTC" || s.LogFormat != "text" || s.LogLevel != "INFO" {
		t.Errorf("defaults = %q/%q/%q", s.Timezone, s.LogFormat, s.LogLevel)
	}
	if s.PollInterval != 30*time.Second || s.PollWorkers != 4 {
		t.Errorf("poll defaults = %v/%d", s.PollInterval, s.PollWorkers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(DBURLEnvKey, "sqlite:/tmp/mwops.db")
	t.Setenv(RuntimeModeEnvKey, RuntimeModeInCluster)
	t.Setenv(PollIntervalEnvKey, "1m")
	t.Setenv(PollWorkersEnvKey, "8")
	t.Setenv(TimezoneEnvKey, "UTC")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.DBURL != "sqlite:/tmp/mwops.db" || s.RuntimeMode != RuntimeModeInCluster {
		t.Errorf("overrides not applied: %+v", s)
	}
	if s.PollInterval != time.Minute || s.PollWorkers != 8 {
		t.Errorf("poll overrides = %v/%d", s.PollInterval, s.PollWorkers)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad runtime mode", RuntimeModeEnvKey, "sideways"},
		{"bad poll interval", PollIntervalEnvKey, "soon"},
		{"bad poll workers", PollWorkersEnvKey, "0"},
		{"bad timezone", TimezoneEnvKey, "Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() succeeded with %s=%q", tt.key, tt.value)
			}
		})
	}
}
