package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GO_ENV", "PROVIDER_TIMEOUT", "METRICS_ENABLED", "RELAY_JWT_SECRET", "RELAY_API_KEY_HASH", "NATS_SUBJECT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %s, want development", cfg.Environment)
	}
	if cfg.ProviderTimeout != 0 {
		t.Errorf("ProviderTimeout = %v, want 0", cfg.ProviderTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if cfg.AuthEnabled() {
		t.Error("auth should be disabled without credentials")
	}
	if cfg.NATSSubject != "imagerelay.generations" {
		t.Errorf("NATSSubject = %s", cfg.NATSSubject)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PROVIDER_TIMEOUT", "45s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RELAY_JWT_SECRET", "secret")
	t.Setenv("DEFAULT_PROVIDER", "TypeGPT")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.ProviderTimeout != 45*time.Second {
		t.Errorf("ProviderTimeout = %v, want 45s", cfg.ProviderTimeout)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled should be false")
	}
	if !cfg.AuthEnabled() {
		t.Error("auth should be enabled with a JWT secret")
	}
	if cfg.DefaultProvider != "TypeGPT" {
		t.Errorf("DefaultProvider = %s, want TypeGPT", cfg.DefaultProvider)
	}
}

func TestGetDurationSeconds(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "20")
	if got := getDuration("PROVIDER_TIMEOUT", 0); got != 20*time.Second {
		t.Errorf("getDuration = %v, want 20s", got)
	}
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	if got := getDuration("PROVIDER_TIMEOUT", time.Minute); got != time.Minute {
		t.Errorf("getDuration = %v, want default", got)
	}
}
