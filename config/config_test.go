package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != 5000 {
		t.Fatalf("unexpected default port: %d", cfg.HTTPPort)
	}
	if cfg.RetentionHorizon != 7*24*time.Hour {
		t.Fatalf("unexpected default retention: %v", cfg.RetentionHorizon)
	}
	if cfg.HistoryWindow != 5 {
		t.Fatalf("unexpected default history window: %d", cfg.HistoryWindow)
	}
	if cfg.Temperature != 0.7 {
		t.Fatalf("unexpected default temperature: %v", cfg.Temperature)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RETENTION_DAYS", "14")
	t.Setenv("HISTORY_WINDOW", "10")
	t.Setenv("MODEL_TIMEOUT_MS", "60000")

	cfg := Load()

	if cfg.RetentionHorizon != 14*24*time.Hour {
		t.Fatalf("unexpected retention: %v", cfg.RetentionHorizon)
	}
	if cfg.HistoryWindow != 10 {
		t.Fatalf("unexpected history window: %d", cfg.HistoryWindow)
	}
	if cfg.ModelTimeout != 60*time.Second {
		t.Fatalf("unexpected model timeout: %v", cfg.ModelTimeout)
	}
}

func TestSafetySettings(t *testing.T) {
	cfg := Load()
	settings := cfg.SafetySettings()
	if len(settings) != 3 {
		t.Fatalf("expected 3 safety settings, got %d", len(settings))
	}
	for _, s := range settings {
		if s.Threshold != "BLOCK_MEDIUM_AND_ABOVE" {
			t.Fatalf("unexpected threshold: %q", s.Threshold)
		}
	}
}
