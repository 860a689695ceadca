package config_test

import (
	"testing"
	"time"

	"github.com/adpulse/adpulse-api/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.FeedInterval != 3*time.Second {
		t.Errorf("expected default feed interval 3s, got %s", cfg.FeedInterval)
	}
	if cfg.FeedWindow != 50 {
		t.Errorf("expected default feed window 50, got %d", cfg.FeedWindow)
	}
	if cfg.StoreLatency != 300*time.Millisecond {
		t.Errorf("expected default store latency 300ms, got %s", cfg.StoreLatency)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FEED_WINDOW", "10")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.FeedWindow != 10 {
		t.Errorf("expected feed window 10, got %d", cfg.FeedWindow)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("FEED_WINDOW", "0")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for zero feed window")
	}
}
