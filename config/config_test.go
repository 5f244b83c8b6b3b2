package config

import (
	"strings"
	"testing"
)

// setValidEnv sets the minimum environment for a passing Load.
func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("INPUT_DIR", t.TempDir())
	t.Setenv("OUTPUT_DIR", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.GenerateInterval != 30 {
		t.Errorf("Expected default interval 30, got %d", cfg.GenerateInterval)
	}
	if cfg.TimestampReports {
		t.Error("Expected timestamping off by default")
	}
	if cfg.LogRetentionWeeks != 4 {
		t.Errorf("Expected default retention 4 weeks, got %d", cfg.LogRetentionWeeks)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	setValidEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TIMESTAMP_REPORTS", "true")
	t.Setenv("GENERATE_INTERVAL_MINUTES", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if !cfg.TimestampReports {
		t.Error("Expected timestamping to be enabled")
	}
	if cfg.GenerateInterval != 5 {
		t.Errorf("Expected interval 5, got %d", cfg.GenerateInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"missing input dir", "INPUT_DIR", "/definitely/not/there", "INPUT_DIR"},
		{"bad port", "PORT", "notaport", "PORT"},
		{"privileged port", "PORT", "80", "privileged"},
		{"port out of range", "PORT", "70000", "PORT"},
		{"bad env", "ENV", "production!", "ENV"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"zero interval", "GENERATE_INTERVAL_MINUTES", "0", "GENERATE_INTERVAL_MINUTES"},
		{"huge interval", "GENERATE_INTERVAL_MINUTES", "10000", "GENERATE_INTERVAL_MINUTES"},
		{"retention too long", "LOG_RETENTION_WEEKS", "200", "LOG_RETENTION_WEEKS"},
		{"log file too small", "MAX_LOG_FILE_SIZE", "512", "MAX_LOG_FILE_SIZE"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			setValidEnv(t)
			t.Setenv(c.key, c.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected Load to fail for %s=%s", c.key, c.value)
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("Expected error to mention %q, got: %v", c.wantErr, err)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	for _, addr := range []string{"127.0.0.1", "localhost", "::1", "192.168.1.10", "10.0.0.2"} {
		if err := validateAddress(addr); err != nil {
			t.Errorf("Expected %s to validate: %v", addr, err)
		}
	}

	for _, addr := range []string{"", "not-an-ip", "8.8.8.8"} {
		if err := validateAddress(addr); err == nil {
			t.Errorf("Expected %s to be rejected", addr)
		}
	}
}
