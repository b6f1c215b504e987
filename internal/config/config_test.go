package config

import (
	"testing"
)

func TestValidateRequiresPort(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing port")
	}
}

func TestValidateProductionPassword(t *testing.T) {
	cfg := &Config{
		Port:       "8080",
		Env:        "production",
		DBPassword: "password",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default password in production")
	}

	cfg.DBPassword = "s0mething-str0nger"
	cfg.DBSSLMode = "require"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDevelopmentDefaults(t *testing.T) {
	cfg := &Config{
		Port:       "8080",
		Env:        "development",
		DBPassword: "password",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
