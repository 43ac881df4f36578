package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"CRM_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvReadsOverride(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("CRM_TEST_PORT", "50099")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 50099 {
		t.Fatalf("expected port 50099 from environment, got %d", cfg.Port)
	}
}

func TestParseEnvRejectsNilTarget(t *testing.T) {
	if err := ParseEnv(nil); err == nil {
		t.Fatal("expected nil target to be rejected")
	}
}

func TestParseEnvNamesTargetOnError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("CRM_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "envTestConfig") {
		t.Fatalf("expected the config type in the error, got %v", err)
	}
}
