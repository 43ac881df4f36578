package metadata

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("metadata", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 50052 {
		t.Fatalf("expected default port 50052, got %d", cfg.Port)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("metadata", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9002", "-metrics-addr", ":9103"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9002 {
		t.Fatalf("expected port 9002, got %d", cfg.Port)
	}
	if cfg.MetricsAddr != ":9103" {
		t.Fatalf("expected metrics addr override, got %q", cfg.MetricsAddr)
	}
}
