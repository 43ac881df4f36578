package crm

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("crm", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 50050 {
		t.Fatalf("expected default port 50050, got %d", cfg.Port)
	}
	if cfg.UserStatsAddr != "localhost:50051" {
		t.Fatalf("expected default userstats address, got %q", cfg.UserStatsAddr)
	}
	if cfg.MetadataAddr != "localhost:50052" {
		t.Fatalf("expected default metadata address, got %q", cfg.MetadataAddr)
	}
	if cfg.NotifyAddr != "localhost:50053" {
		t.Fatalf("expected default notify address, got %q", cfg.NotifyAddr)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("crm", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-port", "9000",
		"-userstats-addr", "stats:50051",
		"-metadata-addr", "meta:50052",
		"-notify-addr", "notify:50053",
		"-sender", "campaigns@example.com",
	})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.UserStatsAddr != "stats:50051" {
		t.Fatalf("expected userstats address override, got %q", cfg.UserStatsAddr)
	}
	if cfg.Sender != "campaigns@example.com" {
		t.Fatalf("expected sender override, got %q", cfg.Sender)
	}
}
