package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	metadatacmd "github.com/crmspace/crm/internal/cmd/metadata"
	"github.com/crmspace/crm/internal/platform/config"
)

func main() {
	cfg, err := metadatacmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[METADATA] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := metadatacmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
