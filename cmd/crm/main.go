package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	crmcmd "github.com/crmspace/crm/internal/cmd/crm"
	"github.com/crmspace/crm/internal/platform/config"
)

func main() {
	cfg, err := crmcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[CRM] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := crmcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
