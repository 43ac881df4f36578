package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	userstatscmd "github.com/crmspace/crm/internal/cmd/userstats"
	"github.com/crmspace/crm/internal/platform/config"
)

func main() {
	cfg, err := userstatscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[USERSTATS] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := userstatscmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
