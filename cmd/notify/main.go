package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	notifycmd "github.com/crmspace/crm/internal/cmd/notify"
	"github.com/crmspace/crm/internal/platform/config"
)

func main() {
	cfg, err := notifycmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[NOTIFY] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := notifycmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
