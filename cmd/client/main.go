package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/corenotes/internal/client/cli"
	"github.com/dmitrijs2005/corenotes/internal/client/config"
	"github.com/dmitrijs2005/corenotes/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
