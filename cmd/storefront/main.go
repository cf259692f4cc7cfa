package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/creatorstack/storefront/config"
	"github.com/creatorstack/storefront/internal/app"
)

func main() {
	cfg := config.Load()

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront init failed: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "storefront stopped with error: %v\n", err)
		os.Exit(1)
	}
}
