package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/stemsi/qboard/internal/cli"
	"github.com/stemsi/qboard/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(config.LoadClient())
	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
