package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"workclock/internal/cli"
	"workclock/internal/config"
)

func main() {
	// serve shuts down gracefully on the first signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := cli.NewRootCommand(config.NewLoader(), os.Stdout)
	err := root.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
