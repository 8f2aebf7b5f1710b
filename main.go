package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChristianF88/fradix/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.App.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error running CLI app:", err)
		stop()
		os.Exit(1)
	}
}
