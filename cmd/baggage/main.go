package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"baggage-service/internal/cli"
)

func main() {
	// Cancel the running command on Ctrl+C or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand(cli.NewPostgresApp)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
