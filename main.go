package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aicommit-cli/aicommit/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd.SetContext(ctx)

	if err := cmd.Execute(); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
