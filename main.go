package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"portfolio-gif/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.Cmd.Run(ctx, os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s\n", err.Error())
		stop()
		os.Exit(1)
	}
}
