package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cmd := newRootCmd(defaultDeps())
	err := cmd.ExecuteContext(ctx)
	cancel()

	os.Exit(handleError(cmd, err))
}
