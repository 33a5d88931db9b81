// Package main is the sha2sum CLI entrypoint.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sha2sum/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := app.New().Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
