// Package app wires sha2sum application execution.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"sha2sum/internal/cli"
	apperrors "sha2sum/internal/errors"
)

// App wires CLI execution to a set of streams.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// New creates an App bound to the process streams.
func New() App {
	return App{Stdout: os.Stdout, Stderr: os.Stderr, Stdin: os.Stdin}
}

// Run executes the application and returns a process exit code.
func (a App) Run(ctx context.Context, args []string) int {
	root := cli.NewRootCommand(a.Stdout, a.Stderr, a.Stdin)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(a.Stderr, "sha2sum: %v\n", err)
		return apperrors.ExitCode(err)
	}

	return 0
}
