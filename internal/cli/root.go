// Package cli implements sha2sum command-line parsing and commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"sha2sum/internal/config"
	apperrors "sha2sum/internal/errors"
	"sha2sum/internal/hash"
	"sha2sum/internal/logging"
	"sha2sum/internal/progress"
	"sha2sum/internal/sanitize"
)

// RootCommand handles argument parsing for the sha2sum CLI.
type RootCommand struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader
	cmd    *cobra.Command
	cfg    config.Config
	logger *slog.Logger
}

// NewRootCommand creates the sha2sum root command.
func NewRootCommand(out io.Writer, errOut io.Writer, in io.Reader) *RootCommand {
	root := &RootCommand{out: out, errOut: errOut, in: in, logger: logging.Discard()}
	cmd := &cobra.Command{
		Use:           "sha2sum",
		Short:         "Compute and verify SHA-2 checksums",
		Long:          "sha2sum computes SHA-224, SHA-256, SHA-384 and SHA-512 checksums and verifies checksum lists.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return root.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if _, err := fmt.Fprintf(root.errOut, "unknown command %q\n", args[0]); err != nil {
				return errors.Wrap(err, "write unknown command error")
			}
			return apperrors.Usage("unknown command: %s", args[0])
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(in)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.Usage("%v", err)
	})
	config.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		NewVersionCommand(out),
		root.newSumCommand(),
		root.newCheckCommand(),
		root.newBenchCommand(),
	)
	root.cmd = cmd
	return root
}

// SetArgs sets command arguments.
func (r *RootCommand) SetArgs(args []string) { r.cmd.SetArgs(args) }

// Commands returns configured subcommands.
func (r *RootCommand) Commands() []*cobra.Command { return r.cmd.Commands() }

// Execute parses and runs commands.
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext parses and runs commands; ctx cancels in-flight hashing.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	r.cfg = cfg
	r.logger = logging.New(r.errOut, logging.ParseLevel(cfg.LogLevel))
	if cfg.File != "" {
		r.logger.Debug("loaded config file", "path", cfg.File)
	}
	return nil
}

func (r *RootCommand) hashOptions() hash.Options {
	return hash.Options{
		Stdin:        r.in,
		ProgressOut:  r.errOut,
		ShowProgress: progress.Enabled(r.cfg.Progress, r.errOut),
		Logger:       r.logger,
	}
}

// displayName escapes a file name for one-line output.
func displayName(name string) string {
	escaped, marked := sanitize.EscapeName(name)
	if marked {
		return "\\" + escaped
	}
	return escaped
}

