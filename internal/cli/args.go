package cli

import (
	"github.com/spf13/cobra"

	apperrors "sha2sum/internal/errors"
)

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return apperrors.Usage("%s takes no arguments, got %q", cmd.CommandPath(), args[0])
	}
	return nil
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return apperrors.Usage("%s requires at least %d argument(s)", cmd.CommandPath(), n)
		}
		return nil
	}
}
