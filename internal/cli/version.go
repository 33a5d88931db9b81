package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"sha2sum/internal/buildinfo"
)

// NewVersionCommand creates the version subcommand.
func NewVersionCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := fmt.Fprintln(out, buildinfo.Get().String()); err != nil {
				return errors.Wrap(err, "write version output")
			}

			return nil
		},
	}
}
