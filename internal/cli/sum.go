package cli

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"sha2sum/internal/checklist"
	apperrors "sha2sum/internal/errors"
	"sha2sum/internal/hash"
	"sha2sum/internal/sha2"
)

func (r *RootCommand) newSumCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sum [FILE]...",
		Short: "Print checksums of files",
		Long:  "Print a checksum line for every FILE. With no FILE, or when FILE is -, read standard input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runSum(cmd.Context(), args, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the checksum list atomically to this file")
	return cmd
}

func (r *RootCommand) runSum(ctx context.Context, args []string, output string) error {
	style, err := checklist.ParseStyle(r.cfg.Style)
	if err != nil {
		return apperrors.Usage("%v", err)
	}
	if style == checklist.StyleOCI && r.cfg.Algorithm == sha2.SHA224 {
		return apperrors.Usage("%s cannot be written in %s style", r.cfg.Algorithm, style)
	}
	if len(args) == 0 {
		args = []string{hash.StdinName}
	}

	jobs := make([]hash.Job, 0, len(args))
	for _, name := range args {
		jobs = append(jobs, hash.Job{Name: name, Variant: r.cfg.Algorithm})
	}
	results, err := hash.Files(ctx, jobs, r.cfg.Jobs, r.hashOptions())
	if err != nil {
		return err
	}

	entries := make([]checklist.Entry, 0, len(results))
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(r.errOut, "sha2sum: %s: %v\n", displayName(res.Name), res.Err)
			continue
		}
		entries = append(entries, checklist.Entry{Variant: res.Variant, Digest: res.Sum, Name: res.Name})
	}

	if output != "" {
		if err := checklist.SaveAtomic(output, entries, style); err != nil {
			return err
		}
		r.logger.Info("wrote checksum list", "path", output, "entries", len(entries))
	} else if err := checklist.Write(r.out, entries, style); err != nil {
		return err
	}

	if failed > 0 {
		return errors.Errorf("%d of %d inputs could not be read", failed, len(results))
	}
	return nil
}
