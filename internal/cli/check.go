package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"sha2sum/internal/checklist"
	apperrors "sha2sum/internal/errors"
	"sha2sum/internal/hash"
)

type checkOptions struct {
	quiet         bool
	status        bool
	ignoreMissing bool
	strict        bool
	warn          bool
}

type checkSummary struct {
	malformed  int
	unreadable int
	mismatched int
	verified   int
}

func (r *RootCommand) newCheckCommand() *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check LIST...",
		Short: "Verify files against checksum lists",
		Long: "Read checksum lists in gnu, bsd or oci style and verify every listed file.\n" +
			"A LIST of - reads standard input. The algorithm of each line is taken from the line itself.",
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runCheck(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "don't print OK for each verified file")
	cmd.Flags().BoolVar(&opts.status, "status", false, "print nothing, the exit code reports success")
	cmd.Flags().BoolVar(&opts.ignoreMissing, "ignore-missing", false, "don't fail or report status for missing files")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero for improperly formatted lines")
	cmd.Flags().BoolVarP(&opts.warn, "warn", "w", false, "warn about improperly formatted lines")
	return cmd
}

func (r *RootCommand) runCheck(ctx context.Context, lists []string, opts checkOptions) error {
	var (
		entries   []checklist.Entry
		sum       checkSummary
		stdinUsed bool
	)
	for _, list := range lists {
		var (
			found []checklist.Entry
			bad   []*checklist.LineError
			err   error
		)
		if list == hash.StdinName {
			if stdinUsed {
				return apperrors.Usage("standard input can be read as a list only once")
			}
			stdinUsed = true
			found, bad, err = checklist.Read(r.in)
		} else {
			found, bad, err = checklist.Load(list)
		}
		if err != nil {
			return errors.Wrapf(err, "read %s", list)
		}
		if opts.warn && !opts.status {
			for _, lineErr := range bad {
				fmt.Fprintf(r.errOut, "sha2sum: %s: %v\n", list, lineErr)
			}
		}
		sum.malformed += len(bad)
		entries = append(entries, found...)
	}
	if len(entries) == 0 {
		return errors.Wrap(apperrors.ErrChecksumMismatch, "no properly formatted checksum lines found")
	}

	jobs := make([]hash.Job, 0, len(entries))
	for _, e := range entries {
		jobs = append(jobs, hash.Job{Name: e.Name, Variant: e.Variant})
	}
	hashOpts := r.hashOptions()
	if stdinUsed {
		// the list consumed stdin; an entry named "-" hashes empty input
		hashOpts.Stdin = nil
	}
	results, err := hash.Files(ctx, jobs, r.cfg.Jobs, hashOpts)
	if err != nil {
		return err
	}

	for i, res := range results {
		name := displayName(entries[i].Name)
		switch {
		case res.Err != nil && opts.ignoreMissing && os.IsNotExist(errors.Cause(res.Err)):
			r.logger.Debug("skipping missing file", "name", entries[i].Name)
		case res.Err != nil:
			sum.unreadable++
			if !opts.status {
				fmt.Fprintf(r.errOut, "sha2sum: %s: %v\n", name, res.Err)
				fmt.Fprintf(r.out, "%s: FAILED open or read\n", name)
			}
		case !bytes.Equal(res.Sum, entries[i].Digest):
			sum.mismatched++
			if !opts.status {
				fmt.Fprintf(r.out, "%s: FAILED\n", name)
			}
		default:
			sum.verified++
			if !opts.quiet && !opts.status {
				fmt.Fprintf(r.out, "%s: OK\n", name)
			}
		}
	}

	if !opts.status {
		r.warnSummary(sum)
	}
	if opts.ignoreMissing && sum.verified == 0 && sum.mismatched == 0 && sum.unreadable == 0 {
		return errors.Wrap(apperrors.ErrChecksumMismatch, "no file was verified")
	}
	if sum.mismatched > 0 || sum.unreadable > 0 || (opts.strict && sum.malformed > 0) {
		return errors.Wrapf(apperrors.ErrChecksumMismatch,
			"%d mismatched, %d unreadable, %d malformed", sum.mismatched, sum.unreadable, sum.malformed)
	}
	return nil
}

func (r *RootCommand) warnSummary(sum checkSummary) {
	if sum.malformed > 0 {
		fmt.Fprintf(r.errOut, "sha2sum: WARNING: %d %s improperly formatted\n", sum.malformed, plural(sum.malformed, "line is", "lines are"))
	}
	if sum.unreadable > 0 {
		fmt.Fprintf(r.errOut, "sha2sum: WARNING: %d listed %s could not be read\n", sum.unreadable, plural(sum.unreadable, "file", "files"))
	}
	if sum.mismatched > 0 {
		fmt.Fprintf(r.errOut, "sha2sum: WARNING: %d computed %s did NOT match\n", sum.mismatched, plural(sum.mismatched, "checksum", "checksums"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
