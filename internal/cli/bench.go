package cli

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/klauspost/cpuid"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"sha2sum/internal/config"
	apperrors "sha2sum/internal/errors"
	"sha2sum/internal/progress"
	"sha2sum/internal/sha2"
)

const benchChunk = 1 << 20

type benchOptions struct {
	size       string
	profile    string
	profileDir string
}

func (r *RootCommand) newBenchCommand() *cobra.Command {
	var opts benchOptions
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure hashing throughput",
		Long:  "Hash an in-memory buffer with every variant, or only --algorithm when it is given, and report throughput.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variants := sha2.Variants()
			if cmd.Flags().Changed(config.KeyAlgorithm) {
				variants = []sha2.Variant{r.cfg.Algorithm}
			}
			return r.runBench(cmd.Context(), variants, opts)
		},
	}
	cmd.Flags().StringVar(&opts.size, "size", "64MiB", "bytes hashed per algorithm")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "write a cpu or mem profile")
	cmd.Flags().StringVar(&opts.profileDir, "profile-dir", ".", "directory for profile output")
	return cmd
}

func (r *RootCommand) runBench(ctx context.Context, variants []sha2.Variant, opts benchOptions) error {
	size, err := units.RAMInBytes(opts.size)
	if err != nil {
		return apperrors.Usage("size: %v", err)
	}
	if size < 0 {
		return apperrors.Usage("size must not be negative, got %s", opts.size)
	}

	switch opts.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.profileDir), profile.Quiet, profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(opts.profileDir), profile.Quiet, profile.NoShutdownHook).Stop()
	default:
		return apperrors.Usage("profile must be cpu or mem, got %q", opts.profile)
	}

	if _, err := fmt.Fprintf(r.out, "cpu: %s\n", cpuName()); err != nil {
		return errors.Wrap(err, "write bench output")
	}
	buf := make([]byte, benchChunk)
	for i := range buf {
		buf[i] = byte(i)
	}
	for _, v := range variants {
		sum, elapsed, err := benchVariant(ctx, v, buf, size)
		if err != nil {
			return err
		}
		r.logger.Debug("bench finished", "algorithm", v.String(), "elapsed", elapsed)
		if _, err := fmt.Fprintf(r.out, "%-7s %10s in %-10s %12s  %x\n",
			v, progress.HumanBytes(size), elapsed.Round(time.Microsecond), progress.Rate(size, elapsed), sum[:8]); err != nil {
			return errors.Wrap(err, "write bench output")
		}
	}
	return nil
}

func benchVariant(ctx context.Context, v sha2.Variant, buf []byte, size int64) ([]byte, time.Duration, error) {
	e, err := sha2.New(v)
	if err != nil {
		return nil, 0, err
	}
	start := time.Now()
	for done := int64(0); done < size; {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		n := min(int64(len(buf)), size-done)
		if err := e.Input(buf[:n]); err != nil {
			return nil, 0, err
		}
		done += n
	}
	sum, err := e.Hash()
	if err != nil {
		return nil, 0, err
	}
	return sum, time.Since(start), nil
}

func cpuName() string {
	if name := strings.TrimSpace(cpuid.CPU.BrandName); name != "" {
		return name
	}
	return runtime.GOARCH
}
