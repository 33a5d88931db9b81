package hash

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"sha2sum/internal/logging"
	"sha2sum/internal/progress"
	"sha2sum/internal/sha2"
)

// StdinName is the input name that reads standard input.
const StdinName = "-"

// Job names one input and the algorithm to hash it with.
type Job struct {
	Name    string
	Variant sha2.Variant
}

// Result is the outcome of one Job. Err is set when the input could not be
// read; Sum is empty in that case.
type Result struct {
	Name    string
	Variant sha2.Variant
	Sum     []byte
	Size    int64
	Elapsed time.Duration
	Err     error
}

// Options carries the collaborators File needs.
type Options struct {
	Stdin        io.Reader
	ProgressOut  io.Writer
	ShowProgress bool
	Logger       *slog.Logger
}

// File hashes one input. Opening and reading failures are returned as errors;
// the digest comes from finalising a fresh engine.
func File(ctx context.Context, job Job, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	res := Result{Name: job.Name, Variant: job.Variant}

	h, err := New(job.Variant)
	if err != nil {
		return res, err
	}

	start := time.Now()
	var (
		r     io.Reader
		total int64
	)
	if job.Name == StdinName {
		r = opts.Stdin
		if r == nil {
			r = strings.NewReader("")
		}
	} else {
		f, err := os.Open(job.Name)
		if err != nil {
			return res, errors.Wrap(err, "open input")
		}
		defer func() { _ = f.Close() }()
		info, err := f.Stat()
		if err != nil {
			return res, errors.Wrap(err, "stat input")
		}
		if info.IsDir() {
			return res, errors.Errorf("%s: is a directory", job.Name)
		}
		total = info.Size()
		r = f
	}

	out := opts.ProgressOut
	if out == nil {
		out = io.Discard
	}
	bar := progress.New(out, job.Name, total, opts.ShowProgress)
	n, err := Copy(ctx, h, bar.Wrap(r))
	bar.Finish()
	if err != nil {
		return res, err
	}

	sum, err := h.Hash()
	if err != nil {
		return res, err
	}
	res.Sum = sum
	res.Size = n
	res.Elapsed = time.Since(start)
	logger.Debug("hashed input",
		"name", job.Name,
		"algorithm", job.Variant.String(),
		"size", progress.HumanBytes(n),
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// Files hashes every job with at most parallel inputs in flight. Results are
// returned in job order. Per-input failures land in Result.Err; only
// cancellation of ctx aborts the whole run. Progress bars are suppressed when
// more than one input is hashed concurrently. Standard input is handed to the
// first StdinName job only.
func Files(ctx context.Context, jobs []Job, parallel int, opts Options) ([]Result, error) {
	if parallel < 1 {
		parallel = 1
	}
	if parallel > 1 && len(jobs) > 1 {
		opts.ShowProgress = false
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	stdin := opts.Stdin
	for i, job := range jobs {
		i, job := i, job // per-iteration copies (go 1.21 loop semantics)
		jobOpts := opts
		if job.Name == StdinName {
			// only the first stdin job reads it; later ones see empty input
			jobOpts.Stdin, stdin = stdin, nil
		}
		g.Go(func() error {
			res, err := File(gctx, job, jobOpts)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			res.Err = err
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
