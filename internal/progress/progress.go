// Package progress provides hashing progress bars and throughput formatting.
package progress

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/docker/go-units"
	"github.com/mattn/go-isatty"
)

const (
	// Modes accepted by Enabled.
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"

	template  = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{speed . }}`
	nameWidth = 30
)

// Enabled reports whether bars should be drawn on w for the given mode.
// In auto mode bars are drawn only when w is a terminal.
func Enabled(mode string, w io.Writer) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Bar tracks bytes read from one input. A nil or disabled Bar is a no-op.
type Bar struct {
	bar *pb.ProgressBar
}

// New creates a bar for an input of total bytes labelled with name.
func New(w io.Writer, name string, total int64, enabled bool) *Bar {
	if !enabled || total <= 0 {
		return &Bar{}
	}
	label := filepath.Base(name)
	// abbreviate long names so the bar fits a standard terminal
	if len(label) > nameWidth {
		label = label[:nameWidth-3] + "..."
	}
	bar := pb.New64(total).
		SetWriter(w).
		SetTemplateString(template).
		Set(pb.Bytes, true).
		Set("prefix", label).
		SetWidth(79)
	bar.Start()
	return &Bar{bar: bar}
}

// Wrap returns a reader that advances the bar as r is consumed.
func (b *Bar) Wrap(r io.Reader) io.Reader {
	if b == nil || b.bar == nil {
		return r
	}
	return b.bar.NewProxyReader(r)
}

// Finish draws the final state and releases the bar.
func (b *Bar) Finish() {
	if b == nil || b.bar == nil {
		return
	}
	b.bar.Finish()
}

// HumanBytes formats a byte count, e.g. "64MB".
func HumanBytes(n int64) string {
	return units.HumanSize(float64(n))
}

// Rate formats bytes over elapsed as a per-second throughput.
func Rate(bytes int64, elapsed time.Duration) string {
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}
	return units.HumanSize(float64(bytes)/elapsed.Seconds()) + "/s"
}
