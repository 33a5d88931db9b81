package checklist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const maxLineSize = 1 << 20

// LineError describes one line of a list that could not be parsed.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

// Unwrap exposes the parse failure.
func (e *LineError) Unwrap() error { return e.Err }

// Read parses every line of r. Blank lines and lines starting with '#' are
// skipped. Malformed lines are reported separately so callers can warn and
// keep going; the returned error is reserved for read failures.
func Read(r io.Reader) ([]Entry, []*LineError, error) {
	var (
		entries []Entry
		bad     []*LineError
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := Parse(line)
		if err != nil {
			bad = append(bad, &LineError{Line: n, Err: err})
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "read checksum list")
	}
	return entries, bad, nil
}

// Load reads a checksum list from path.
func Load(path string) ([]Entry, []*LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open checksum list")
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Write renders entries to w, one line each.
func Write(w io.Writer, entries []Entry, style Style) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		line, err := e.Format(style)
		if err != nil {
			return err
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return errors.Wrap(err, "write checksum line")
		}
	}
	return errors.Wrap(bw.Flush(), "flush checksum list")
}

// SaveAtomic writes the list to path through a temp file and rename, so a
// reader never observes a partial list. Concurrent writers of the same path
// are refused with ErrLocked.
func SaveAtomic(path string, entries []Entry, style Style) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create list directory")
	}
	lock, err := acquireLock(path)
	if err != nil {
		return err
	}
	defer lock.release()
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sha2sum-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create list temp file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	if err := Write(tmp, entries, style); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "sync list temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close list temp file")
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.Wrap(err, "chmod list temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "rename list temp file")
	}
	return nil
}
