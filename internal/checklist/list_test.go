package checklist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"sha2sum/internal/sha2"
)

func TestReadSkipsBlankAndReportsMalformed(t *testing.T) {
	input := strings.Join([]string{
		"# generated by sha2sum",
		abc256 + "  a.txt",
		"",
		"garbage",
		"SHA256 (b.txt) = " + abc256,
	}, "\n")

	entries, bad, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "a.txt" || entries[1].Name != "b.txt" {
		t.Fatalf("unexpected entries %#v", entries)
	}
	if len(bad) != 1 || bad[0].Line != 4 || !errors.Is(bad[0], ErrMalformed) {
		t.Fatalf("unexpected malformed lines %#v", bad)
	}
	if !strings.HasPrefix(bad[0].Error(), "line 4: ") {
		t.Fatalf("LineError message got %q", bad[0].Error())
	}
}

func TestSaveAtomicAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "SHA256SUMS")
	want := []Entry{
		{Variant: sha2.SHA256, Digest: mustHex(t, abc256), Name: "abc.txt"},
		{Variant: sha2.SHA512, Digest: make([]byte, 64), Name: "zero"},
	}
	if err := SaveAtomic(path, want, StyleBSD); err != nil {
		t.Fatalf("SaveAtomic() error = %v", err)
	}
	got, bad, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(bad) != 0 {
		t.Fatalf("unexpected malformed lines %v", bad)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Load() mismatch (-want +got):\n%s", diff)
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".sha2sum-*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestSaveAtomicKeepsOldListOnFormatError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SUMS")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	bad := []Entry{{Variant: sha2.SHA224, Digest: make([]byte, 28), Name: "x"}}
	if err := SaveAtomic(path, bad, StyleOCI); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("SaveAtomic() got %v want ErrUnsupported", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "old\n" {
		t.Fatalf("existing list was modified: %q", data)
	}
}

func TestWriteGNU(t *testing.T) {
	buf := &bytes.Buffer{}
	entries := []Entry{{Variant: sha2.SHA256, Digest: mustHex(t, abc256), Name: "a\nb"}}
	if err := Write(buf, entries, StyleGNU); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got, want := buf.String(), "\\"+abc256+"  a\\nb\n"; got != want {
		t.Fatalf("Write() got %q want %q", got, want)
	}
}

func TestSaveAtomicRefusesConcurrentWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SUMS")
	lock, err := acquireLock(path)
	if err != nil {
		t.Fatalf("acquireLock() error = %v", err)
	}
	entries := []Entry{{Variant: sha2.SHA256, Digest: mustHex(t, abc256), Name: "abc.txt"}}
	if err := SaveAtomic(path, entries, StyleGNU); !errors.Is(err, ErrLocked) {
		t.Fatalf("SaveAtomic() got %v want ErrLocked", err)
	}
	lock.release()

	if err := SaveAtomic(path, entries, StyleGNU); err != nil {
		t.Fatalf("SaveAtomic() after release error = %v", err)
	}
	if _, err := os.Stat(lockPath(path)); !os.IsNotExist(err) {
		t.Fatalf("lock file should be removed, stat err = %v", err)
	}
}
