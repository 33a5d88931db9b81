package progress

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func TestEnabled(t *testing.T) {
	buf := &bytes.Buffer{}
	if !Enabled(ModeAlways, buf) {
		t.Fatal("always should enable bars")
	}
	if Enabled(ModeNever, buf) {
		t.Fatal("never should disable bars")
	}
	if Enabled(ModeAuto, buf) {
		t.Fatal("auto should disable bars for a non-terminal writer")
	}
}

func TestDisabledBarPassesReaderThrough(t *testing.T) {
	r := strings.NewReader("data")
	bar := New(io.Discard, "file", 4, false)
	if got := bar.Wrap(r); got != io.Reader(r) {
		t.Fatal("disabled bar should return the reader unchanged")
	}
	bar.Finish()

	var nilBar *Bar
	if got := nilBar.Wrap(r); got != io.Reader(r) {
		t.Fatal("nil bar should return the reader unchanged")
	}
	nilBar.Finish()
}

func TestEnabledBarReadsEverything(t *testing.T) {
	out := &bytes.Buffer{}
	payload := strings.Repeat("x", 4096)
	bar := New(out, strings.Repeat("long-name-", 5)+".bin", int64(len(payload)), true)
	data, err := io.ReadAll(bar.Wrap(strings.NewReader(payload)))
	bar.Finish()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != payload {
		t.Fatalf("proxy reader altered data: got %d bytes", len(data))
	}
}

func TestRate(t *testing.T) {
	if got := Rate(2_000_000, time.Second); got != "2MB/s" {
		t.Fatalf("Rate() got %q want %q", got, "2MB/s")
	}
	if got := Rate(1000, 0); got != "1MB/s" {
		t.Fatalf("Rate() with zero elapsed got %q want %q", got, "1MB/s")
	}
	if got := HumanBytes(64_000_000); got != "64MB" {
		t.Fatalf("HumanBytes() got %q", got)
	}
}
