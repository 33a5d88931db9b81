package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"sha2sum/internal/buildinfo"
)

func newTestApp(stdin string) (App, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return App{Stdout: stdout, Stderr: stderr, Stdin: strings.NewReader(stdin)}, stdout, stderr
}

func TestRunVersionReturnsZeroAndPrintsExpectedLines(t *testing.T) {
	previousVersion, previousCommit, previousDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	t.Cleanup(func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = previousVersion, previousCommit, previousDate
	})
	buildinfo.Version = "v0.0.1"
	buildinfo.Commit = "deadbeef"
	buildinfo.Date = "2026-02-01T00:00:00Z"
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	application, stdout, _ := newTestApp("")
	if code := application.Run(context.Background(), []string{"version"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d; output=%q", len(lines), stdout.String())
	}

	expectedPrefixes := []string{"sha2sum ", "commit: ", "built:  ", "go:     ", "os/arch:"}
	for i, prefix := range expectedPrefixes {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Fatalf("line %d expected prefix %q, got %q", i+1, prefix, lines[i])
		}
	}
}

func TestRunExitCodes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  int
	}{
		{name: "sum stdin", args: []string{"sum", "--progress", "never"}, stdin: "abc", want: 0},
		{name: "usage", args: []string{"sum", "--jobs", "0"}, want: 2},
		{name: "unknown algorithm", args: []string{"sum", "-a", "md5"}, want: 2},
		{name: "mismatch", args: []string{"check", "-"}, stdin: strings.Repeat("0", 64) + "  -\n", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			application, _, stderr := newTestApp(tt.stdin)
			if got := application.Run(context.Background(), tt.args); got != tt.want {
				t.Fatalf("exit code got %d want %d; stderr=%q", got, tt.want, stderr.String())
			}
			if tt.want != 0 && !strings.HasPrefix(stderr.String(), "sha2sum") {
				t.Fatalf("expected error on stderr, got %q", stderr.String())
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	application, _, _ := newTestApp(strings.Repeat("a", 1024))
	if code := application.Run(ctx, []string{"sum", "--progress", "never"}); code != 1 {
		t.Fatalf("cancelled run exit code got %d want 1", code)
	}
}
