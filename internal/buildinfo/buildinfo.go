// Package buildinfo provides build metadata for sha2sum binaries.
package buildinfo

import (
	"fmt"
	"runtime"

	"github.com/blang/semver/v4"
)

var (
	// Version is the release version and is intended to be injected at build time.
	Version    string
	// Commit is the source control revision and is intended to be injected at build time.
	Commit string
	// Date is the build timestamp and is intended to be injected at build time.
	Date string
)

// Info contains normalized build metadata.
type Info struct {
	Version    string
	// RawVersion is Version as injected, before semver normalisation.
	RawVersion string
	Commit     string
	Date       string
	Go         string
	OS         string
	Arch       string
}

// Get returns build metadata with defaults when build flags are not provided.
// Versions that parse as semver are printed in canonical form with a leading v.
func Get() Info {
	raw := Version
	if raw == "" {
		raw = "dev"
	}
	version := raw
	if v, err := semver.ParseTolerant(raw); err == nil {
		version = "v" + v.String()
	}

	commit := Commit
	if commit == "" {
		commit = "unknown"
	}

	date := Date
	if date == "" {
		date = "unknown"
	}

	return Info{
		Version:    version,
		RawVersion: raw,
		Commit:     commit,
		Date:       date,
		Go:         runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

// String formats build metadata for CLI output.
// A version rewritten by normalisation is followed by the injected form.
func (i Info) String() string {
	version := i.Version
	if i.RawVersion != "" && i.RawVersion != i.Version {
		version += " (" + i.RawVersion + ")"
	}
	return fmt.Sprintf("sha2sum %s\ncommit: %s\nbuilt:  %s\ngo:     %s\nos/arch:%s/%s", version, i.Commit, i.Date, i.Go, i.OS, i.Arch)
}
