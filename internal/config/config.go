// Package config resolves sha2sum settings from flags, environment and an
// optional config file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "sha2sum/internal/errors"
	"sha2sum/internal/progress"
	"sha2sum/internal/sha2"
)

// Keys shared by flags, environment variables (SHA2SUM_<KEY>) and the config file.
const (
	KeyAlgorithm = "algorithm"
	KeyStyle     = "style"
	KeyJobs      = "jobs"
	KeyProgress  = "progress"
	KeyLogLevel  = "log-level"
	KeyConfig    = "config"

	envPrefix = "SHA2SUM"
)

// Config is the validated result of Load.
type Config struct {
	Algorithm sha2.Variant
	Style     string
	Jobs      int
	Progress  string
	LogLevel  string
	// File is the config file that was read, empty when none was found.
	File string
}

// AddFlags registers the persistent flags Load understands.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP(KeyAlgorithm, "a", "sha256", "hash algorithm: sha224, sha256, sha384 or sha512")
	fs.String(KeyStyle, "gnu", "checksum line style: gnu, bsd or oci")
	fs.IntP(KeyJobs, "j", runtime.NumCPU(), "number of files hashed in parallel")
	fs.String(KeyProgress, progress.ModeAuto, "progress bar: auto, always or never")
	fs.String(KeyLogLevel, "warn", "log level: debug, info, warn or error")
	fs.String(KeyConfig, "", "config file (default $XDG_CONFIG_HOME/sha2sum/config.yaml)")
}

// Load merges flags, SHA2SUM_* environment variables, the config file and
// defaults, in that order of precedence, and validates the result.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, errors.Wrap(err, "bind flags")
	}

	file, err := resolveFile(v.GetString(KeyConfig))
	if err != nil {
		return Config{}, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, apperrors.Usage("read config file %s: %v", file, err)
		}
	}

	algorithm, err := sha2.ParseVariant(v.GetString(KeyAlgorithm))
	if err != nil {
		return Config{}, apperrors.Usage("%s: %v", KeyAlgorithm, err)
	}
	cfg := Config{
		Algorithm: algorithm,
		Style:     strings.ToLower(v.GetString(KeyStyle)),
		Jobs:      v.GetInt(KeyJobs),
		Progress:  strings.ToLower(v.GetString(KeyProgress)),
		LogLevel:  v.GetString(KeyLogLevel),
		File:      file,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Style {
	case "gnu", "bsd", "oci":
	default:
		return apperrors.Usage("%s must be gnu, bsd or oci, got %q", KeyStyle, c.Style)
	}
	switch c.Progress {
	case progress.ModeAuto, progress.ModeAlways, progress.ModeNever:
	default:
		return apperrors.Usage("%s must be auto, always or never, got %q", KeyProgress, c.Progress)
	}
	if c.Jobs < 1 {
		return apperrors.Usage("%s must be at least 1, got %d", KeyJobs, c.Jobs)
	}
	return nil
}

// resolveFile returns the explicit config file, or the default one when it
// exists. An explicit file that does not exist is an error.
func resolveFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", apperrors.Usage("config file %s: %v", explicit, err)
		}
		return explicit, nil
	}
	path, err := DefaultPath()
	if err != nil {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", errors.New("APPDATA is not set")
		}
		return filepath.Join(appData, "sha2sum", "config.yaml"), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sha2sum", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user home dir")
	}
	return filepath.Join(home, ".config", "sha2sum", "config.yaml"), nil
}
