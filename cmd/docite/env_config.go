package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-docite/internal/config"
)

// envPrefix namespaces docite's environment variables.
const envPrefix = "DOCITE_"

// envConfig holds configuration from environment variables, which a
// .env file in the working directory may also provide.
type envConfig struct {
	ConfigPath string        // DOCITE_CONFIG: config file name or path
	Style      string        // DOCITE_STYLE: bundled style name or CSL path
	Pandoc     string        // DOCITE_PANDOC: pandoc binary path
	InstallDir string        // DOCITE_INSTALL_DIR: where pandoc is installed
	Timeout    time.Duration // DOCITE_TIMEOUT: pandoc timeout
	NoInstall  bool          // DOCITE_NO_INSTALL: never download pandoc
}

// knownEnvVars lists valid DOCITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCITE_CONFIG":      true,
	"DOCITE_STYLE":       true,
	"DOCITE_PANDOC":      true,
	"DOCITE_INSTALL_DIR": true,
	"DOCITE_TIMEOUT":     true,
	"DOCITE_NO_INSTALL":  true,
}

// loadEnvConfig reads the DOCITE_* variables through getenv.
// Malformed durations and booleans are reported as errors.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath: getenv("DOCITE_CONFIG"),
		Style:      getenv("DOCITE_STYLE"),
		Pandoc:     getenv("DOCITE_PANDOC"),
		InstallDir: getenv("DOCITE_INSTALL_DIR"),
	}

	if v := getenv("DOCITE_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return nil, fmt.Errorf("DOCITE_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if v := getenv("DOCITE_NO_INSTALL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: DOCITE_NO_INSTALL: %q is not a boolean", ErrInvalidFlag, v)
		}
		cfg.NoInstall = b
	}

	return cfg, nil
}

// warnUnknownEnvVars logs warnings for unrecognized DOCITE_* variables.
// Helps catch typos like DOCITE_STYLEFILE instead of DOCITE_STYLE.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with the environment.
// Flags are merged afterwards, giving: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Pandoc != "" {
		cfg.Pandoc.Binary = env.Pandoc
	}
	if env.InstallDir != "" {
		cfg.Pandoc.InstallDir = env.InstallDir
	}
	if env.Timeout > 0 {
		cfg.Pandoc.Timeout = config.Duration(env.Timeout)
	}
	if env.NoInstall {
		cfg.Pandoc.NoInstall = true
	}
}

// mergeFlags applies explicitly set flags on top of cfg.
func mergeFlags(f *cliFlags, cfg *config.Config) error {
	if f.style != "" {
		cfg.Style = f.style
	}
	if f.pandoc != "" {
		cfg.Pandoc.Binary = f.pandoc
	}
	if f.noInstall {
		cfg.Pandoc.NoInstall = true
	}
	if f.timeout != "" {
		d, err := parseTimeout(f.timeout)
		if err != nil {
			return fmt.Errorf("--timeout: %w", err)
		}
		cfg.Pandoc.Timeout = config.Duration(d)
	}
	if f.html {
		cfg.Output.HTML = true
	}
	if f.pdf {
		cfg.Output.PDF = true
	}
	return nil
}

// parseTimeout parses a positive duration such as "30s" or "2m".
func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid timeout %q", ErrInvalidFlag, s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidFlag, d)
	}
	return d, nil
}
