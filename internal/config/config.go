package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docite/internal/fileutil"
	"github.com/alnah/go-docite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxStyleLength = 4096 // bundled name or CSL path
	MaxPathLength  = 4096 // PATH_MAX on Linux
)

// Limits for numeric fields.
const (
	MaxTimeout      = time.Hour
	MaxClosingIndex = 64
)

// appDirName is the per-user config directory name.
const appDirName = "go-docite"

// Config holds all configuration for a docite run.
type Config struct {
	Style       string            `yaml:"style"` // Bundled style name or CSL path (empty = ieee)
	Assets      AssetsConfig      `yaml:"assets"`
	Pandoc      PandocConfig      `yaml:"pandoc"`
	Output      OutputConfig      `yaml:"output"`
	FrontMatter FrontMatterConfig `yaml:"frontMatter"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded styles
}

// PandocConfig defines how the pandoc engine is located and run.
type PandocConfig struct {
	Binary     string   `yaml:"binary"`     // Explicit pandoc path (empty = search)
	InstallDir string   `yaml:"installDir"` // Empty = user cache dir
	NoInstall  bool     `yaml:"noInstall"`  // Never download pandoc
	Timeout    Duration `yaml:"timeout"`    // 0 = no timeout
}

// OutputConfig defines optional preview outputs written next to the result.
type OutputConfig struct {
	HTML bool `yaml:"html"`
	PDF  bool `yaml:"pdf"`
}

// FrontMatterConfig overrides the expected front matter shape.
type FrontMatterConfig struct {
	ClosingIndex int `yaml:"closingIndex"` // 0 = default
}

// Duration is a time.Duration read from a YAML string such as "30s".
type Duration time.Duration

// UnmarshalYAML accepts Go duration strings.
func (d *Duration) UnmarshalYAML(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"'`)
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("style", c.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("pandoc.binary", c.Pandoc.Binary, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("pandoc.installDir", c.Pandoc.InstallDir, MaxPathLength); err != nil {
		return err
	}

	if t := c.Pandoc.Timeout.Std(); t < 0 || t > MaxTimeout {
		return fmt.Errorf("%w: pandoc.timeout: must be between 0 and %s, got %s", ErrInvalidConfig, MaxTimeout, t)
	}

	// Index 0 holds the opening delimiter, so the closing one must come after it.
	if ci := c.FrontMatter.ClosingIndex; ci != 0 && (ci < 1 || ci > MaxClosingIndex) {
		return fmt.Errorf("%w: frontMatter.closingIndex: must be between 1 and %d, got %d", ErrInvalidConfig, MaxClosingIndex, ci)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %w: %s (%d chars, max %d)", ErrInvalidConfig, ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with every option at its default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFile(configPath, &cfg); err != nil {
		var pathErr *os.PathError
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.As(err, &pathErr):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Extensions are tried in order .yaml, .yml; locations in order
// current directory, then the user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
