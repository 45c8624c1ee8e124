package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// DefaultConfig / Validate
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Style != "" {
		t.Errorf("Style = %q, want empty", cfg.Style)
	}
	if cfg.Pandoc.NoInstall {
		t.Error("Pandoc.NoInstall = true, want false")
	}
	if cfg.Pandoc.Timeout != 0 {
		t.Errorf("Pandoc.Timeout = %v, want 0", cfg.Pandoc.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	if err := validateFieldLength("f", "1234567890", 10); err != nil {
		t.Errorf("value at limit: unexpected error %v", err)
	}

	err := validateFieldLength("pandoc.binary", "12345678901", 10)
	if !errors.Is(err, ErrFieldTooLong) || !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrFieldTooLong and ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "pandoc.binary") {
		t.Errorf("error %q should name the field", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "full valid config",
			cfg: Config{
				Style:       "apa",
				Assets:      AssetsConfig{BasePath: "/srv/styles"},
				Pandoc:      PandocConfig{Binary: "/usr/bin/pandoc", Timeout: Duration(30 * time.Second)},
				Output:      OutputConfig{HTML: true},
				FrontMatter: FrontMatterConfig{ClosingIndex: 6},
			},
		},
		{
			name:    "style too long",
			cfg:     Config{Style: strings.Repeat("a", MaxStyleLength+1)},
			wantErr: true,
		},
		{
			name:    "install dir too long",
			cfg:     Config{Pandoc: PandocConfig{InstallDir: strings.Repeat("d", MaxPathLength+1)}},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			cfg:     Config{Pandoc: PandocConfig{Timeout: Duration(-time.Second)}},
			wantErr: true,
		},
		{
			name:    "timeout above maximum",
			cfg:     Config{Pandoc: PandocConfig{Timeout: Duration(2 * time.Hour)}},
			wantErr: true,
		},
		{
			name:    "negative closing index",
			cfg:     Config{FrontMatter: FrontMatterConfig{ClosingIndex: -1}},
			wantErr: true,
		},
		{
			name:    "closing index above maximum",
			cfg:     Config{FrontMatter: FrontMatterConfig{ClosingIndex: MaxClosingIndex + 1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// LoadConfig
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads every section", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "docite.yaml", `style: apa
assets:
  basePath: ./my-assets
pandoc:
  binary: /opt/pandoc/bin/pandoc
  installDir: /tmp/pandoc
  noInstall: true
  timeout: 45s
output:
  html: true
  pdf: false
frontMatter:
  closingIndex: 5
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style != "apa" {
			t.Errorf("Style = %q, want %q", cfg.Style, "apa")
		}
		if cfg.Assets.BasePath != "./my-assets" {
			t.Errorf("Assets.BasePath = %q", cfg.Assets.BasePath)
		}
		if cfg.Pandoc.Binary != "/opt/pandoc/bin/pandoc" {
			t.Errorf("Pandoc.Binary = %q", cfg.Pandoc.Binary)
		}
		if cfg.Pandoc.InstallDir != "/tmp/pandoc" {
			t.Errorf("Pandoc.InstallDir = %q", cfg.Pandoc.InstallDir)
		}
		if !cfg.Pandoc.NoInstall {
			t.Error("Pandoc.NoInstall = false, want true")
		}
		if got := cfg.Pandoc.Timeout.Std(); got != 45*time.Second {
			t.Errorf("Pandoc.Timeout = %v, want 45s", got)
		}
		if !cfg.Output.HTML || cfg.Output.PDF {
			t.Errorf("Output = %+v, want html only", cfg.Output)
		}
		if cfg.FrontMatter.ClosingIndex != 5 {
			t.Errorf("FrontMatter.ClosingIndex = %d, want 5", cfg.FrontMatter.ClosingIndex)
		}
	})

	t.Run("quoted timeout is accepted", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "c.yaml", "pandoc:\n  timeout: \"2m\"\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if got := cfg.Pandoc.Timeout.Std(); got != 2*time.Minute {
			t.Errorf("Pandoc.Timeout = %v, want 2m", got)
		}
	})

	t.Run("invalid timeout returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "c.yaml", "pandoc:\n  timeout: soon\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "style: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "style: ieee\ncolour: blue\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("out of range value returns ErrInvalidConfig", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "range.yaml", "frontMatter:\n  closingIndex: 1000\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})
}

// Not parallel: changes the working directory.
func TestLoadConfig_ByName(t *testing.T) {
	t.Run("finds .yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "work.yaml", "style: apa\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style != "apa" {
			t.Errorf("Style = %q, want %q", cfg.Style, "apa")
		}
	})

	t.Run("falls back to .yml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "work.yml", "style: ieee\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style != "ieee" {
			t.Errorf("Style = %q, want %q", cfg.Style, "ieee")
		}
	})

	t.Run("missing name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("nope")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		for _, want := range []string{"nope.yaml", "nope.yml"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q should mention %q", err, want)
			}
		}
	})
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"./work.yaml", true},
		{"configs/work.yaml", true},
		{`C:\configs\work.yaml`, true},
	}

	for _, tt := range tests {
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
