package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const minimalCSL = `<?xml version="1.0" encoding="utf-8"?>
<style xmlns="http://purl.org/net/xbiblio/csl" class="in-text" version="1.0">
  <info><title>Test</title></info>
</style>
`

func writeStyleFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestNewFilesystemLoader - Base directory validation
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	writeStyleFile(t, file, "x")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "directory", path: t.TempDir()},
		{name: "empty path", path: "", wantErr: true},
		{name: "missing directory", path: filepath.Join(t.TempDir(), "missing"), wantErr: true},
		{name: "regular file", path: file, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFilesystemLoader(tt.path)
			if tt.wantErr && !errors.Is(err, ErrInvalidBasePath) {
				t.Errorf("error = %v, want ErrInvalidBasePath", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader_LoadStyle - Layouts, validation and containment
// ---------------------------------------------------------------------------

func TestFilesystemLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeStyleFile(t, filepath.Join(base, "styles", "nature.csl"), minimalCSL)
	writeStyleFile(t, filepath.Join(base, "chicago-author-date.csl"), minimalCSL)
	writeStyleFile(t, filepath.Join(base, "styles", "both.csl"), minimalCSL+"<!-- nested -->")
	writeStyleFile(t, filepath.Join(base, "both.csl"), minimalCSL+"<!-- flat -->")
	writeStyleFile(t, filepath.Join(base, "styles", "notes.csl"), "just some notes")

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	tests := []struct {
		name    string
		style   string
		want    string
		wantErr error
	}{
		{name: "styles subdirectory", style: "nature", want: minimalCSL},
		{name: "flat repository layout", style: "chicago-author-date", want: minimalCSL},
		{name: "subdirectory wins", style: "both", want: minimalCSL + "<!-- nested -->"},
		{name: "not a CSL file", style: "notes", wantErr: ErrInvalidStyle},
		{name: "unknown", style: "harvard", wantErr: ErrStyleNotFound},
		{name: "traversal name", style: "../nature", wantErr: ErrInvalidAssetName},
		{name: "extension in name", style: "nature.csl", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			if got != tt.want {
				t.Errorf("LoadStyle(%q) = %q, want %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}

	outside := filepath.Join(t.TempDir(), "secret.csl")
	writeStyleFile(t, outside, minimalCSL)

	base := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(base, "escape.csl")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadStyle("escape"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle() error = %v, want ErrPathTraversal", err)
	}
}

func TestFilesystemLoader_StyleNames(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeStyleFile(t, filepath.Join(base, "styles", "nature.csl"), minimalCSL)
	writeStyleFile(t, filepath.Join(base, "styles", "shared.csl"), minimalCSL)
	writeStyleFile(t, filepath.Join(base, "shared.csl"), minimalCSL)
	writeStyleFile(t, filepath.Join(base, "vancouver.csl"), minimalCSL)
	writeStyleFile(t, filepath.Join(base, "README.md"), "docs")
	writeStyleFile(t, filepath.Join(base, "bad name.csl"), minimalCSL)
	if err := os.Mkdir(filepath.Join(base, "dependent.csl"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	got, err := loader.StyleNames()
	if err != nil {
		t.Fatalf("StyleNames() error = %v", err)
	}
	want := []string{"nature", "shared", "vancouver"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("StyleNames() mismatch (-want +got):\n%s", diff)
	}
}
