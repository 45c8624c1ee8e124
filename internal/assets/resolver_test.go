package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeCustomStyle creates {base}/styles/{name}.csl with the given content.
func writeCustomStyle(t *testing.T, base, name, content string) {
	t.Helper()

	dir := filepath.Join(base, "styles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".csl"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write style: %v", err)
	}
}

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("HasCustomLoader() = true, want false")
		}
	})

	t.Run("valid directory enables custom loader", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !r.HasCustomLoader() {
			t.Error("HasCustomLoader() = false, want true")
		}
	})

	t.Run("invalid directory returns ErrInvalidBasePath", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeCustomStyle(t, base, "chicago", "<style>chicago</style>")
	writeCustomStyle(t, base, "ieee", "<style>my ieee</style>")

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name        string
		style       string
		wantContain string
		wantErr     error
	}{
		{
			name:        "custom-only style",
			style:       "chicago",
			wantContain: "chicago",
		},
		{
			name:        "custom overrides embedded",
			style:       "ieee",
			wantContain: "my ieee",
		},
		{
			name:        "falls back to embedded",
			style:       "apa",
			wantContain: "American Psychological Association",
		},
		{
			name:    "unknown style",
			style:   "harvard",
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "validation error is not fallen back",
			style:   "../ieee",
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.style, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) should contain %q", tt.style, tt.wantContain)
			}
		})
	}
}

func TestAssetResolver_CustomInvalidStyleNotReplaced(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeCustomStyle(t, base, "ieee", "not xml at all")

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if _, err := r.LoadStyle("ieee"); !errors.Is(err, ErrInvalidStyle) {
		t.Errorf("LoadStyle() error = %v, want ErrInvalidStyle", err)
	}
}

func TestAssetResolver_StyleNames(t *testing.T) {
	t.Parallel()

	t.Run("bundled only", func(t *testing.T) {
		t.Parallel()

		r, _ := NewAssetResolver("")
		got, err := r.StyleNames()
		if err != nil {
			t.Fatalf("StyleNames() error = %v", err)
		}
		if diff := cmp.Diff([]string{"apa", "ieee"}, got); diff != "" {
			t.Errorf("StyleNames() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("merged with custom", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		writeCustomStyle(t, base, "chicago", "<style/>")
		writeCustomStyle(t, base, "ieee", "<style/>")

		r, err := NewAssetResolver(base)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		got, err := r.StyleNames()
		if err != nil {
			t.Fatalf("StyleNames() error = %v", err)
		}
		if diff := cmp.Diff([]string{"apa", "chicago", "ieee"}, got); diff != "" {
			t.Errorf("StyleNames() mismatch (-want +got):\n%s", diff)
		}
	})
}
