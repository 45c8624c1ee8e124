package assets

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "loads ieee style",
			styleName:   "ieee",
			wantContain: "<title>IEEE</title>",
		},
		{
			name:        "loads apa style",
			styleName:   "apa",
			wantContain: `citation-format="author-date"`,
		},
		{
			name:      "returns ErrStyleNotFound for nonexistent",
			styleName: "nonexistent-style-xyz",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "returns ErrInvalidAssetName for empty name",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for path traversal",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for name with extension",
			styleName: "ieee.csl",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}

			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_DefaultStyleIsBundled(t *testing.T) {
	t.Parallel()

	if _, err := NewEmbeddedLoader().LoadStyle(DefaultStyleName); err != nil {
		t.Fatalf("default style %q not bundled: %v", DefaultStyleName, err)
	}
}

func TestBundledStyles(t *testing.T) {
	t.Parallel()

	want := []string{"apa", "ieee"}
	if diff := cmp.Diff(want, BundledStyles()); diff != "" {
		t.Errorf("BundledStyles() mismatch (-want +got):\n%s", diff)
	}
}
