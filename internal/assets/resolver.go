package assets

import (
	"errors"
	"sort"
)

// AssetResolver serves styles from a custom directory first and falls back
// to the bundled styles for names the directory does not have.
type AssetResolver struct {
	custom   *FilesystemLoader // nil without a custom directory
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath
// means bundled styles only; an invalid one is an error.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// LoadStyle loads name from the custom directory, then from the bundled set.
// Only ErrStyleNotFound falls through; a broken custom style is an error
// rather than being silently replaced by the bundled one.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if !errors.Is(err, ErrStyleNotFound) {
		return content, err
	}
	return r.embedded.LoadStyle(name)
}

// StyleNames lists every name LoadStyle can serve, sorted.
func (r *AssetResolver) StyleNames() ([]string, error) {
	names := BundledStyles()
	if r.custom == nil {
		return names, nil
	}

	custom, err := r.custom.StyleNames()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range custom {
		if !seen[n] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

// HasCustomLoader reports whether a custom style directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var (
	_ AssetLoader = (*AssetResolver)(nil)
	_ StyleLister = (*AssetResolver)(nil)
)
