package docite

import (
	"errors"
	"fmt"

	"github.com/alnah/go-docite/internal/assets"
	"github.com/alnah/go-docite/internal/fileutil"
)

// DefaultStyle is the bundled style used when Input.Style is empty.
const DefaultStyle = assets.DefaultStyleName

// StyleLoader loads CSL style content by bundled name (without extension).
// It must return an error matching assets.ErrStyleNotFound for unknown names.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}

// BundledStyles returns the names of the styles shipped with docite.
func BundledStyles() []string {
	return assets.BundledStyles()
}

// StyleResolver turns a style descriptor into a CSL file path pandoc can read.
// The zero value uses the embedded styles and the default cache directory.
type StyleResolver struct {
	Loader   StyleLoader
	CacheDir string
}

// ResolveStyle resolves style with a zero StyleResolver.
func ResolveStyle(style string) (string, error) {
	return (&StyleResolver{}).Resolve(style)
}

// Resolve maps style to a file path:
//   - "" or "ieee": the bundled IEEE style;
//   - a name known to the loader, such as "apa": that style;
//   - anything else: returned unchanged, treated as a CSL path.
//
// Bundled styles are written to CacheDir (only when the cached copy
// differs) because pandoc reads styles from disk. The contents of a
// caller-provided path are not checked here.
//
// Resolve fails only when a named style cannot be served: the loader
// rejects it, or the cache write fails (assets.ErrMaterialize). Convert
// reports both as ErrInput.
func (r *StyleResolver) Resolve(style string) (string, error) {
	name := style
	if name == "" {
		name = DefaultStyle
	}

	if fileutil.IsFilePath(name) || assets.ValidateAssetName(name) != nil {
		return style, nil
	}

	path, err := assets.Materialize(r.loader(), name, r.cacheDir())
	if errors.Is(err, assets.ErrStyleNotFound) && style != "" {
		// Not a bundled name: let the caller's path check report it.
		return style, nil
	}
	if err != nil {
		return "", fmt.Errorf("resolving style %q: %w", name, err)
	}
	return path, nil
}

// IsBundled reports whether Resolve serves style from the loader (a bundled
// or custom named style) rather than treating it as a caller path.
func (r *StyleResolver) IsBundled(style string) bool {
	if style == "" {
		return true
	}
	if fileutil.IsFilePath(style) || assets.ValidateAssetName(style) != nil {
		return false
	}
	_, err := r.loader().LoadStyle(style)
	return err == nil
}

func (r *StyleResolver) loader() StyleLoader {
	if r.Loader != nil {
		return r.Loader
	}
	return assets.NewEmbeddedLoader()
}

func (r *StyleResolver) cacheDir() string {
	if r.CacheDir != "" {
		return r.CacheDir
	}
	return assets.DefaultCacheDir()
}
