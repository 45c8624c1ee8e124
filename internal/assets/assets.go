package assets

import (
	"os"
	"path/filepath"
)

// DefaultStyleName is the built-in citation style used when none is requested.
const DefaultStyleName = "ieee"

// styleExtension is the file extension of CSL styles.
const styleExtension = ".csl"

// appDirName names docite's directory under the user cache directory.
const appDirName = "go-docite"

// DefaultCacheDir returns the directory bundled styles are written to,
// <UserCacheDir>/go-docite/styles, falling back to the system temp directory
// when no user cache directory is available.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, appDirName, "styles")
}
