package assets

import (
	"fmt"
	"path/filepath"

	"github.com/alnah/go-docite/internal/fileutil"
)

// stylePermissions makes cached styles readable by pandoc regardless of umask.
const stylePermissions = 0o644

// Materialize loads the named style and writes it to {dir}/{name}.csl,
// returning that path. An existing file with identical content is left
// untouched, so repeated conversions do not rewrite the cache.
func Materialize(loader AssetLoader, name, dir string) (string, error) {
	content, err := loader.LoadStyle(name)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name+styleExtension)
	if _, err := fileutil.WriteFileIfChanged(path, []byte(content), stylePermissions); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMaterialize, path, err)
	}

	return path, nil
}
