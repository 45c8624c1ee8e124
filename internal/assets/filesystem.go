package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// styleSniffLength is how much of a file is searched for the CSL root element.
const styleSniffLength = 4096

// FilesystemLoader loads CSL styles from a directory. Both layouts are
// accepted, first match wins:
//
//	{basePath}/styles/{name}.csl   (docite asset directory)
//	{basePath}/{name}.csl          (checkout of the CSL styles repository)
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for basePath.
// Returns ErrInvalidBasePath unless basePath is a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = real
	}

	info, err := os.Stat(absPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadStyle returns the content of the named style. The file must contain
// a CSL <style> element near its start, otherwise ErrInvalidStyle.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	for _, dir := range f.searchDirs() {
		path := filepath.Join(dir, name+styleExtension)
		if err := f.contain(path); err != nil {
			return "", err
		}

		content, err := os.ReadFile(path) // #nosec G304 -- name validated, path contained
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, path, err)
		}
		if !looksLikeCSL(content) {
			return "", fmt.Errorf("%w: %s", ErrInvalidStyle, path)
		}
		return string(content), nil
	}

	return "", fmt.Errorf("%w: %q in %s", ErrStyleNotFound, name, f.basePath)
}

// StyleNames lists the loadable style names of both layouts, sorted and
// without duplicates. Files with invalid names are skipped.
func (f *FilesystemLoader) StyleNames() ([]string, error) {
	seen := make(map[string]bool)
	for _, dir := range f.searchDirs() {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		for _, e := range entries {
			name, ok := strings.CutSuffix(e.Name(), styleExtension)
			if ok && !e.IsDir() && ValidateAssetName(name) == nil {
				seen[name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *FilesystemLoader) searchDirs() []string {
	return []string{filepath.Join(f.basePath, "styles"), f.basePath}
}

// contain rejects paths that resolve, through symlinks, outside basePath.
// A missing file passes and is reported by the read.
func (f *FilesystemLoader) contain(path string) error {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	if !strings.HasPrefix(path, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, path)
	}
	return nil
}

// looksLikeCSL reports whether content opens a CSL <style> element.
func looksLikeCSL(content []byte) bool {
	head := content[:min(len(content), styleSniffLength)]
	return bytes.Contains(head, []byte("<style"))
}

var (
	_ AssetLoader = (*FilesystemLoader)(nil)
	_ StyleLister = (*FilesystemLoader)(nil)
)
