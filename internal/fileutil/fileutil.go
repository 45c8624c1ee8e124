// Package fileutil provides file and path utility functions.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNotRegularFile = errors.New("not a regular file")
	ErrNotDirectory   = errors.New("not a directory")
)

// RequireReadableFile checks that path names an existing regular file that
// the current process can open for reading. The file is closed before return.
// Errors wrap the underlying fs error so os.ErrNotExist and os.ErrPermission
// can be matched with errors.Is.
func RequireReadableFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	f, err := os.Open(path) // #nosec G304 -- caller-provided path, only opened for a readability probe
	if err != nil {
		return err
	}
	return f.Close()
}

// RequireDirectory checks that path names an existing directory.
func RequireDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	return nil
}

// TransformFile reads the whole file, applies fn and writes the result back
// to the same path, keeping the file mode. The handle is never held across
// the read and the write.
func TransformFile(path string, fn func(string) string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- path produced by the pipeline
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(fn(string(content))), info.Mode().Perm())
}

// WriteFileIfChanged writes data to path unless the file already holds
// exactly these bytes. Parent directories are created as needed.
// Reports whether a write happened.
//
// The new content is written to a temp file in the same directory and
// renamed over path, so a concurrent reader sees either the old or the new
// bytes, never a partial file.
func WriteFileIfChanged(path string, data []byte, perm fs.FileMode) (bool, error) {
	existing, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the caller
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory: %w", err)
	}
	if err := writeAtomic(dir, path, data, perm); err != nil {
		return false, err
	}
	return true, nil
}

// writeAtomic writes data to a temp file in dir, then renames it to path.
func writeAtomic(dir, path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// DirWritable reports whether a file can be created inside dir.
func DirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".docite-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) or a file extension is treated as a path.
//
// Examples:
//   - "ieee" -> false (bundled style name)
//   - "apa.csl" -> true (file in the current directory)
//   - "./styles/apa.csl" -> true (relative path)
//   - "/absolute/chicago.csl" -> true (absolute)
//   - "C:\styles\apa.csl" -> true (Windows)
//   - "my-style" -> false (hyphenated name)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || filepath.Ext(s) != ""
}
