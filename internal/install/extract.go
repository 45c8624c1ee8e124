package install

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Sentinel errors for extraction.
var (
	ErrUnsupportedArchive = errors.New("unsupported archive format")
	ErrBinaryNotFound     = errors.New("pandoc binary not found in archive")
	ErrBinaryTooLarge     = errors.New("pandoc binary exceeds size limit")
	ErrExtract            = errors.New("failed to extract archive")
)

// MaxBinarySize bounds the extracted binary (pandoc is ~200MB unpacked).
const MaxBinarySize int64 = 1 << 30

// Injectable functions for testing.
var (
	gzipNewReader = gzip.NewReader
	xzNewReader   = xz.NewReader
)

// Extract copies the entry whose base name is binary from the archive at
// archivePath into dest with mode 0755. The archive format is taken from
// the suffix of archiveName.
func Extract(archivePath, archiveName, binary, dest string) error {
	switch {
	case strings.HasSuffix(archiveName, ".tar.gz"), strings.HasSuffix(archiveName, ".tgz"):
		return extractTar(archivePath, binary, dest, func(r io.Reader) (io.Reader, func(), error) {
			gz, err := gzipNewReader(r)
			if err != nil {
				return nil, nil, fmt.Errorf("creating gzip reader: %w", err)
			}
			return gz, func() { _ = gz.Close() }, nil
		})
	case strings.HasSuffix(archiveName, ".tar.xz"), strings.HasSuffix(archiveName, ".txz"):
		return extractTar(archivePath, binary, dest, func(r io.Reader) (io.Reader, func(), error) {
			xr, err := xzNewReader(r)
			if err != nil {
				return nil, nil, fmt.Errorf("creating xz reader: %w", err)
			}
			return xr, func() {}, nil
		})
	case strings.HasSuffix(archiveName, ".zip"):
		return extractZip(archivePath, binary, dest)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedArchive, archiveName)
	}
}

type decompressor func(io.Reader) (io.Reader, func(), error)

func extractTar(archivePath, binary, dest string, decompress decompressor) error {
	f, err := os.Open(archivePath) // #nosec G304 -- archive path is created by the installer
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}
	defer func() { _ = f.Close() }()

	r, closeFn, err := decompress(f)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}
	defer closeFn()

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: reading tar header: %w", ErrExtract, err)
		}
		if header.Typeflag != tar.TypeReg || !isBinaryEntry(header.Name, binary) {
			continue
		}
		if header.Size > MaxBinarySize {
			return fmt.Errorf("%w: %s (%d bytes)", ErrBinaryTooLarge, header.Name, header.Size)
		}
		return writeBinary(dest, tr)
	}

	return fmt.Errorf("%w: %s", ErrBinaryNotFound, binary)
}

func extractZip(archivePath, binary, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}
	defer func() { _ = zr.Close() }()

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !isBinaryEntry(entry.Name, binary) {
			continue
		}
		if entry.UncompressedSize64 > uint64(MaxBinarySize) {
			return fmt.Errorf("%w: %s (%d bytes)", ErrBinaryTooLarge, entry.Name, entry.UncompressedSize64)
		}
		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("%w: opening %s: %w", ErrExtract, entry.Name, err)
		}
		err = writeBinary(dest, rc)
		_ = rc.Close()
		return err
	}

	return fmt.Errorf("%w: %s", ErrBinaryNotFound, binary)
}

// isBinaryEntry matches archive entries like "pandoc-3.6.4/bin/pandoc".
// Archive names always use forward slashes.
func isBinaryEntry(name, binary string) bool {
	clean := path.Clean(name)
	if strings.HasPrefix(clean, "..") {
		return false
	}
	return path.Base(clean) == binary
}

// writeBinary streams r into dest through a temp file in the same directory,
// then renames it into place so a partial download never looks installed.
func writeBinary(dest string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".pandoc-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	n, err := io.Copy(tmp, io.LimitReader(r, MaxBinarySize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: writing binary: %w", ErrExtract, err)
	}
	if n > MaxBinarySize {
		return fmt.Errorf("%w: more than %d bytes", ErrBinaryTooLarge, MaxBinarySize)
	}

	if err := os.Chmod(tmpName, 0o755); err != nil { // #nosec G302 -- installed binary must be executable
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}
	return nil
}
