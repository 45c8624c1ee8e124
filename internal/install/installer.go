package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/alnah/go-docite/internal/logging"
)

// ErrDownload is returned when the release archive cannot be fetched.
var ErrDownload = errors.New("failed to download pandoc")

// MaxArchiveSize bounds the downloaded archive.
const MaxArchiveSize int64 = 512 << 20

// defaultHTTPTimeout applies when the installer creates its own client.
const defaultHTTPTimeout = 10 * time.Minute

// Installer downloads and installs pandoc. Zero fields take defaults:
// DefaultVersion, DefaultBaseURL, runtime.GOOS/GOARCH and a discard logger.
type Installer struct {
	Client  *http.Client
	BaseURL string
	Version string
	GOOS    string
	GOARCH  string
	Logger  *slog.Logger
}

// BinaryPath returns where Install places the binary inside dir.
func (i *Installer) BinaryPath(dir string) string {
	return filepath.Join(dir, BinaryName(i.goos()))
}

// Install downloads the release archive for the configured platform,
// extracts the pandoc binary into dir and returns its path.
// An existing binary at that path is replaced.
func (i *Installer) Install(ctx context.Context, dir string) (string, error) {
	name, err := AssetName(i.version(), i.goos(), i.goarch())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating install directory: %w", err)
	}

	archive, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	archivePath := archive.Name()
	defer func() { _ = os.Remove(archivePath) }()

	url := i.baseURL() + "/" + i.version() + "/" + name
	i.logger().Info("downloading pandoc", "version", i.version(), "url", url)

	start := time.Now()
	n, err := i.download(ctx, url, archive)
	if closeErr := archive.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: %w", ErrDownload, closeErr)
	}
	if err != nil {
		return "", err
	}
	i.logger().Debug("download complete", "bytes", n, "duration", time.Since(start))

	dest := i.BinaryPath(dir)
	if err := Extract(archivePath, name, BinaryName(i.goos()), dest); err != nil {
		return "", err
	}
	i.logger().Info("pandoc installed", "path", dest)

	return dest, nil
}

func (i *Installer) download(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDownload, err)
	}

	resp, err := i.client().Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: %s: %s", ErrDownload, url, resp.Status)
	}

	n, err := io.Copy(w, io.LimitReader(resp.Body, MaxArchiveSize+1))
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	if n > MaxArchiveSize {
		return n, fmt.Errorf("%w: archive larger than %d bytes", ErrDownload, MaxArchiveSize)
	}
	return n, nil
}

func (i *Installer) client() *http.Client {
	if i.Client != nil {
		return i.Client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func (i *Installer) baseURL() string {
	if i.BaseURL != "" {
		return strings.TrimRight(i.BaseURL, "/")
	}
	return DefaultBaseURL
}

func (i *Installer) version() string {
	if i.Version != "" {
		return i.Version
	}
	return DefaultVersion
}

func (i *Installer) goos() string {
	if i.GOOS != "" {
		return i.GOOS
	}
	return runtime.GOOS
}

func (i *Installer) goarch() string {
	if i.GOARCH != "" {
		return i.GOARCH
	}
	return runtime.GOARCH
}

func (i *Installer) logger() *slog.Logger {
	if i.Logger != nil {
		return i.Logger
	}
	return logging.Discard()
}
