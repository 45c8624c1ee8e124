package install

import (
	"errors"
	"fmt"
)

// DefaultVersion is the pandoc release installed when none is requested.
// Citeproc support requires pandoc 2.11 or newer.
const DefaultVersion = "3.6.4"

// DefaultBaseURL is the release download root.
const DefaultBaseURL = "https://github.com/jgm/pandoc/releases/download"

// ErrUnsupportedPlatform is returned when no release archive exists for the
// requested OS and architecture.
var ErrUnsupportedPlatform = errors.New("no pandoc release for platform")

// AssetName returns the release archive name for version on goos/goarch.
func AssetName(version, goos, goarch string) (string, error) {
	switch goos {
	case "linux":
		switch goarch {
		case "amd64", "arm64":
			return fmt.Sprintf("pandoc-%s-linux-%s.tar.gz", version, goarch), nil
		}
	case "darwin":
		switch goarch {
		case "amd64":
			return fmt.Sprintf("pandoc-%s-x86_64-macOS.zip", version), nil
		case "arm64":
			return fmt.Sprintf("pandoc-%s-arm64-macOS.zip", version), nil
		}
	case "windows":
		if goarch == "amd64" {
			return fmt.Sprintf("pandoc-%s-windows-x86_64.zip", version), nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, goos, goarch)
}

// BinaryName returns the pandoc executable name on goos.
func BinaryName(goos string) string {
	if goos == "windows" {
		return "pandoc.exe"
	}
	return "pandoc"
}
