// Package hints suggests fixes for the failures docite users hit most.
// Every hint has the form "\n  hint: <text>" and is appended to the
// CLI's error line; an empty string means there is nothing useful to add.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-docite/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForEngineUnavailable returns hints for a missing or broken pandoc.
// offline is true when the automatic download was disabled.
func ForEngineUnavailable(offline bool) string {
	hints := []string{"install pandoc (https://pandoc.org/installing.html) or pass --pandoc /path/to/pandoc"}
	if offline {
		hints = append(hints, "drop --no-install to let docite download it")
	}
	return formatHints(hints)
}

// ForConversion inspects pandoc's diagnostic text and suggests a fix for
// the failures users hit most often.
func ForConversion(stderr string) string {
	switch {
	case strings.Contains(stderr, "Citeproc: citation") && strings.Contains(stderr, "not found"):
		return format("check the citation key exists in the --bibfile entries")
	case strings.Contains(stderr, "Unknown option --citeproc"):
		return format("pandoc 2.11 or newer is required for citation processing")
	case strings.Contains(stderr, "Could not find") && strings.Contains(stderr, ".csl"):
		return format("check the --stylefile path or use a bundled style (ieee, apa)")
	default:
		return ""
	}
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow conversions.
func ForTimeout() string {
	return format("for large documents or bibliographies, raise --timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-docite/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-docite") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output path errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the style names that --stylefile accepts.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
