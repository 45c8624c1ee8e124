package main

import (
	"errors"
	"os"

	docite "github.com/alnah/go-docite"
	"github.com/alnah/go-docite/internal/assets"
	"github.com/alnah/go-docite/internal/config"
	"github.com/alnah/go-docite/internal/render"
)

// Exit codes for the docite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General error, including pandoc failures
	ExitUsage   = 2 // Invalid flags or config
	ExitIO      = 3 // Unreadable input, unwritable output, post-processing
	ExitEngine  = 4 // No usable pandoc
	ExitRender  = 5 // HTML/PDF preview or browser errors
)

// Sentinel errors for CLI usage.
var (
	ErrMissingFlag = errors.New("missing required flag")
	ErrInvalidFlag = errors.New("invalid flag value")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, docite.ErrEngineUnavailable) {
		return ExitEngine
	}

	if errors.Is(err, render.ErrBrowserConnect) ||
		errors.Is(err, render.ErrPDFRender) ||
		errors.Is(err, render.ErrHTMLRender) {
		return ExitRender
	}

	if errors.Is(err, ErrMissingFlag) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	if errors.Is(err, docite.ErrInput) ||
		errors.Is(err, docite.ErrPostProcess) ||
		errors.Is(err, assets.ErrMaterialize) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
