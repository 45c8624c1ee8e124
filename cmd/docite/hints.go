package main

import (
	"context"
	"errors"
	"strings"

	docite "github.com/alnah/go-docite"
	"github.com/alnah/go-docite/internal/assets"
	"github.com/alnah/go-docite/internal/config"
	"github.com/alnah/go-docite/internal/hints"
	"github.com/alnah/go-docite/internal/render"
)

// hintContext carries what hint selection needs beyond the error itself.
// runConvert fills it in as configuration is resolved.
type hintContext struct {
	offline bool     // pandoc downloads disabled
	styles  []string // names --stylefile accepts; nil = bundled styles
}

// hintFor returns the actionable hint suffix for err, or "".
func hintFor(err error, hc *hintContext) string {
	if hc == nil {
		hc = &hintContext{}
	}
	switch {
	case errors.Is(err, docite.ErrEngineUnavailable):
		return hints.ForEngineUnavailable(hc.offline)
	case errors.Is(err, docite.ErrConversion):
		if errors.Is(err, context.DeadlineExceeded) {
			return hints.ForTimeout()
		}
		return hints.ForConversion(err.Error())
	case errors.Is(err, render.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, assets.ErrStyleNotFound):
		styles := hc.styles
		if len(styles) == 0 {
			styles = docite.BundledStyles()
		}
		return hints.ForStyleNotFound(styles)
	case errors.Is(err, docite.ErrInput) && strings.Contains(err.Error(), "output directory"):
		return hints.ForOutputDirectory()
	}
	return ""
}

// triedPaths extracts the searched locations from a config-not-found message.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
