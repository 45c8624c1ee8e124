package render

import "errors"

// Sentinel errors for preview rendering.
var (
	ErrHTMLRender     = errors.New("HTML preview rendering failed")
	ErrPDFRender      = errors.New("PDF preview rendering failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
)
