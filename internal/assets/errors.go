package assets

import "errors"

// Sentinel errors for style loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid style name")

	// ErrInvalidStyle: the file exists but has no CSL <style> root element.
	ErrInvalidStyle = errors.New("not a CSL style")

	ErrInvalidBasePath = errors.New("invalid style directory")
	ErrAssetRead       = errors.New("failed to read style")

	// ErrPathTraversal: a symlinked style resolves outside the style directory.
	ErrPathTraversal = errors.New("style path escapes base directory")

	// ErrMaterialize: a bundled style could not be written to the cache directory.
	ErrMaterialize = errors.New("failed to materialize style")
)
