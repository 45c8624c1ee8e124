package docite

import (
	"fmt"
	"os"
	"regexp"

	"github.com/alnah/go-docite/internal/fileutil"
)

// labelRefPattern matches hidden label markers such as "[//]: # (ref-fig1)".
var labelRefPattern = regexp.MustCompile(`\[//\]: # \(ref-([^)]+)\)`)

// RewriteLabelRefs replaces every "[//]: # (ref-ID)" marker with the anchor
// link "[ID](#ID)". All other bytes are left as they are. Running it twice
// is the same as running it once, since no marker survives the first pass.
func RewriteLabelRefs(content string) string {
	return labelRefPattern.ReplaceAllString(content, "[$1](#$1)")
}

// RewriteLabelRefsFile applies RewriteLabelRefs to the file at path.
// When outPath is empty the file is rewritten in place.
func RewriteLabelRefsFile(path, outPath string) error {
	return transformFile(path, outPath, RewriteLabelRefs)
}

// transformFile reads path, applies fn and writes the result to outPath,
// or back to path when outPath is empty. Failures wrap ErrPostProcess.
func transformFile(path, outPath string, fn func(string) string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if outPath == "" || outPath == path {
		if err := fileutil.TransformFile(path, fn); err != nil {
			return fmt.Errorf("%w: %w", ErrPostProcess, err)
		}
		return nil
	}

	content, err := os.ReadFile(path) // #nosec G304 -- caller-provided document path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPostProcess, err)
	}
	if err := os.WriteFile(outPath, []byte(fn(string(content))), 0o644); err != nil { // #nosec G306 -- output is a user document
		return fmt.Errorf("%w: %w", ErrPostProcess, err)
	}
	return nil
}
