package assets

import (
	"fmt"
	"regexp"
)

// MaxStyleNameLength bounds style names; the longest names in the CSL
// style repository are well under it.
const MaxStyleNameLength = 128

// styleNamePattern matches CSL repository file names without extension,
// e.g. "ieee", "chicago-author-date", "apa_6th".
var styleNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName checks that name can be used as a style file name.
// Returns ErrInvalidAssetName for empty or overlong names and for anything
// outside letters, digits, '-' and '_'. That excludes separators, dots and
// with them every traversal or extension trick.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxStyleNameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, MaxStyleNameLength)
	case !styleNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
