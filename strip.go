package docite

import (
	"fmt"
	"strings"
)

// FrontMatterShape describes the metadata block pandoc emits in standalone
// mode when run with --bibliography, --csl and link-citations:
//
//	0  ---
//	1  bibliography: refs.bib
//	2  csl: ieee.csl
//	3  link-citations: true
//	4  ---
//
// The stripper relies on these fixed positions; every position and prefix
// lives here so a different pandoc output shape only needs a new value.
type FrontMatterShape struct {
	OpeningIndex int      // Line index of the opening delimiter.
	ClosingIndex int      // Line index of the closing delimiter.
	Delimiter    string   // Delimiter line content after trimming.
	Prefixes     []string // Metadata keys dropped wherever they appear.
}

// DefaultFrontMatterShape matches pandoc's output for docite's fixed invocation.
var DefaultFrontMatterShape = FrontMatterShape{
	OpeningIndex: 0,
	ClosingIndex: 4,
	Delimiter:    "---",
	Prefixes:     []string{"bibliography:", "csl:", "link-citations:"},
}

// Diagnostic is a non-fatal finding reported by a post-processing pass.
type Diagnostic struct {
	Line    int // 1-based line number in the processed document, 0 if none.
	Message string
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return d.Message
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// StripMetadata removes the metadata lines described by shape:
//   - any line whose trimmed content starts with one of shape.Prefixes;
//   - a sequence item ("- x") continuing such a line, when indented or
//     inside the front matter block;
//   - the lines at the opening and closing delimiter indices, only when
//     their trimmed content equals shape.Delimiter.
//
// Each continuation line removed inside the front matter moves the expected
// closing delimiter down by one line. The front matter only exists when
// the opening delimiter is in place; otherwise the closing index stays
// fixed and only indented items continue a metadata line. Other delimiter
// lines are kept. Line terminators are preserved. A Diagnostic is
// returned when a delimiter is not where the shape expects it.
func StripMetadata(content string, shape FrontMatterShape) (string, []Diagnostic) {
	lines := splitLines(content)
	closing := shape.ClosingIndex
	opened := shape.opens(lines)

	var b strings.Builder
	b.Grow(len(content))

	continuing := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		drop := false

		switch {
		case shape.hasPrefix(trimmed):
			drop = true
			continuing = true
		case continuing && isContinuation(line, trimmed, opened && i < closing):
			drop = true
			if opened && i < closing {
				closing++
			}
		default:
			continuing = false
		}

		if (i == shape.OpeningIndex || i == closing) && trimmed == shape.Delimiter {
			drop = true
		}

		if !drop {
			b.WriteString(line)
		}
	}

	return b.String(), shape.check(lines, closing)
}

// opens reports whether the opening delimiter is where the shape expects
// it. Without it there is no front matter block to extend.
func (s FrontMatterShape) opens(lines []string) bool {
	if s.OpeningIndex < 0 || s.OpeningIndex >= len(lines) {
		return false
	}
	return strings.TrimSpace(lines[s.OpeningIndex]) == s.Delimiter
}

func (s FrontMatterShape) hasPrefix(trimmed string) bool {
	for _, p := range s.Prefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// check reports delimiters missing from their expected positions.
// Positions past the end of the document are not checked.
func (s FrontMatterShape) check(lines []string, closing int) []Diagnostic {
	var diags []Diagnostic
	for _, idx := range []int{s.OpeningIndex, closing} {
		if idx < 0 || idx >= len(lines) {
			continue
		}
		if got := strings.TrimSpace(lines[idx]); got != s.Delimiter {
			diags = append(diags, Diagnostic{
				Line:    idx + 1,
				Message: fmt.Sprintf("expected front matter delimiter %q, found %q; metadata may be left in the output", s.Delimiter, truncate(got, 40)),
			})
		}
	}
	return diags
}

// isContinuation reports whether line is a YAML sequence item continuing
// a metadata key, e.g. the "- b.bib" lines of a multi-file bibliography.
func isContinuation(line, trimmed string, inFrontMatter bool) bool {
	if trimmed != "-" && !strings.HasPrefix(trimmed, "- ") {
		return false
	}
	indented := len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
	return indented || inFrontMatter
}

// splitLines splits after each "\n", keeping terminators. A trailing
// fragment without newline is its own line; no empty line is added after
// a final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// StripMetadataFile applies StripMetadata to the file at path and returns
// its diagnostics. When outPath is empty the file is rewritten in place.
func StripMetadataFile(path, outPath string, shape FrontMatterShape) ([]Diagnostic, error) {
	var diags []Diagnostic
	err := transformFile(path, outPath, func(content string) string {
		var out string
		out, diags = StripMetadata(content, shape)
		return out
	})
	return diags, err
}
