package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-docite/internal/fileutil"
)

// HighlightStyle is the chroma style used for fenced code blocks.
const HighlightStyle = "github"

// pageTemplate wraps goldmark's fragment output in a complete HTML5 document.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.5; }
pre { padding: 0.75rem; overflow-x: auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; }
%s</style>
</head>
<body>
%s
</body>
</html>
`

// HTMLRenderer converts Markdown to a standalone HTML page.
type HTMLRenderer struct {
	md  goldmark.Markdown
	css string
}

// NewHTMLRenderer creates an HTMLRenderer with GFM, footnotes, heading IDs
// and class-based syntax highlighting. Raw HTML in the input is omitted.
func NewHTMLRenderer() *HTMLRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			// Citation links point at #ref-<key> anchors.
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)
	return &HTMLRenderer{md: md, css: highlightCSS(styles.Get(HighlightStyle))}
}

// highlightCSS returns the stylesheet for chroma's class-based output.
func highlightCSS(style *chroma.Style) string {
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, style); err != nil {
		return ""
	}
	return buf.String()
}

// Render converts Markdown content to an HTML5 document titled title.
// goldmark has no context support, so conversion runs in a goroutine and
// the call returns early on cancellation.
func (r *HTMLRenderer) Render(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		page string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLRender, err)}
			return
		}
		done <- result{page: fmt.Sprintf(pageTemplate, html.EscapeString(title), r.css, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.page, res.err
	}
}

// RenderFile converts the Markdown file at mdPath and writes the page to
// htmlPath. Relative image and link targets are resolved against the
// Markdown file's directory so the page works from any location.
func (r *HTMLRenderer) RenderFile(ctx context.Context, mdPath, htmlPath string) error {
	data, err := os.ReadFile(mdPath) // #nosec G304 -- path is the converter's own output
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrHTMLRender, mdPath, err)
	}

	title := strings.TrimSuffix(filepath.Base(mdPath), filepath.Ext(mdPath))
	page, err := r.Render(ctx, title, string(data))
	if err != nil {
		return err
	}

	page, err = AbsolutizeLinks(page, filepath.Dir(mdPath))
	if err != nil {
		return fmt.Errorf("%w: rewriting links: %v", ErrHTMLRender, err)
	}

	if _, err := fileutil.WriteFileIfChanged(htmlPath, []byte(page), 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrHTMLRender, htmlPath, err)
	}
	return nil
}

// PreviewPath returns output with its extension replaced by ext
// ("paper.md", ".html" -> "paper.html").
func PreviewPath(output, ext string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ext
}
