package render

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// AbsolutizeLinks rewrites relative img[src] and a[href] targets in a full
// HTML document to file:// URLs under baseDir. Anchors, URLs, absolute
// paths and targets escaping baseDir are left untouched.
func AbsolutizeLinks(page, baseDir string) (string, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", err
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "img":
				absolutizeAttr(n, "src", absBase)
			case "a":
				absolutizeAttr(n, "href", absBase)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func absolutizeAttr(n *html.Node, key, base string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isLocalRelative(attr.Val) {
			continue
		}
		target := filepath.Join(base, filepath.FromSlash(attr.Val))
		if !withinDir(target, base) {
			continue
		}
		n.Attr[i].Val = (&url.URL{Scheme: "file", Path: filepath.ToSlash(target)}).String()
	}
}

// isLocalRelative reports whether target is a relative file reference.
func isLocalRelative(target string) bool {
	if target == "" || strings.HasPrefix(target, "#") || strings.HasPrefix(target, "//") {
		return false
	}
	if u, err := url.Parse(target); err != nil || u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(target) && !strings.HasPrefix(target, "/")
}

func withinDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
