// Package render produces optional previews of a converted document:
// a standalone HTML page (goldmark, GitHub Flavored Markdown, chroma
// highlighting) and a PDF printed from that page by headless Chrome (go-rod).
//
// Previews are a convenience on top of the Markdown result. They never
// change the Markdown output file.
package render
