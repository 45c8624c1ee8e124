// Package docite turns a citation-annotated Markdown document into Markdown
// with resolved bibliographic references.
//
// Citation processing and Markdown parsing are delegated to pandoc and a CSL
// style file. docite runs pandoc once, then applies two text passes to its
// output: label markers become clickable anchor links, and the metadata
// lines pandoc's standalone mode injects are stripped.
//
// # Quick Start
//
//	engine, err := docite.EnsureEngine(ctx, docite.EngineOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv := docite.NewConverter(docite.WithEngine(engine))
//	result, err := conv.Convert(ctx, docite.Input{
//	    SourcePath:       "paper.md",
//	    OutputPath:       "paper.out.md",
//	    BibliographyPath: "refs.bib",
//	})
//
// Style is optional. Empty or "ieee" selects the bundled IEEE style, "apa"
// the bundled APA style, and anything else is passed to pandoc as a CSL path.
//
// # Pipeline
//
//  1. Input validation (source, bibliography and explicit style must be readable)
//  2. Style resolution (bundled styles are written to a cache directory)
//  3. pandoc --citeproc to GitHub Flavored Markdown, written to the output path
//  4. Label markers "[//]: # (ref-ID)" rewritten to "[ID](#ID)", in place
//  5. Front matter metadata stripped, in place
//
// The source file is never modified. If a text pass fails after pandoc
// succeeded, the partially processed output stays on disk.
//
// # Errors
//
// Failures wrap one of ErrInput, ErrConversion, ErrEngineUnavailable or
// ErrPostProcess; use errors.Is to classify them.
//
// # Engine
//
// EnsureEngine locates pandoc (explicit path, PATH, previous install) and
// downloads a pinned release when none is found. Call it once per process
// and pass the result to NewConverter with WithEngine.
package docite
