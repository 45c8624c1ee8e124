package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	docite "github.com/alnah/go-docite"
	"github.com/alnah/go-docite/internal/render"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakePandoc writes Output to the -o argument, like pandoc would.
type fakePandoc struct {
	Output string
	Stderr string
	Err    error

	mu   sync.Mutex
	args []string
}

func (f *fakePandoc) Run(_ context.Context, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	f.args = append([]string{name}, args...)
	f.mu.Unlock()

	if f.Err != nil {
		return "", f.Stderr, f.Err
	}
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1], []byte(f.Output), 0o644); err != nil {
				return "", "", err
			}
		}
	}
	return "", f.Stderr, nil
}

func (f *fakePandoc) calledWith() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.args
}

// fakePDF records the conversion instead of launching Chrome.
type fakePDF struct {
	err    error
	closed bool
}

func (p *fakePDF) Render(_ context.Context, htmlPath, pdfPath string) error {
	if p.err != nil {
		return p.err
	}
	if _, err := os.Stat(htmlPath); err != nil {
		return err
	}
	return os.WriteFile(pdfPath, []byte("%PDF-1.7 fake"), 0o644)
}

func (p *fakePDF) Close() error {
	p.closed = true
	return nil
}

// citedOutput mimics pandoc's gfm output for the fixture document.
const citedOutput = `---
bibliography: refs.bib
csl: ieee.csl
link-citations: true
---

[//]: # (ref-intro)
Citation [[1]](#ref-doe2023).

\[1\] J. Doe, “Example title,” 2023.
`

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

type testHarness struct {
	env    *Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	pandoc *fakePandoc
	pdf    *fakePDF

	// engineOpts records what EnsureEngine was asked for.
	engineOpts docite.EngineOptions
	dir        string
	input      string
	bib        string
	output     string
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	dir := t.TempDir()
	h := &testHarness{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pandoc: &fakePandoc{Output: citedOutput},
		pdf:    &fakePDF{},
		dir:    dir,
		input:  filepath.Join(dir, "paper.md"),
		bib:    filepath.Join(dir, "refs.bib"),
		output: filepath.Join(dir, "paper.cited.md"),
	}
	writeFile(t, h.input, "[//]: # (ref-intro)\nCitation [@doe2023].\n")
	writeFile(t, h.bib, "@article{doe2023, author = {Doe, John}, title = {Example Title}, year = 2023}\n")

	h.env = &Environment{
		Stdout:  h.stdout,
		Stderr:  h.stderr,
		Getenv:  func(string) string { return "" },
		Environ: func() []string { return nil },
		EnsureEngine: func(_ context.Context, opts docite.EngineOptions) (*docite.Engine, error) {
			h.engineOpts = opts
			return &docite.Engine{Path: "/opt/pandoc/bin/pandoc", Version: "3.6.4"}, nil
		},
		Runner:        h.pandoc,
		StyleCacheDir: filepath.Join(dir, "styles"),
		NewPDF:        func(time.Duration) pdfRenderer { return h.pdf },
	}
	return h
}

// args returns the three required document flags followed by extra.
func (h *testHarness) args(extra ...string) []string {
	return append([]string{
		"--inputfile", h.input,
		"--outputfile", h.output,
		"--bibfile", h.bib,
	}, extra...)
}

func (h *testHarness) setEnv(vars map[string]string) {
	h.env.Getenv = func(k string) string { return vars[k] }
	h.env.Environ = func() []string {
		out := make([]string, 0, len(vars))
		for k, v := range vars {
			out = append(out, k+"="+v)
		}
		return out
	}
}

func (h *testHarness) failEngine() {
	h.env.EnsureEngine = func(context.Context, docite.EngineOptions) (*docite.Engine, error) {
		return nil, errors.Join(docite.ErrEngineUnavailable, errors.New("pandoc: not found"))
	}
}

func (h *testHarness) failBrowser() {
	h.pdf.err = errors.Join(render.ErrBrowserConnect, errors.New("no chrome"))
}

func writeFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}
