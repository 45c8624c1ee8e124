package docite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-docite/internal/assets"
	"github.com/alnah/go-docite/internal/fileutil"
	"github.com/alnah/go-docite/internal/logging"
)

// Input names the files of one conversion.
type Input struct {
	SourcePath       string // Markdown with @key citations. Never modified.
	OutputPath       string // Written or overwritten.
	BibliographyPath string // Any bibliography format pandoc reads.
	Style            string // "", a bundled style name, or a CSL path.
}

// Result describes a finished conversion.
type Result struct {
	OutputPath  string
	StylePath   string
	Diagnostics []Diagnostic
	Duration    time.Duration
}

// Converter runs the citation pipeline. It holds no per-call state and may
// be used from several goroutines as long as their output paths differ.
type Converter struct {
	engine  *Engine
	runner  CommandRunner
	logger  *slog.Logger
	timeout time.Duration
	styles  StyleResolver
	shape   FrontMatterShape
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithEngine, WithTimeout).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		runner: &ExecRunner{},
		logger: logging.Discard(),
		shape:  DefaultFrontMatterShape,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert resolves the citations of input.SourcePath into input.OutputPath.
//
// Steps run in order and the first failure aborts: input validation,
// style resolution, pandoc, label rewrite, metadata strip. Nothing is
// written before validation passes. If a text pass fails, the pandoc
// output stays on disk as is.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	stylePath, err := c.resolveStyle(input.Style)
	if err != nil {
		return nil, err
	}
	c.logger.Info("converting",
		"source", input.SourcePath,
		"output", input.OutputPath,
		"bibliography", input.BibliographyPath,
		"style", stylePath)

	pandoc := &PandocConverter{Runner: c.runner, Engine: c.engine, Timeout: c.timeout, Logger: c.logger}
	if err := pandoc.Convert(ctx, ConvertRequest{
		SourcePath:       input.SourcePath,
		OutputPath:       input.OutputPath,
		BibliographyPath: input.BibliographyPath,
		StylePath:        stylePath,
	}); err != nil {
		return nil, err
	}

	if err := RewriteLabelRefsFile(input.OutputPath, ""); err != nil {
		return nil, fmt.Errorf("rewriting label references: %w", err)
	}

	diags, err := StripMetadataFile(input.OutputPath, "", c.shape)
	if err != nil {
		return nil, fmt.Errorf("stripping metadata: %w", err)
	}
	for _, d := range diags {
		c.logger.Warn("unexpected front matter shape", "output", input.OutputPath, "line", d.Line, "detail", d.Message)
	}

	res := &Result{
		OutputPath:  input.OutputPath,
		StylePath:   stylePath,
		Diagnostics: diags,
		Duration:    time.Since(start),
	}
	c.logger.Info("conversion finished", "output", res.OutputPath, "duration", res.Duration)
	return res, nil
}

// validateInput checks every input path before anything is written.
func validateInput(input Input) error {
	required := []struct {
		name, path string
	}{
		{"source", input.SourcePath},
		{"output", input.OutputPath},
		{"bibliography", input.BibliographyPath},
	}
	for _, r := range required {
		if r.path == "" {
			return fmt.Errorf("%w: %s", ErrEmptyPath, r.name)
		}
	}

	if err := requireReadable("source", input.SourcePath); err != nil {
		return err
	}
	if err := requireReadable("bibliography", input.BibliographyPath); err != nil {
		return err
	}

	if err := fileutil.RequireDirectory(filepath.Dir(input.OutputPath)); err != nil {
		return fmt.Errorf("%w: output directory: %w", ErrInput, err)
	}
	if sameFile(input.SourcePath, input.OutputPath) {
		return fmt.Errorf("%w: output %s would overwrite the source", ErrInput, input.OutputPath)
	}
	return nil
}

// resolveStyle resolves the style and checks caller-provided paths.
// Every failure is an ErrInput, including an unwritable style cache.
func (c *Converter) resolveStyle(style string) (string, error) {
	path, err := c.styles.Resolve(style)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInput, err)
	}
	if !c.styles.IsBundled(style) {
		if err := requireReadable("style", path); err != nil {
			if errors.Is(err, os.ErrNotExist) && !fileutil.IsFilePath(style) {
				return "", fmt.Errorf("%w: %w", err, assets.ErrStyleNotFound)
			}
			return "", err
		}
	}
	return path, nil
}

func requireReadable(name, path string) error {
	if err := fileutil.RequireReadableFile(path); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrInput, name, path, err)
	}
	return nil
}

// sameFile reports whether a and b name the same existing file.
func sameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
