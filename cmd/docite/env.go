package main

import (
	"context"
	"io"
	"os"
	"time"

	docite "github.com/alnah/go-docite"
)

// pdfRenderer turns an HTML preview into a PDF.
type pdfRenderer interface {
	Render(ctx context.Context, htmlPath, pdfPath string) error
	Close() error
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	EnsureEngine  func(context.Context, docite.EngineOptions) (*docite.Engine, error)
	Runner        docite.CommandRunner // nil = real subprocesses
	StyleCacheDir string               // "" = user cache dir
	NewPDF        func(timeout time.Duration) pdfRenderer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Getenv:       os.Getenv,
		Environ:      os.Environ,
		EnsureEngine: docite.EnsureEngine,
	}
}
