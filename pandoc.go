package docite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-docite/internal/logging"
	"github.com/alnah/go-docite/internal/process"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The command runs in
// its own process group, which is killed when ctx is done.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := process.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		_ = cmd.Wait()
		return "", "", fmt.Errorf("reading stderr: %w", err)
	}

	err = cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return stdout.String(), string(stderrContent), err
}

// ConvertRequest names the files of a single pandoc run.
type ConvertRequest struct {
	SourcePath       string
	OutputPath       string
	BibliographyPath string
	StylePath        string
}

// Args returns pandoc's argument vector. The order is fixed:
//
//	<source> -t gfm -o <output> -s --bibliography <bib> --citeproc --csl <style> --metadata link-citations=true
func (r ConvertRequest) Args() []string {
	return []string{
		r.SourcePath,
		"-t", "gfm",
		"-o", r.OutputPath,
		"-s",
		"--bibliography", r.BibliographyPath,
		"--citeproc",
		"--csl", r.StylePath,
		"--metadata", "link-citations=true",
	}
}

// PandocConverter renders citations by invoking the pandoc CLI.
type PandocConverter struct {
	Runner  CommandRunner
	Engine  *Engine       // nil = "pandoc" from PATH
	Timeout time.Duration // 0 = no timeout
	Logger  *slog.Logger
}

// NewPandocConverter creates a PandocConverter with a real command runner.
func NewPandocConverter(engine *Engine) *PandocConverter {
	return &PandocConverter{Runner: &ExecRunner{}, Engine: engine}
}

// Convert runs pandoc once, writing (and overwriting) req.OutputPath.
// Failures wrap ErrConversion and carry pandoc's stderr. Nothing is retried.
func (c *PandocConverter) Convert(ctx context.Context, req ConvertRequest) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	bin := c.Engine.binary()
	args := req.Args()
	c.logger().Debug("running pandoc", "bin", bin, "args", strings.Join(args, " "))

	start := time.Now()
	_, stderr, err := c.Runner.Run(ctx, bin, args...)
	if err != nil {
		stderr = strings.TrimSpace(stderr)
		if errors.Is(err, context.DeadlineExceeded) && c.Timeout > 0 {
			return fmt.Errorf("%w: timed out after %s: %w", ErrConversion, c.Timeout, err)
		}
		if stderr == "" {
			return fmt.Errorf("%w: %w", ErrConversion, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrConversion, stderr, err)
	}

	// pandoc reports unresolved citations as warnings with exit code 0.
	if stderr = strings.TrimSpace(stderr); stderr != "" {
		c.logger().Warn("pandoc reported warnings", "stderr", stderr)
	}
	c.logger().Debug("pandoc finished", "duration", time.Since(start))
	return nil
}

func (c *PandocConverter) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.Discard()
}
