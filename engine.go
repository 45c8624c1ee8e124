package docite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-docite/internal/fileutil"
	"github.com/alnah/go-docite/internal/install"
	"github.com/alnah/go-docite/internal/logging"
)

// pandocBinary is the command used when no Engine is configured.
const pandocBinary = "pandoc"

// versionPattern extracts the version from "pandoc 3.1.11" or "pandoc.exe 2.19.2".
var versionPattern = regexp.MustCompile(`^pandoc(?:\.exe)?\s+v?(\d+(?:\.\d+)*)`)

// Engine records that a working pandoc is available at Path.
type Engine struct {
	Path    string
	Version string
}

func (e *Engine) binary() string {
	if e == nil || e.Path == "" {
		return pandocBinary
	}
	return e.Path
}

// SupportsCiteproc reports whether the engine has the --citeproc option (pandoc 2.11+).
func (e *Engine) SupportsCiteproc() bool {
	if e == nil {
		return false
	}
	return compareVersions(e.Version, "2.11") >= 0
}

// EngineInstaller installs pandoc into a directory.
type EngineInstaller interface {
	Install(ctx context.Context, dir string) (string, error)
	BinaryPath(dir string) string
}

// EngineOptions controls how EnsureEngine locates pandoc.
// Zero fields take defaults.
type EngineOptions struct {
	Binary     string // Explicit pandoc path; no fallback when set.
	InstallDir string // Default: DefaultEngineDir().
	NoInstall  bool   // Never download.

	Runner    CommandRunner
	Installer EngineInstaller
	LookPath  func(file string) (string, error)
	Logger    *slog.Logger
}

// DefaultEngineDir returns <UserCacheDir>/go-docite/pandoc.
func DefaultEngineDir() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "go-docite", "pandoc")
}

// EnsureEngine returns a working pandoc, trying in order:
//  1. opts.Binary, when set (no further fallback);
//  2. pandoc on PATH;
//  3. a binary installed earlier in the install directory;
//  4. a fresh download into the install directory, unless opts.NoInstall.
//
// Engines older than 2.11 (no --citeproc) are skipped. It never downloads
// when a working pandoc is already present. Call it once per process and
// hand the result to the converter. Failures wrap ErrEngineUnavailable.
func EnsureEngine(ctx context.Context, opts EngineOptions) (*Engine, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	if opts.Binary != "" {
		return opts.accept(ctx, opts.Binary, "configured")
	}

	var probeErrs []error

	if path, err := opts.LookPath(pandocBinary); err == nil {
		engine, err := opts.accept(ctx, path, "PATH")
		if err == nil {
			return engine, nil
		}
		probeErrs = append(probeErrs, err)
	}

	installed := opts.Installer.BinaryPath(opts.InstallDir)
	if fileutil.FileExists(installed) {
		engine, err := opts.accept(ctx, installed, "installed")
		if err == nil {
			return engine, nil
		}
		probeErrs = append(probeErrs, err)
	}

	if opts.NoInstall {
		probeErrs = append(probeErrs, errors.New("pandoc not found and installation disabled"))
		return nil, fmt.Errorf("%w: %w", ErrEngineUnavailable, errors.Join(probeErrs...))
	}

	log.Info("pandoc not found, installing", "dir", opts.InstallDir)
	path, err := opts.Installer.Install(ctx, opts.InstallDir)
	if err != nil {
		return nil, fmt.Errorf("%w: installing pandoc: %w", ErrEngineUnavailable, err)
	}
	return opts.accept(ctx, path, "downloaded")
}

// accept probes path and rejects engines without citeproc support.
func (o EngineOptions) accept(ctx context.Context, path, source string) (*Engine, error) {
	engine, err := ProbeEngine(ctx, o.Runner, path)
	if err != nil {
		o.Logger.Debug("pandoc probe failed", "source", source, "path", path, "error", err)
		return nil, err
	}
	if !engine.SupportsCiteproc() {
		return nil, fmt.Errorf("%w: %s is version %s, citation processing needs 2.11 or newer",
			ErrEngineUnavailable, engine.Path, engine.Version)
	}
	o.Logger.Debug("using pandoc", "source", source, "path", engine.Path, "version", engine.Version)
	return engine, nil
}

func (o EngineOptions) withDefaults() EngineOptions {
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Runner == nil {
		o.Runner = &ExecRunner{}
	}
	if o.LookPath == nil {
		o.LookPath = exec.LookPath
	}
	if o.InstallDir == "" {
		o.InstallDir = DefaultEngineDir()
	}
	if o.Installer == nil {
		o.Installer = &install.Installer{Logger: o.Logger}
	}
	return o
}

// ProbeEngine runs "<path> --version" and returns the engine on success.
func ProbeEngine(ctx context.Context, runner CommandRunner, path string) (*Engine, error) {
	if runner == nil {
		runner = &ExecRunner{}
	}
	stdout, stderr, err := runner.Run(ctx, path, "--version")
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return nil, fmt.Errorf("%w: %s --version: %s: %w", ErrEngineUnavailable, path, msg, err)
		}
		return nil, fmt.Errorf("%w: %s --version: %w", ErrEngineUnavailable, path, err)
	}

	version, err := ParseVersion(stdout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEngineUnavailable, path, err)
	}
	return &Engine{Path: path, Version: version}, nil
}

// ParseVersion extracts the version number from the first line of
// "pandoc --version" output.
func ParseVersion(output string) (string, error) {
	first, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(first))
	if m == nil {
		return "", fmt.Errorf("unrecognized version output %q", truncate(first, 60))
	}
	return m[1], nil
}

// compareVersions compares dotted numeric versions; missing parts count as 0.
func compareVersions(a, b string) int {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < max(len(pa), len(pb)); i++ {
		var x, y int
		if i < len(pa) {
			x, _ = strconv.Atoi(pa[i])
		}
		if i < len(pb) {
			y, _ = strconv.Atoi(pb[i])
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}
