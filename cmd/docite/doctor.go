package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	docite "github.com/alnah/go-docite"
	"github.com/alnah/go-docite/internal/assets"
	"github.com/alnah/go-docite/internal/fileutil"
	"github.com/alnah/go-docite/internal/render"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Pandoc   pandocInfo `json:"pandoc"`
	Styles   []string   `json:"bundled_styles"`
	Chrome   chromeInfo `json:"chrome"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// pandocInfo holds pandoc detection results.
type pandocInfo struct {
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
	Citeproc bool   `json:"citeproc"`
}

// chromeInfo holds Chrome/Chromium detection results for PDF previews.
type chromeInfo struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	CacheDir      string `json:"cache_dir"`
	CacheWritable bool   `json:"cache_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(ctx, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks. It never installs pandoc.
func runDoctor(ctx context.Context, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Styles: docite.BundledStyles(),
		System: systemInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	checkPandoc(ctx, result, env)
	checkChrome(result)
	checkCache(result, env)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkPandoc locates pandoc the way a conversion would, without downloading.
func checkPandoc(ctx context.Context, result *doctorResult, env *Environment) {
	engine, err := env.EnsureEngine(ctx, docite.EngineOptions{
		Binary:     env.Getenv("DOCITE_PANDOC"),
		InstallDir: env.Getenv("DOCITE_INSTALL_DIR"),
		NoInstall:  true,
		Runner:     env.Runner,
	})
	if err != nil {
		result.Errors = append(result.Errors,
			"pandoc not found. Install pandoc or let a conversion download it (omit --no-install)")
		return
	}

	result.Pandoc = pandocInfo{
		Found:    true,
		Path:     engine.Path,
		Version:  engine.Version,
		Citeproc: engine.SupportsCiteproc(),
	}
	if !result.Pandoc.Citeproc {
		result.Errors = append(result.Errors,
			fmt.Sprintf("pandoc %s does not support --citeproc (2.11 or newer required)", engine.Version))
	}
}

// checkChrome detects the browser used by --pdf. Missing Chrome is only a warning.
func checkChrome(result *doctorResult) {
	path, found := render.BrowserPath()
	if !found || !fileutil.FileExists(path) {
		result.Warnings = append(result.Warnings,
			"Chrome/Chromium not found; --pdf previews are unavailable. Install Chrome or set ROD_BROWSER_BIN")
		return
	}
	result.Chrome = chromeInfo{Found: true, Path: path}
}

// checkCache verifies bundled styles can be written where pandoc reads them.
func checkCache(result *doctorResult, env *Environment) {
	dir := env.StyleCacheDir
	if dir == "" {
		dir = assets.DefaultCacheDir()
	}
	result.System.CacheDir = dir
	result.System.CacheWritable = os.MkdirAll(dir, 0o750) == nil && fileutil.DirWritable(dir)
	if !result.System.CacheWritable {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Style cache directory not writable: %s", dir))
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "docite doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Pandoc")
	if r.Pandoc.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Pandoc.Path)
		fmt.Fprintf(w, "  [OK] Version: %s\n", r.Pandoc.Version)
		if r.Pandoc.Citeproc {
			fmt.Fprintln(w, "  [OK] Citeproc: supported")
		} else {
			fmt.Fprintln(w, "  [ERROR] Citeproc: unsupported")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Styles")
	for _, s := range r.Styles {
		fmt.Fprintf(w, "  [OK] %s\n", s)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (PDF previews)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.System.OS, r.System.Arch)
	if r.System.CacheWritable {
		fmt.Fprintf(w, "  [OK] Cache directory: %s\n", r.System.CacheDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Cache directory not writable: %s\n", r.System.CacheDir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
