package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds every flag of the convert invocation.
type cliFlags struct {
	input       string
	output      string
	bib         string
	style       string
	config      string
	pandoc      string
	timeout     string
	verbose     int
	veryVerbose bool
	quiet       bool
	noInstall   bool
	html        bool
	pdf         bool
	version     bool
}

// verbosity folds -v, -vv and --very-verbose into one level.
func (f *cliFlags) verbosity() int {
	if f.veryVerbose && f.verbose < 2 {
		return 2
	}
	return f.verbose
}

// addIOFlags adds the document flags to a FlagSet.
func addIOFlags(fs *flag.FlagSet, f *cliFlags) {
	fs.StringVar(&f.input, "inputfile", "", "Markdown file with @key citations (required)")
	fs.StringVar(&f.output, "outputfile", "", "output Markdown file (required)")
	fs.StringVar(&f.bib, "bibfile", "", "bibliography file (required)")
	fs.StringVar(&f.style, "stylefile", "", "CSL style path or bundled name (default ieee)")
}

// addEngineFlags adds pandoc-related flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *cliFlags) {
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc binary path")
	fs.BoolVar(&f.noInstall, "no-install", false, "never download pandoc")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "pandoc timeout (e.g., 30s, 2m)")
}

// addOutputFlags adds logging and preview flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *cliFlags) {
	fs.CountVarP(&f.verbose, "verbose", "v", "log progress (-vv for debug)")
	fs.BoolVar(&f.veryVerbose, "very-verbose", false, "same as -vv")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVar(&f.html, "html", false, "also write an HTML preview next to the output")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF preview next to the output")
}

// parseFlags parses the convert invocation. Positional arguments are rejected.
func parseFlags(args []string, env *Environment) (*cliFlags, error) {
	fs := flag.NewFlagSet("docite", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	addIOFlags(fs, f)
	addEngineFlags(fs, f)
	addOutputFlags(fs, f)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.version, "version", false, "print the version and exit")

	fs.Usage = func() { printUsage(env.Stdout) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFlag, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrInvalidFlag, fs.Arg(0))
	}
	return f, nil
}

// requireDocumentFlags checks the three mandatory paths.
func (f *cliFlags) requireDocumentFlags() error {
	for _, r := range []struct{ name, value string }{
		{"--inputfile", f.input},
		{"--outputfile", f.output},
		{"--bibfile", f.bib},
	} {
		if r.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingFlag, r.name)
		}
	}
	return nil
}
