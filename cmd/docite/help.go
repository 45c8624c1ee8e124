package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docite --inputfile <md> --outputfile <md> --bibfile <bib> [flags]")
	fmt.Fprintln(w, "       docite <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolve the citations of a Markdown document with pandoc.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor     Check pandoc, styles and Chrome")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Documents:")
	fmt.Fprintln(w, "      --inputfile <path>    Markdown file with @key citations")
	fmt.Fprintln(w, "      --outputfile <path>   Output Markdown file")
	fmt.Fprintln(w, "      --bibfile <path>      Bibliography (BibTeX, CSL JSON, ...)")
	fmt.Fprintln(w, "      --stylefile <s>       CSL path or style name: ieee (default), apa,")
	fmt.Fprintln(w, "                            or a style from assets.basePath")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "      --pandoc <path>       pandoc binary (default: PATH, then cache)")
	fmt.Fprintln(w, "      --no-install          Never download pandoc")
	fmt.Fprintln(w, "  -t, --timeout <d>         pandoc timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Previews:")
	fmt.Fprintln(w, "      --html                Also write <output>.html")
	fmt.Fprintln(w, "      --pdf                 Also write <output>.pdf (needs Chrome)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log progress (-vv for debug)")
	fmt.Fprintln(w, "      --very-verbose        Same as -vv")
	fmt.Fprintln(w, "      --version             Print the version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCITE_CONFIG, DOCITE_STYLE, DOCITE_PANDOC, DOCITE_TIMEOUT,")
	fmt.Fprintln(w, "  DOCITE_NO_INSTALL, DOCITE_INSTALL_DIR (also read from ./.env)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: docite doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that pandoc, the bundled styles and Chrome are usable.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
