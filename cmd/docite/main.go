package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// A missing .env is the common case; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) > 0 && isCommand(args[0]) {
		switch args[0] {
		case "doctor":
			return runDoctorCmd(ctx, args[1:], env)
		case "version":
			fmt.Fprintf(env.Stdout, "docite %s\n", Version)
			return ExitSuccess
		case "help":
			runHelp(args[1:], env)
			return ExitSuccess
		}
	}

	hc := &hintContext{}
	flags, err := parseFlags(args, env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		return reportError(env, err, hc)
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "docite %s\n", Version)
		return ExitSuccess
	}

	if err := runConvert(ctx, flags, env, hc); err != nil {
		return reportError(env, err, hc)
	}
	return ExitSuccess
}

// isCommand reports whether s names a subcommand rather than a flag.
func isCommand(s string) bool {
	switch s {
	case "doctor", "version", "help":
		return true
	}
	return false
}

// reportError prints err with its hints and returns the matching exit code.
func reportError(env *Environment, err error, hc *hintContext) int {
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, hc))
	return exitCodeFor(err)
}
