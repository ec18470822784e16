// Command stenoc is the offline tooling for the stenography translation
// engine: compiling Plover JSON dictionaries into the on-device binary
// format, and interactively exercising a compiled dictionary through the
// matcher/formatter pipeline (spec.md §6 CLI).
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chordforge/steno/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env, sigCh)

	os.Exit(exitCode)
}
