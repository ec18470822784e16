package cli

import "errors"

// errInvalidInput and errIO classify a command's Exec error for exit-code
// purposes (spec.md §6 CLI: "exit codes 0 success, 1 invalid input, 2
// I/O"). Commands wrap one of these with fmt.Errorf("%w: ...", ...); any
// error that wraps neither falls back to exit code 1, matching the
// teacher's Command.Run before this distinction existed.
var (
	errInvalidInput = errors.New("invalid input")
	errIO           = errors.New("i/o error")
)

// exitCodeFor maps a command's Exec error to spec.md §6's exit codes.
func exitCodeFor(err error) int {
	if errors.Is(err, errIO) {
		return 2
	}

	return 1
}
