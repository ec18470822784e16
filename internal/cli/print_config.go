package cli

import (
	"context"

	"github.com/chordforge/steno/internal/config"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command, ported from the
// teacher's internal/cli/print_config.go.
func PrintConfigCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective stenoc configuration as JSON.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			text, err := config.Format(cfg)
			if err != nil {
				return err
			}

			io.Println(text)

			return nil
		},
	}
}
