package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/chordforge/steno/internal/config"
	"github.com/chordforge/steno/internal/engine"
	"github.com/chordforge/steno/pkg/dictionary"
	"github.com/chordforge/steno/pkg/dictionary/blockdev"
	"github.com/chordforge/steno/pkg/formatter"
	"github.com/chordforge/steno/pkg/stroke"

	flag "github.com/spf13/pflag"
)

// TranslateCmd returns the "translate" command (spec.md §6 CLI: "translate
// --dictionary <bin> — live translate from a connected serial steno
// machine (useful for validation)"). Without real hardware attached,
// lines are read from a liner REPL, each treated as one raw stroke's
// human-readable text (e.g. "STKPWHR", "TP-PL"); a connected serial
// machine can be piped into the same stdin in production use.
func TranslateCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("translate", flag.ContinueOnError)
	dictPath := flags.StringP("dictionary", "d", cfg.DictionaryPath, "compiled dictionary file")
	debug := flags.Bool("debug", false, "log swallowed dictionary lookup errors at debug level")

	return &Command{
		Flags: flags,
		Usage: "translate --dictionary <bin>",
		Short: "Interactively translate strokes against a compiled dictionary",
		Long: "Opens a compiled dictionary and starts a REPL: each line is parsed as a\n" +
			"raw stroke (spec.md §4.1 display syntax) and fed through the matcher/\n" +
			"dictionary/formatter pipeline, printing the resulting text as it's built.\n" +
			"Enter an empty line to pop/undo the last stroke.",
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			return execTranslate(ctx, io, *dictPath, *debug)
		},
	}
}

func execTranslate(ctx context.Context, cio *IO, dictPath string, debug bool) error {
	if dictPath == "" {
		return fmt.Errorf("%w: --dictionary is required", errInvalidInput)
	}

	device, err := blockdev.OpenFile(dictPath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", errIO, dictPath, err)
	}
	defer device.Close()

	dict, err := dictionary.Open(ctx, device)
	if err != nil {
		return fmt.Errorf("%w: loading dictionary %s: %v", errInvalidInput, dictPath, err)
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	repl := &translateREPL{
		ctx:    ctx,
		cio:    cio,
		sctx:   dict.Context(),
		driver: engine.New(dict, ' ', log),
	}

	return repl.run()
}

// translateREPL mirrors cmd/sloty/main.go's REPL struct/loop shape,
// replacing slotcache's put/get/scan verbs with raw-stroke input and live
// formatted output.
type translateREPL struct {
	ctx context.Context //nolint:containedctx // REPL loop body needs it per iteration; no request-scoped alternative here
	cio *IO
	// sctx is the dictionary's stroke context, used to parse each typed line.
	sctx   *stroke.Context
	driver *engine.Driver
	liner  *liner.State
	text   strings.Builder
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".stenoc_history")
}

func (r *translateREPL) run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)

	if f, err := os.Open(historyFilePath()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		_ = f.Close()
	}

	r.cio.Println("stenoc translate - enter stroke text, blank line to undo, Ctrl-D to quit")

	for {
		line, err := r.liner.Prompt("stroke> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}

			return fmt.Errorf("%w: reading input: %v", errIO, err)
		}

		trimmed := strings.TrimSpace(line)
		r.liner.AppendHistory(line)

		if trimmed == "" {
			r.emit(r.driver.Pop())
			continue
		}

		s, err := r.sctx.Parse(trimmed)
		if err != nil {
			r.cio.Printf("error: %v\n", err)
			continue
		}

		outs, err := r.driver.Process(r.ctx, s)
		if err != nil {
			r.cio.Printf("error: %v\n", err)
			continue
		}

		r.emit(outs)
	}

	if path := historyFilePath(); path != "" {
		if f, err := os.Create(path); err == nil {
			_, _ = r.liner.WriteHistory(f)
			_ = f.Close()
		}
	}

	return nil
}

func (r *translateREPL) emit(outs []formatter.Output) {
	for _, op := range outs {
		switch op.Kind {
		case formatter.OutputWrite:
			r.text.WriteString(op.Text)
		case formatter.OutputBackspace:
			s := r.text.String()
			if op.Count <= len(s) {
				r.text.Reset()
				r.text.WriteString(s[:len(s)-op.Count])
			}
		}
	}

	r.cio.Println(r.text.String())
}
