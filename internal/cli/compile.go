package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/chordforge/steno/internal/config"
	"github.com/chordforge/steno/internal/plover"
	"github.com/chordforge/steno/pkg/dictionary/compile"

	flag "github.com/spf13/pflag"
)

// CompileCmd returns the "compile" command (spec.md §6 CLI: "compile
// --input <json>… --output <bin> — compile Plover JSON to binary format").
func CompileCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("compile", flag.ContinueOnError)
	inputs := flags.StringArrayP("input", "i", nil, "Plover JSON dictionary file (repeatable; later files override earlier entries)")
	output := flags.StringP("output", "o", cfg.DictionaryPath, "output binary dictionary path")
	skipSelfCheck := flags.Bool("skip-self-check", false, "skip the round-trip self-check (benchmarking only)")

	return &Command{
		Flags: flags,
		Usage: "compile --input <json>... --output <bin>",
		Short: "Compile Plover JSON dictionaries into the binary dictionary format",
		Long: "Merges one or more Plover-format JSON dictionaries, builds the radix-tree\n" +
			"binary format (spec.md §4.2), and writes it atomically to --output.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execCompile(io, *inputs, *output, *skipSelfCheck)
		},
	}
}

func execCompile(io *IO, inputs []string, output string, skipSelfCheck bool) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w: at least one --input is required", errInvalidInput)
	}

	if output == "" {
		return fmt.Errorf("%w: --output is required", errInvalidInput)
	}

	ctx := plover.EnglishContext()

	// Later files override earlier ones on a duplicate outline, matching
	// Plover's own "last loaded dictionary wins" layering convention.
	merged := make(map[string]compile.Entry)

	var order []string

	for _, path := range inputs {
		data, err := os.ReadFile(path) //nolint:gosec // CLI argument, intentionally user-controlled
		if err != nil {
			return fmt.Errorf("%w: reading %s: %v", errIO, path, err)
		}

		entries, err := plover.ParseDictionary(ctx, data)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", errInvalidInput, path, err)
		}

		for _, e := range entries {
			key := outlineKey(e)
			if _, exists := merged[key]; !exists {
				order = append(order, key)
			}

			merged[key] = e
		}
	}

	entries := make([]compile.Entry, 0, len(order))
	for _, key := range order {
		entries = append(entries, merged[key])
	}

	result, err := compile.Compile(ctx, entries, compile.Config{SkipSelfCheck: skipSelfCheck})
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidInput, err)
	}

	if err := compile.WriteFile(output, result); err != nil {
		return fmt.Errorf("%w: writing %s: %v", errIO, output, err)
	}

	io.Printf("compiled %d entries (%d distinct translations) into %s\n", result.Stats.EntryCount, result.Stats.DistinctTranslations, output)
	io.Printf("nodes=%d translation_blob_bytes=%d longest_outline=%d\n", result.Stats.NodeCount, result.Stats.TranslationBlobBytes, result.Stats.LongestOutlineLength)

	childCounts := make([]int, 0, len(result.Stats.OccupancyHistogram))
	for k := range result.Stats.OccupancyHistogram {
		childCounts = append(childCounts, k)
	}

	sort.Ints(childCounts)

	for _, k := range childCounts {
		io.Printf("  %d children: %d nodes\n", k, result.Stats.OccupancyHistogram[k])
	}

	return nil
}

// outlineKey identifies an entry's outline for dedup/override purposes,
// independent of Tag.
func outlineKey(e compile.Entry) string {
	key := make([]byte, 0, 4*len(e.Outline))
	for _, s := range e.Outline {
		key = append(key, s.Bytes()...)
		key = append(key, 0)
	}

	return string(key)
}
