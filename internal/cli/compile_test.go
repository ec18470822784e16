package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chordforge/steno/internal/cli"
	"github.com/chordforge/steno/internal/config"
	"github.com/chordforge/steno/pkg/command"
	"github.com/chordforge/steno/pkg/dictionary"
	"github.com/chordforge/steno/pkg/dictionary/blockdev"
	"github.com/chordforge/steno/pkg/stroke"
)

const sampleDictJSON = `{
	"KPA*": "Hello",
	"TPHO": "no"
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestCompileCmdWritesLoadableDictionary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "dict.json")
	output := filepath.Join(dir, "out.bin")

	writeFile(t, input, sampleDictJSON)

	var stdout, stderr bytes.Buffer

	cmd := cli.CompileCmd(config.DefaultConfig())
	exitCode := cmd.Run(context.Background(), cli.NewIO(&stdout, &stderr), []string{"--input", input, "--output", output})
	require.Equal(t, 0, exitCode, stderr.String())
	require.Contains(t, stdout.String(), "compiled 2 entries")

	device, err := blockdev.OpenFile(output)
	require.NoError(t, err)
	defer device.Close()

	dict, err := dictionary.Open(context.Background(), device)
	require.NoError(t, err)

	ctx := dict.Context()
	s, err := ctx.Parse("KPA*")
	require.NoError(t, err)

	match, ok, err := dict.MatchPrefix(context.Background(), []stroke.Stroke{s})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, match.StrokeCount)
}

func TestCompileCmdLaterInputOverridesEarlier(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")
	output := filepath.Join(dir, "out.bin")

	writeFile(t, first, `{"KPA*": "Hello"}`)
	writeFile(t, second, `{"KPA*": "Howdy"}`)

	var stdout, stderr bytes.Buffer

	cmd := cli.CompileCmd(config.DefaultConfig())
	exitCode := cmd.Run(context.Background(), cli.NewIO(&stdout, &stderr), []string{"-i", first, "-i", second, "-o", output})
	require.Equal(t, 0, exitCode, stderr.String())

	device, err := blockdev.OpenFile(output)
	require.NoError(t, err)
	defer device.Close()

	dict, err := dictionary.Open(context.Background(), device)
	require.NoError(t, err)

	s, err := dict.Context().Parse("KPA*")
	require.NoError(t, err)

	match, ok, err := dict.MatchPrefix(context.Background(), []stroke.Stroke{s})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []command.Command{command.NewWrite("Howdy")}, match.Commands)
}

func TestCompileCmdRequiresInput(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	cmd := cli.CompileCmd(config.DefaultConfig())
	exitCode := cmd.Run(context.Background(), cli.NewIO(&stdout, &stderr), []string{"--output", filepath.Join(t.TempDir(), "out.bin")})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stderr.String(), "at least one --input is required")
}

func TestCompileCmdMissingFileIsIOError(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	cmd := cli.CompileCmd(config.DefaultConfig())
	exitCode := cmd.Run(context.Background(), cli.NewIO(&stdout, &stderr), []string{
		"--input", filepath.Join(t.TempDir(), "missing.json"),
		"--output", filepath.Join(t.TempDir(), "out.bin"),
	})
	require.Equal(t, 2, exitCode)
}
