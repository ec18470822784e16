package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chordforge/steno/internal/config"
)

func TestLoadReturnsDefaultsWithNoFiles(t *testing.T) {
	dir := t.TempDir()

	cfg, sources, err := config.Load(dir, "", config.Config{}, nil)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)
	require.Empty(t, sources.Global)
	require.Empty(t, sources.Project)
}

func TestLoadMergesProjectConfigOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, config.ConfigFileName), `{
		// trailing commas and comments are tolerated via hujson
		"dictionary_path": "my.dict",
		"serial_device": "/dev/ttyACM0",
	}`)

	cfg, sources, err := config.Load(dir, "", config.Config{}, nil)
	require.NoError(t, err)
	require.Equal(t, "my.dict", cfg.DictionaryPath)
	require.Equal(t, "/dev/ttyACM0", cfg.SerialDevice)
	require.Equal(t, config.DefaultConfig().FlashChunkSize, cfg.FlashChunkSize)
	require.Equal(t, filepath.Join(dir, config.ConfigFileName), sources.Project)
}

func TestLoadExplicitConfigPathMustExist(t *testing.T) {
	dir := t.TempDir()

	_, _, err := config.Load(dir, "missing.json", config.Config{}, nil)
	require.ErrorIs(t, err, config.ErrConfigFileNotFound)
}

func TestLoadCLIOverridesWinOverProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, config.ConfigFileName), `{"dictionary_path": "project.dict"}`)

	cfg, _, err := config.Load(dir, "", config.Config{DictionaryPath: "cli.dict"}, nil)
	require.NoError(t, err)
	require.Equal(t, "cli.dict", cfg.DictionaryPath)
}

func TestLoadGlobalConfigViaExplicitEnv(t *testing.T) {
	xdg := t.TempDir()
	writeJSON(t, filepath.Join(xdg, "stenoc", "config.json"), `{"flash_chunk_size": 32}`)

	dir := t.TempDir()

	cfg, sources, err := config.Load(dir, "", config.Config{}, []string{"XDG_CONFIG_HOME=" + xdg})
	require.NoError(t, err)
	require.Equal(t, 32, cfg.FlashChunkSize)
	require.Equal(t, filepath.Join(xdg, "stenoc", "config.json"), sources.Global)
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, config.ConfigFileName), `{not json at all`)

	_, _, err := config.Load(dir, "", config.Config{}, nil)
	require.ErrorIs(t, err, config.ErrConfigInvalid)
}

func TestLoadRejectsNonPositiveFlashChunkSize(t *testing.T) {
	dir := t.TempDir()

	cliOverride := config.Config{FlashChunkSize: -1}

	_, _, err := config.Load(dir, "", cliOverride, nil)
	require.ErrorIs(t, err, config.ErrFlashChunkSizeInvalid)
}

func TestFormatProducesIndentedJSON(t *testing.T) {
	out, err := config.Format(config.DefaultConfig())
	require.NoError(t, err)
	require.Contains(t, out, "\"dictionary_path\"")
}

func writeJSON(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
