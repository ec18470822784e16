// Package config loads stenoc's configuration file, adapted near-verbatim
// from the teacher's config.go: a small struct, a global
// ($XDG_CONFIG_HOME or ~/.config) file merged under a project-local
// override, parsed with github.com/tailscale/hujson so comments and
// trailing commas are tolerated (SPEC_FULL.md §1.3).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds stenoc's CLI configuration (SPEC_FULL.md §1.3: "default
// dictionary path, default serial device for translate, default flash
// chunk size").
type Config struct {
	DictionaryPath string `json:"dictionary_path"` //nolint:tagliatelle // snake_case for config file
	SerialDevice   string `json:"serial_device,omitempty"`
	FlashChunkSize int    `json:"flash_chunk_size,omitempty"`
}

// ConfigFileName is the default project-local config file name.
const ConfigFileName = ".stenoc.json"

// defaultFlashChunkSize matches flashproto.ChunkSize; duplicated here
// (rather than imported) to keep this package free of a dependency on
// the protocol package purely for a numeric default.
const defaultFlashChunkSize = 60

// DefaultConfig returns stenoc's built-in defaults, used as the base
// before any config file or CLI override is merged in.
func DefaultConfig() Config {
	return Config{
		DictionaryPath: "dictionary.bin",
		FlashChunkSize: defaultFlashChunkSize,
	}
}

// Sources tracks which config files were loaded, for diagnostics.
type Sources struct {
	Global  string
	Project string
}

// getGlobalConfigPath returns $XDG_CONFIG_HOME/stenoc/config.json, or
// ~/.config/stenoc/config.json if unset, or "" if neither can be
// determined.
func getGlobalConfigPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "stenoc", "config.json")
		}
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "stenoc", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "stenoc", "config.json")
	}

	return ""
}

// Load loads configuration with the following precedence (highest
// wins): defaults, global config, project config (or an explicit
// configPath), CLI overrides.
func Load(workDir, configPath string, cliOverrides Config, env []string) (Config, Sources, error) {
	cfg := DefaultConfig()

	var sources Sources

	globalCfg, globalPath, err := loadGlobalConfig(env)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	cfg = mergeConfig(cfg, cliOverrides)

	if err := validateConfig(cfg); err != nil {
		return Config{}, Sources{}, err
	}

	return cfg, sources, nil
}

func loadGlobalConfig(env []string) (Config, string, error) {
	path := getGlobalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	cfgFile := configPath
	mustExist := configPath != ""

	if mustExist {
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		if _, err := os.Stat(cfgFile); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
	}

	cfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, cfgFile, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.DictionaryPath != "" {
		base.DictionaryPath = overlay.DictionaryPath
	}

	if overlay.SerialDevice != "" {
		base.SerialDevice = overlay.SerialDevice
	}

	if overlay.FlashChunkSize != 0 {
		base.FlashChunkSize = overlay.FlashChunkSize
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.DictionaryPath == "" {
		return ErrDictionaryPathEmpty
	}

	if cfg.FlashChunkSize <= 0 {
		return ErrFlashChunkSizeInvalid
	}

	return nil
}

// Format returns cfg as formatted JSON, for `stenoc print-config`
// diagnostics.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
