// Package config loads the player's runtime settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings. Game content never lives here.
type Config struct {
	SaveDir       string `yaml:"save_dir"`
	CompressSaves bool   `yaml:"compress_saves"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	Plain         bool   `yaml:"plain"`
	WrapWidth     int    `yaml:"wrap_width"`
	LogFile       string `yaml:"log_file"` // used while the full-screen UI owns the terminal
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		SaveDir:   filepath.Join(homeDir(), ".adventcore", "saves"),
		LogLevel:  "info",
		LogFormat: "text",
		WrapWidth: 72,
		LogFile:   filepath.Join(homeDir(), ".adventcore", "adventcore.log"),
	}
}

// DefaultPath is where the binary looks when --config is not given.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".adventcore", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Default(), fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	cfg.SaveDir = expandHome(cfg.SaveDir)
	cfg.LogFile = expandHome(cfg.LogFile)
	if cfg.WrapWidth < 0 {
		return Default(), fmt.Errorf("%s: wrap_width must not be negative", filepath.Base(path))
	}
	return cfg, nil
}

// SavePath returns the file for a named save slot. Only the last path
// element of slot is used, so the file always lands directly in SaveDir.
func (c Config) SavePath(slot string) string {
	slot = slotName(slot)
	ext := ".json"
	if c.CompressSaves {
		ext = ".json.zst"
	}
	return filepath.Join(c.SaveDir, slot+ext)
}

func slotName(slot string) string {
	slot = strings.ReplaceAll(slot, `\`, "/")
	slot = path.Base(path.Clean("/" + slot))
	if slot == "/" || slot == "." {
		return "quicksave"
	}
	return slot
}

func expandHome(p string) string {
	if p == "~" {
		return homeDir()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir(), p[2:])
	}
	return p
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
