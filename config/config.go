package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is given on the command line.
const DefaultPath = "doctools.yaml"

type Config struct {
	LogFile         string        `yaml:"log"`
	WatchDebounceMs int           `yaml:"watch_debounce_ms"`
	ServerAddr      string        `yaml:"server_addr"`
	Extract         ExtractConfig `yaml:"extract"`
	Crop            CropConfig    `yaml:"crop"`
	Copy            CopyConfig    `yaml:"copy"`
}

type ExtractConfig struct {
	Input      string   `yaml:"input"`
	Output     string   `yaml:"output"`
	Strategies []string `yaml:"strategies"`
}

type CropConfig struct {
	Input  string `yaml:"input"`
	Backup bool   `yaml:"backup"`
}

type CopyConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
	Dest   string `yaml:"dest"`
}

func Default() *Config {
	return &Config{
		WatchDebounceMs: 500,
		ServerAddr:      "localhost:8090",
		Extract: ExtractConfig{
			Input:      "Petmongo_Project_Plan_FULL.pdf",
			Output:     "_extract_pdf_text.txt",
			Strategies: []string{"ledongthuc", "rsc", "docconv"},
		},
		Crop: CropConfig{
			Input: "apps/mobile/src/assets/ui/paw.png",
		},
		Copy: CopyConfig{
			Dir:    "assets/ui",
			Prefix: "微信图片",
			Suffix: ".jpg",
			Dest:   "apps/mobile/src/assets/ui/paw_v2.jpg",
		},
	}
}

// Load reads cfgPath on top of the defaults. An empty cfgPath falls back to
// DefaultPath, which may be absent; an explicitly named file must exist.
func Load(cfgPath string) (*Config, error) {
	if cfgPath != "" {
		return readConfig(cfgPath)
	}

	cfg, err := readConfig(DefaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

func readConfig(cfgPath string) (*Config, error) {
	cfgFile, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %w", err)
	}
	defer cfgFile.Close()

	cfg := Default()
	dec := yaml.NewDecoder(cfgFile)
	err = dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	if cfg.WatchDebounceMs < 0 {
		return nil, fmt.Errorf("watch_debounce_ms must not be negative: %d", cfg.WatchDebounceMs)
	}

	return cfg, nil
}

func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

// NewLogger logs JSON to the configured file, or warnings and errors as
// text to stderr when no file is set. The returned closer is never nil.
func (c *Config) NewLogger() (*slog.Logger, io.Closer, error) {
	if c.LogFile == "" {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
		return slog.New(h), io.NopCloser(nil), nil
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return slog.New(slog.NewJSONHandler(logFile, nil)), logFile, nil
}
