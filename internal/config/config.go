package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/aurceive/vtm-dice-mapping/internal/domain"
	"github.com/aurceive/vtm-dice-mapping/internal/output"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "vtm_mapping.yaml"

type Config struct {
	MaxDice       int      `yaml:"max_dice" env:"VTM_MAX_DICE"`
	MaxSuccesses  int      `yaml:"max_successes" env:"VTM_MAX_SUCCESSES"`
	MaxDifficulty int      `yaml:"max_difficulty" env:"VTM_MAX_DIFFICULTY"`
	OutputDir     string   `yaml:"output_dir" env:"VTM_OUTPUT_DIR"`
	Formats       []string `yaml:"formats" env:"VTM_FORMATS" envSeparator:","`
	LogLevel      string   `yaml:"log_level" env:"VTM_LOG_LEVEL"`
}

func Default() Config {
	l := domain.DefaultLimits()
	return Config{
		MaxDice:       l.MaxDice,
		MaxSuccesses:  l.MaxSuccesses,
		MaxDifficulty: l.MaxDifficulty,
		OutputDir:     "output",
		Formats:       []string{output.FormatCSV},
		LogLevel:      "info",
	}
}

func (c Config) Limits() domain.Limits {
	return domain.Limits{MaxDice: c.MaxDice, MaxSuccesses: c.MaxSuccesses, MaxDifficulty: c.MaxDifficulty}
}

// Load applies, in order, the defaults, the yaml file at path (or the one
// found by FindFile when path is empty), a .env file and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		found, ok, err := FindFile()
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	} else if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config yaml %s: %w", path, err)
	}
	return nil
}

// FindFile looks for FileName in the working directory and its parents.
func FindFile() (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, err
	}
	dir := cwd
	for i := 0; i < 10; i++ {
		probe := filepath.Join(dir, FileName)
		if _, err := os.Stat(probe); err == nil {
			return probe, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func (c Config) Validate() error {
	if err := c.Limits().Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir is required: %w", domain.ErrInvalidArgument)
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("formats: at least one export format is required: %w", domain.ErrInvalidArgument)
	}
	for _, f := range c.Formats {
		if !output.IsKnownFormat(f) {
			return fmt.Errorf("formats: unknown format %q (expected one of %s): %w", f, strings.Join(output.KnownFormats, ", "), domain.ErrInvalidArgument)
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w: %w", err, domain.ErrInvalidArgument)
	}
	return nil
}
