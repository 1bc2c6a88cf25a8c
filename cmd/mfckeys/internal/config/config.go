package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output OutputConfig `yaml:"output"`
	Reader ReaderConfig `yaml:"reader"`
}

type OutputConfig struct {
	Directory string `yaml:"directory"`
}

type ReaderConfig struct {
	Index      *int   `yaml:"index"`
	KeyHex     string `yaml:"key_hex"`
	KeyHexFile string `yaml:"key_hex_file"`
	KeyType    string `yaml:"key_type"`
}

func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.resolvePaths(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Output.Directory != "" {
		info, err := os.Stat(c.Output.Directory)
		if err != nil {
			return fmt.Errorf("config.output.directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("config.output.directory must point to a directory")
		}
	}

	if c.Reader.Index != nil && *c.Reader.Index < 0 {
		return fmt.Errorf("config.reader.index must be >= 0")
	}
	if c.Reader.KeyHex != "" && c.Reader.KeyHexFile != "" {
		return fmt.Errorf("config.reader.key_hex and config.reader.key_hex_file are mutually exclusive")
	}
	if c.Reader.KeyHexFile != "" {
		if err := validateReadableFile(c.Reader.KeyHexFile, "config.reader.key_hex_file"); err != nil {
			return err
		}
	}
	switch strings.ToUpper(strings.TrimSpace(c.Reader.KeyType)) {
	case "", "A", "B":
	default:
		return fmt.Errorf("config.reader.key_type must be A or B")
	}
	return nil
}

// UseKeyB reports whether the configured key should authenticate as
// key B. The default is key A.
func (c *Config) UseKeyB() bool {
	return strings.EqualFold(strings.TrimSpace(c.Reader.KeyType), "B")
}

func (c *Config) resolvePaths(configPath string) {
	configDir := filepath.Dir(configPath)
	c.Reader.KeyHexFile = resolvePath(configDir, c.Reader.KeyHexFile)
	c.Output.Directory = resolvePath(configDir, c.Output.Directory)
}

func resolvePath(baseDir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Clean(filepath.Join(baseDir, trimmed))
}

func validateReadableFile(path string, field string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s must point to a file, got directory", field)
	}
	return nil
}
