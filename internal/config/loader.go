// Package config loads SwapIndexor configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	pkgconfig "github.com/goran-ethernal/SwapIndexor/pkg/config"
	"gopkg.in/yaml.v3"
)

type decoder func(data []byte, cfg *pkgconfig.Config) error

var decoders = map[string]decoder{
	".yaml": func(data []byte, cfg *pkgconfig.Config) error { return yaml.Unmarshal(data, cfg) },
	".yml":  func(data []byte, cfg *pkgconfig.Config) error { return yaml.Unmarshal(data, cfg) },
	".json": func(data []byte, cfg *pkgconfig.Config) error { return json.Unmarshal(data, cfg) },
	".toml": func(data []byte, cfg *pkgconfig.Config) error { return toml.Unmarshal(data, cfg) },
}

// LoadFromFile reads the configuration file at path, picking the decoder by extension
// (.yaml, .yml, .json or .toml).
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := decoders[ext]; !ok {
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json, .toml)", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Load(data, ext)
}

// Load decodes data in the format named by ext, then applies defaults and environment
// overrides and validates the result.
func Load(data []byte, ext string) (*pkgconfig.Config, error) {
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	var cfg pkgconfig.Config
	if err := decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s config: %w", strings.TrimPrefix(ext, "."), err)
	}

	cfg.ApplyDefaults()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
