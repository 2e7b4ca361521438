package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration.
// Search order: customPath -> ~/.tilegame/config.yaml -> ./configs/tilegame.yaml -> embedded default
//
// Files are decoded over Default(), so a file only needs the keys it
// changes. The result is not validated; call Validate.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data, customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data, userCfgPath); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", "tilegame.yaml")
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := parse(data, local); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML, "embedded")
	if err != nil {
		cfg = Default() // Fallback to hardcoded if embed fails
		cfg.Source = "builtin"
	}
	return cfg, nil
}

func parse(data []byte, source string) (Config, error) {
	cfg := Default()
	// Lists replace rather than merge.
	cfg.Palette = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Palette == nil {
		cfg.Palette = Default().Palette
	}
	cfg.Source = source
	return cfg, nil
}

func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilegame", filename)
}
