package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSwim loads the swim configuration.
// Search order: customPath -> ~/.swim/configs/swim.yaml -> ./configs/swim.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently when missing or invalid.
func LoadSwim(customPath string) (SwimConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SwimConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return SwimConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("swim.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "swim.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultSwimYAML)
	if err != nil {
		return DefaultSwimConfig(), nil
	}
	return cfg, nil
}

// parse decodes YAML over the hardcoded defaults so partial files only
// override the keys they set, then validates the result.
func parse(data []byte) (SwimConfig, error) {
	cfg := DefaultSwimConfig()
	tiers := cfg.Tiers
	cfg.Tiers = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SwimConfig{}, err
	}
	if len(cfg.Tiers) == 0 {
		cfg.Tiers = tiers
	}
	if err := cfg.Validate(); err != nil {
		return SwimConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".swim", "configs", filename)
}
