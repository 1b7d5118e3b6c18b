package config

import (
	"fmt"
	"os"

	"devsetup/internal/logger"
	"gopkg.in/yaml.v3"
)

// Load returns the Config for the run. With an empty path the compiled-in default
// manifest is used. With a path, the YAML manifest at that location is parsed; a
// named config file that cannot be read or parsed is a fatal error, because the
// user explicitly asked for it and a silent fallback would be surprising.
func Load(path string) (Config, error) {
	if path == "" {
		logger.Debug("[DEBUG] No config file given, using built-in manifest\n")
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Start from the defaults so a partial manifest (e.g. only a packages list)
	// still carries the built-in fallback tools, dotfiles, and extras.
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}

	logger.Debug("[DEBUG] Loaded config %s: %d packages, %d fallback tools\n",
		path, len(cfg.Packages), len(cfg.Fallbacks))
	return cfg, nil
}
