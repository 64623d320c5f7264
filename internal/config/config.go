// Package config loads the optional project-level codegraph config file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the documented project config shape: an exclude list, loaded
// once at index start. Absent file behaves as an empty exclude list.
type Config struct {
	Exclude Exclude `mapstructure:"exclude"`
}

// Exclude holds the two exclusion mechanisms the indexer honors beyond the
// walker's unconditional node_modules/.git skip.
type Exclude struct {
	// Paths are root-relative path prefixes.
	Paths []string `mapstructure:"paths"`
	// Globs are filepath.Match patterns, a convenience alongside the
	// plain path-prefix exclusion Paths gives.
	Globs []string `mapstructure:"globs"`
}

// Load reads codegraph.json from root, falling back to .codegraph.json,
// .codegraph.yaml or .codegraph.yml. A codegraph.* file is always parsed
// as JSON. A missing file is not an error; it yields an empty Config.
func Load(root string) (Config, error) {
	v := viper.New()
	v.SetConfigName("codegraph")
	v.AddConfigPath(root)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return loadDotfile(root)
		}
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotfile tries the dotfile variants (.codegraph.json / .codegraph.yaml)
// viper's SetConfigName convention doesn't cover, since those are hidden
// files rather than "name.ext" pairs viper globs for.
func loadDotfile(root string) (Config, error) {
	for _, candidate := range []string{".codegraph.json", ".codegraph.yaml", ".codegraph.yml"} {
		path := filepath.Join(root, candidate)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	return Config{}, nil
}
