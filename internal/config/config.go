package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where relicsmith looks for a config file when
// --config is not given.
const DefaultPath = "relicsmith.yaml"

// Config holds every setting that can live in the config file.
// Command line flags override whatever is loaded here.
type Config struct {
	// Input
	Save   string `yaml:"save"`   // path to the .sl2 save file
	Slot   int    `yaml:"slot"`   // character slot index, 0 based
	Scores string `yaml:"scores"` // builtin table name or a file path

	// Solve
	Class    string `yaml:"class"`
	Urn      string `yaml:"urn"`       // restrict the search to one urn by name
	Count    int    `yaml:"count"`     // how many builds to keep
	Minimum  int    `yaml:"minimum"`   // drop builds scoring below this
	Prune    int    `yaml:"prune"`     // drop relics scoring below this
	Workers  int    `yaml:"workers"`   // 1 solves sequentially
	DeepSlot bool   `yaml:"deep_slot"` // include the deep relic slot

	// Output
	Tree    bool `yaml:"tree"`
	NoColor bool `yaml:"no_color"`

	// Logging
	LogFile string `yaml:"log_file"`
}

// Default returns the config relicsmith runs with when neither the
// file nor the flags say otherwise.
func Default() Config {
	return Config{
		Scores:   "default",
		Count:    50,
		Minimum:  1,
		Prune:    1,
		Workers:  1,
		DeepSlot: true,
	}
}

// Load reads a YAML config file over the defaults. A missing file is
// not an error, the defaults come back untouched.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
