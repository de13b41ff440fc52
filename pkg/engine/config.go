package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOptions reads a YAML configuration file using strict parsing and
// returns the resulting Options. An empty path yields DefaultOptions for
// dataDir unchanged; fields missing from the file keep their defaults,
// unknown fields are an error.
func LoadOptions(path string, dataDir string) (Options, error) {
	cfg := DefaultOptions(dataDir)

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("YAML syntax error in config: %w", err)
	}

	return cfg, nil
}
