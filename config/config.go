package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Main is the top level configuration.
type Main struct {
	Engine Engine `yaml:"engine"`
}

// Engine tunes the pattern matching engine.
type Engine struct {
	// TimeoutSeconds bounds one analysis run. Zero means the engine default.
	TimeoutSeconds int `yaml:"timeoutSeconds"`

	// Concurrency is the desired number of match units. Zero means one per
	// CPU (bounded by the engine); 1 disables concurrent execution.
	Concurrency int `yaml:"concurrency"`
}

// Load reads the main configuration from a YAML file.
func Load(filename string) (m Main, err error) {
	bb, err := os.ReadFile(filename)
	if err != nil {
		err = fmt.Errorf("failed to read config file %v: %v", filename, err)
		return
	}

	err = yaml.Unmarshal(bb, &m)
	if err != nil {
		err = fmt.Errorf("failed to parse config file %v: %v", filename, err)
	}
	return
}
