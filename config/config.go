// ----------------------------------------------------------------------------
// FILE: config/config.go
// ----------------------------------------------------------------------------
// PACKAGE: config
// PURPOSE: Optional per-project settings loaded from a `.vyion.yaml`
//          dotfile (SPEC_FULL.md §3.4): REPL prompt text/color and heap
//          growth tunables. Its absence is not an error — every field
//          has a zero-config default matching spec.md's REPL contract
//          (§6.2) and the heap package's own NewWithParams defaults.
// ----------------------------------------------------------------------------

package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds every dotfile-tunable setting, pre-filled with defaults.
type Config struct {
	Prompt        string  `yaml:"prompt"`
	ColorOutput   bool    `yaml:"color_output"`
	HeapChunkSize int     `yaml:"heap_chunk_size"`
	HeapGrowth    float64 `yaml:"heap_growth"`
	TraceEnabled  bool    `yaml:"trace_enabled"`
}

// Default returns the configuration used when no dotfile is present.
func Default() Config {
	return Config{
		Prompt:        "V >> ",
		ColorOutput:   true,
		HeapChunkSize: 1024,
		HeapGrowth:    1.75,
		TraceEnabled:  false,
	}
}

// Load reads path, overlaying any fields it sets onto Default(). A
// missing file returns the default configuration with no error; a
// present-but-malformed file returns the defaults plus the parse error,
// letting the caller decide whether to warn and continue or abort.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// FindDotfile looks for ".vyion.yaml" in dir, returning "" if absent.
func FindDotfile(dir string) string {
	path := dir + string(os.PathSeparator) + ".vyion.yaml"
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
