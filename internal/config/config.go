// Package config loads the CLI's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	scen2html "github.com/ayatori/go-scen2html"
	"github.com/ayatori/go-scen2html/internal/fileutil"
	"github.com/ayatori/go-scen2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidKeyword  = errors.New("invalid keyword override")
)

// Config holds all CLI configuration.
type Config struct {
	Input    InputConfig                      `yaml:"input"`
	Output   OutputConfig                     `yaml:"output"`
	Pipeline PipelineConfig                   `yaml:"pipeline"`
	Keywords map[string]scen2html.KeywordSpec `yaml:"keywords"`
}

// InputConfig defines input source options.
type InputConfig struct {
	Encoding string `yaml:"encoding"` // "", "utf-8", "shift_jis", "euc-jp", "iso-2022-jp"
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Path string `yaml:"path"` // default output file (empty = stdout)
}

// PipelineConfig tunes the conversion pipeline.
type PipelineConfig struct {
	Strict            bool `yaml:"strict"`
	Workers           int  `yaml:"workers"`           // 0 = auto
	ChunkSize         int  `yaml:"chunkSize"`         // 0 = default
	ParallelThreshold int  `yaml:"parallelThreshold"` // 0 = default
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks the keyword override table. The tag set a keyword may
// map to is enforced again by the library when the table compiles; this
// catches obviously broken entries with a friendlier message.
func (c *Config) Validate() error {
	for name, spec := range c.Keywords {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty keyword name", ErrInvalidKeyword)
		}
		if strings.TrimSpace(spec.Tag) == "" {
			return fmt.Errorf("%w: keyword %q has no tag", ErrInvalidKeyword, name)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A name containing a path separator is treated as a file path;
// otherwise it is searched in standard locations. A missing file is an
// error, never a silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/scen2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "scen2html", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
