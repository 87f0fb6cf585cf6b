// Package config loads the REPL configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the home directory when no path is given.
const FileName = ".lam.yaml"

// Config is the REPL configuration. Zero values are filled from Default
// by Decode, so an empty prompt or a max_depth of 0 means "use the
// default"; unbounded evaluation is spelled max_depth: -1.
type Config struct {
	// Prompt is the readline prompt; empty means the default.
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	// MaxDepth bounds evaluation depth; 0 means the default, negative
	// means unbounded.
	MaxDepth int  `yaml:"max_depth"`
	Trace    bool `yaml:"trace"`
	// Quiet suppresses free-variable warnings.
	Quiet bool `yaml:"quiet"`

	Path string `yaml:"-"`
}

func Default() Config {
	return Config{
		Prompt:   "> ",
		MaxDepth: 10000,
	}
}

// DefaultPath returns ~/.lam.yaml, or "" if there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads the configuration at path, or at DefaultPath when path is
// empty. A missing default file yields the defaults; a missing explicit
// file is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	loaded, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	loaded.Path = path
	return loaded, nil
}

// Decode parses YAML from r and fills unset fields from Default.
func Decode(r io.Reader) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := mergo.Merge(&cfg, Default()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Depth is MaxDepth in the form eval.WithMaxDepth takes.
func (c *Config) Depth() int {
	if c.MaxDepth < 0 {
		return 0
	}
	return c.MaxDepth
}
