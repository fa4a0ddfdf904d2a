// Package config loads generator settings from YAML or TOML files.
package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/docid/pkg/docid"
	"github.com/cognicore/docid/pkg/docid/internalerr"
	"github.com/cognicore/docid/pkg/docid/stoplist"
)

// Generator holds the settings of a docid.Generator and of the binaries
// driving it.
type Generator struct {
	MinIDLength      int      `yaml:"min_id_length" toml:"min_id_length"`
	MaxMeanFrequency *float64 `yaml:"max_mean_frequency" toml:"max_mean_frequency"`
	Verbose          bool     `yaml:"verbose" toml:"verbose"`
	VerboseDocuments []int    `yaml:"verbose_documents" toml:"verbose_documents"`
	CachePath        string   `yaml:"cache_path" toml:"cache_path"`
	DBPath           string   `yaml:"db_path" toml:"db_path"`
	HTML             bool     `yaml:"html" toml:"html"`
	Stopwords        []string `yaml:"stopwords" toml:"stopwords"`
}

// Default returns the built-in settings.
func Default() *Generator {
	return &Generator{MinIDLength: docid.DefaultMinIDLength}
}

// Load reads path as YAML (.yaml, .yml) or TOML (.toml). Fields missing from
// the file keep their defaults.
func Load(path string) (*Generator, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".toml":
		return LoadTOML(path)
	default:
		return nil, internalerr.New(internalerr.KindConfig, "config.Load", "unsupported config extension "+filepath.Ext(path))
	}
}

// LoadYAML loads settings from a YAML file
func LoadYAML(path string) (*Generator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, internalerr.Wrap(internalerr.KindConfig, "config.LoadYAML", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, internalerr.Wrap(internalerr.KindConfig, "config.LoadYAML", err)
	}
	return cfg, nil
}

// LoadTOML loads settings from a TOML file
func LoadTOML(path string) (*Generator, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, internalerr.Wrap(internalerr.KindConfig, "config.LoadTOML", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, internalerr.New(internalerr.KindConfig, "config.LoadTOML", "unknown key "+undecoded[0].String())
	}
	return cfg, nil
}

// Save writes cfg to path, choosing the format by extension like Load.
func Save(cfg *Generator, path string) error {
	const op = "config.Save"

	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return internalerr.Wrap(internalerr.KindConfig, op, err)
		}
		enc.Close()
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return internalerr.Wrap(internalerr.KindConfig, op, err)
		}
	default:
		return internalerr.New(internalerr.KindConfig, op, "unsupported config extension "+filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return internalerr.Wrap(internalerr.KindConfig, op, err)
		}
	}
	return internalerr.Wrap(internalerr.KindConfig, op, os.WriteFile(path, buf.Bytes(), 0o644))
}

// Validate applies the generator construction rules.
func (c *Generator) Validate() error {
	const op = "config.Validate"
	if c.MinIDLength < 1 {
		return internalerr.New(internalerr.KindConfig, op, "min id length must be a positive number")
	}
	if m := c.MaxMeanFrequency; m != nil && (*m < 0 || math.IsNaN(*m)) {
		return internalerr.New(internalerr.KindConfig, op, "max mean frequency must be nil or a non-negative number")
	}
	for _, d := range c.VerboseDocuments {
		if d < 0 {
			return internalerr.New(internalerr.KindConfig, op, "verbose document indices must not be negative")
		}
	}
	return nil
}

// Options converts the settings to generator options.
func (c *Generator) Options() docid.Options {
	opts := docid.Options{
		MinIDLength:      c.MinIDLength,
		MaxMeanFrequency: c.MaxMeanFrequency,
		Verbose:          c.Verbose,
		VerboseDocuments: c.VerboseDocuments,
		HTML:             c.HTML,
	}
	if len(c.Stopwords) > 0 {
		opts.Stoplist = stoplist.NewManager(c.Stopwords)
	}
	return opts
}
