// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/matchrc/pkg/rename"
	"github.com/walteh/matchrc/pkg/similarity"
)

// DefaultFile is the config file name commands look for by default.
const DefaultFile = ".matchrc.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Replacement rewrites a fragment of every matched destination name
type Replacement struct {
	Old string `json:"old" yaml:"old"` // Original string to replace
	New string `json:"new" yaml:"new"` // New string to use
}

// 📦 RepoConfig points choice listing at a reference repository
type RepoConfig struct {
	Repo string `json:"repo" yaml:"repo"`                     // owner/name
	Ref  string `json:"ref,omitempty" yaml:"ref,omitempty"`   // Branch or tag
	Path string `json:"path,omitempty" yaml:"path,omitempty"` // Path within repo
}

// IsZero reports whether the repo config is unset. yaml uses it for
// omitempty.
func (r RepoConfig) IsZero() bool {
	return r == RepoConfig{}
}

// 📚 Config represents the complete configuration
type Config struct {
	Sources          string        `json:"sources,omitempty" yaml:"sources,omitempty"`           // Directory of files to rename or copy
	Choices          string        `json:"choices,omitempty" yaml:"choices,omitempty"`           // Directory of reference names
	ChoicesRepo      RepoConfig    `json:"choices_repo,omitempty" yaml:"choices_repo,omitempty"` // Reference repository instead of a local directory
	Output           string        `json:"output,omitempty" yaml:"output,omitempty"`             // Destination directory for copy
	Algorithm        string        `json:"algorithm" yaml:"algorithm"`                           // Similarity algorithm name
	Threshold        float64       `json:"threshold" yaml:"threshold"`                           // Minimum accepted similarity score
	Side             string        `json:"side" yaml:"side"`                                     // Which side gets renamed: sources or choices
	KeepExtension    bool          `json:"keep_extension" yaml:"keep_extension"`                 // Keep the reference extension in the body
	IncludeUnmatched bool          `json:"include_unmatched" yaml:"include_unmatched"`           // Carry unmatched sources along unchanged
	Ignore           []string      `json:"ignore,omitempty" yaml:"ignore,omitempty"`             // Glob patterns for files to skip while scanning
	Replacements     []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty"` // Destination name rewrites
	Color            string        `json:"color" yaml:"color"`                                   // Console color mode: auto, always, never
}

// 🎯 Default returns a config carrying the default settings
func Default() *Config {
	return &Config{
		Algorithm:        "jaro",
		Threshold:        0.7,
		Side:             "choices",
		IncludeUnmatched: true,
		Color:            "auto",
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 💾 Save writes the configuration in YAML form
func (cfg *Config) Save(ctx context.Context, path string) error {
	p := GetParser(path)
	if _, ok := p.(*YAMLParser); !ok {
		return errors.Errorf("config can only be saved as YAML, not %s", filepath.Ext(path))
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Errorf("writing config file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("saved configuration")
	return nil
}

// 🔍 HasRemoteChoices reports whether choices come from a repository
func (cfg *Config) HasRemoteChoices() bool {
	return !cfg.ChoicesRepo.IsZero()
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return errors.Errorf("threshold must be between 0 and 1, got %g", cfg.Threshold)
	}
	if _, err := similarity.ParseAlgorithm(cfg.Algorithm); err != nil {
		return errors.Errorf("algorithm: %w", err)
	}
	if _, err := rename.ParseSide(cfg.Side); err != nil {
		return errors.Errorf("side: %w", err)
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return errors.Errorf("invalid color mode %q, options: auto, always, never", cfg.Color)
	}

	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if cfg.Choices != "" && cfg.HasRemoteChoices() {
		return errors.Errorf("choices and choices_repo are mutually exclusive")
	}
	if cfg.HasRemoteChoices() && !strings.Contains(cfg.ChoicesRepo.Repo, "/") {
		return errors.Errorf("choices_repo.repo must be owner/name, got %q", cfg.ChoicesRepo.Repo)
	}

	// Clean up paths
	if cfg.Sources != "" {
		cfg.Sources = filepath.Clean(cfg.Sources)
	}
	if cfg.Choices != "" {
		cfg.Choices = filepath.Clean(cfg.Choices)
	}
	if cfg.Output != "" {
		cfg.Output = filepath.Clean(cfg.Output)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	choices := cfg.Choices
	if cfg.HasRemoteChoices() {
		ref := cfg.ChoicesRepo.Ref
		if ref == "" {
			// Empty ref resolves to the repository default branch at listing time
			ref = "HEAD"
		}
		choices = fmt.Sprintf("%s@%s:%s", cfg.ChoicesRepo.Repo, ref, cfg.ChoicesRepo.Path)
	}
	return fmt.Sprintf("%s ~ %s (%s, threshold %.2f, side %s)",
		cfg.Sources, choices, cfg.Algorithm, cfg.Threshold, cfg.Side)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML. Absent keys keep their defaults;
// unknown keys are an error.
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
