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
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Decode into a wire struct seeded with the defaults: gohcl leaves
	// absent optional attributes untouched, so defaults survive.
	base := Default()
	hclCfg := hclConfig{
		Sources:          base.Sources,
		Choices:          base.Choices,
		Output:           base.Output,
		Algorithm:        base.Algorithm,
		Threshold:        base.Threshold,
		Side:             base.Side,
		KeepExtension:    base.KeepExtension,
		IncludeUnmatched: base.IncludeUnmatched,
		Color:            base.Color,
	}
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Sources:          hclCfg.Sources,
		Choices:          hclCfg.Choices,
		Output:           hclCfg.Output,
		Algorithm:        hclCfg.Algorithm,
		Threshold:        hclCfg.Threshold,
		Side:             hclCfg.Side,
		KeepExtension:    hclCfg.KeepExtension,
		IncludeUnmatched: hclCfg.IncludeUnmatched,
		Ignore:           hclCfg.Ignore,
		Color:            hclCfg.Color,
	}
	if hclCfg.ChoicesRepo != nil {
		cfg.ChoicesRepo = RepoConfig{
			Repo: hclCfg.ChoicesRepo.Repo,
			Ref:  hclCfg.ChoicesRepo.Ref,
			Path: hclCfg.ChoicesRepo.Path,
		}
	}
	for _, r := range hclCfg.Replacements {
		cfg.Replacements = append(cfg.Replacements, Replacement{
			Old: r.Old,
			New: r.New,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// hclConfig is the HCL wire schema. Replacements and the repo are blocks;
// everything else is an optional attribute.
type hclConfig struct {
	Sources          string           `hcl:"sources,optional"`
	Choices          string           `hcl:"choices,optional"`
	Output           string           `hcl:"output,optional"`
	ChoicesRepo      *hclRepo         `hcl:"choices_repo,block"`
	Algorithm        string           `hcl:"algorithm,optional"`
	Threshold        float64          `hcl:"threshold,optional"`
	Side             string           `hcl:"side,optional"`
	KeepExtension    bool             `hcl:"keep_extension,optional"`
	IncludeUnmatched bool             `hcl:"include_unmatched,optional"`
	Ignore           []string         `hcl:"ignore,optional"`
	Replacements     []hclReplacement `hcl:"replacement,block"`
	Color            string           `hcl:"color,optional"`
}

type hclRepo struct {
	Repo string `hcl:"repo"`
	Ref  string `hcl:"ref,optional"`
	Path string `hcl:"path,optional"`
}

type hclReplacement struct {
	Old string `hcl:"old"`
	New string `hcl:"new"`
}
