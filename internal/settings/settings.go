// Package settings loads the tool's own HCL settings file. The settings file
// configures the registry endpoint and the expansion tool; the AS-SET objects
// themselves live in separate, format-specific files.
package settings

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/186526/arin-irr-syncer/internal/expand"
	"github.com/186526/arin-irr-syncer/internal/registry"
)

// Settings is the decoded settings file. Both blocks are optional; absent
// blocks fall back to defaults.
type Settings struct {
	Registry *RegistryBlock `hcl:"registry,block"`
	Expander *ExpanderBlock `hcl:"expander,block"`
	Remain   hcl.Body       `hcl:",remain"`
}

// RegistryBlock configures the registry REST endpoint.
type RegistryBlock struct {
	URL     string            `hcl:"url"`
	APIKey  string            `hcl:"api_key,optional"`
	Timeout string            `hcl:"timeout,optional"`
	Paths   map[string]string `hcl:"paths,optional"`
}

// ExpanderBlock configures the external route-filter generator.
type ExpanderBlock struct {
	Command string `hcl:"command,optional"`
	Host    string `hcl:"host,optional"`
	Sources string `hcl:"sources,optional"`
	Timeout string `hcl:"timeout,optional"`
	OnEmpty string `hcl:"on_empty,optional"`
}

// Load reads and decodes the settings file at path. An empty path or a
// missing file yields empty settings, so the tool runs with defaults when no
// file exists. Attribute expressions may reference process environment
// variables through the env object, e.g. `api_key = env.IRR_API_KEY`.
func Load(path string) (*Settings, error) {
	s := &Settings{}
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envObject()},
	}
	if diags := gohcl.DecodeBody(file.Body, evalCtx, s); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}
	return s, nil
}

// envObject exposes the process environment as a cty object for use in
// settings expressions.
func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok && key != "" {
			vars[key] = cty.StringVal(value)
		}
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

// RegistryConfig translates the registry block into a client config.
func (s *Settings) RegistryConfig() (registry.Config, error) {
	if s.Registry == nil {
		return registry.Config{}, fmt.Errorf("no registry block configured; registry actions need a settings file")
	}
	cfg := registry.Config{
		BaseURL: s.Registry.URL,
		APIKey:  s.Registry.APIKey,
		Paths:   s.Registry.Paths,
	}
	if s.Registry.Timeout != "" {
		timeout, err := time.ParseDuration(s.Registry.Timeout)
		if err != nil {
			return registry.Config{}, fmt.Errorf("registry timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	return cfg, nil
}

// ExpanderOptions translates the expander block into the adapter's invocation
// parameters and the resolver options. Everything has a usable default, so a
// nil block is fine.
func (s *Settings) ExpanderOptions() (command, host, sources string, opts expand.Options, err error) {
	block := s.Expander
	if block == nil {
		block = &ExpanderBlock{}
	}
	command = block.Command
	host = block.Host
	sources = block.Sources
	if block.Timeout != "" {
		opts.Timeout, err = time.ParseDuration(block.Timeout)
		if err != nil {
			return "", "", "", expand.Options{}, fmt.Errorf("expander timeout: %w", err)
		}
	}
	opts.OnEmpty, err = expand.ParsePolicy(block.OnEmpty)
	if err != nil {
		return "", "", "", expand.Options{}, fmt.Errorf("expander on_empty: %w", err)
	}
	return command, host, sources, opts, nil
}
