package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigotdb/spigot/internal/mapping"
)

// GenConfig is the declarative generation configuration (spigot.yaml). It
// feeds the mapper functions a generation run is built from.
type GenConfig struct {
	Schema    string            `yaml:"schema"`
	Templates string            `yaml:"templates"`
	Extension string            `yaml:"extension"`
	Tables    TableFilter       `yaml:"tables"`
	Types     map[string]string `yaml:"types"`
	Artifacts []ArtifactYAML    `yaml:"artifacts"`
}

// TableFilter controls which discovered tables participate in generation.
// An empty include list means every table; exclude always wins.
type TableFilter struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// ArtifactYAML defines one generated class per table: the class name is the
// camelized table name plus Suffix, rendered with Template into Output.
type ArtifactYAML struct {
	Suffix   string `yaml:"suffix"`
	Template string `yaml:"template"`
	Output   string `yaml:"output"`
}

// LoadGenConfig reads and validates a generation config file. Missing
// optional fields get defaults: .go extension, ./templates root, and a
// single suffix-less "model" artifact written to ./gen.
func LoadGenConfig(path string) (*GenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg GenConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return &cfg, nil
}

func (c *GenConfig) applyDefaults() {
	if c.Extension == "" {
		c.Extension = ".go"
	}
	if c.Templates == "" {
		c.Templates = "./templates"
	}
	if len(c.Artifacts) == 0 {
		c.Artifacts = []ArtifactYAML{{Template: "model", Output: "./gen"}}
	}
	for i := range c.Artifacts {
		if c.Artifacts[i].Output == "" {
			c.Artifacts[i].Output = "./gen"
		}
	}
}

func (c *GenConfig) validate() error {
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	seen := make(map[string]bool)
	for _, a := range c.Artifacts {
		if a.Template == "" {
			return fmt.Errorf("artifact with suffix %q has no template", a.Suffix)
		}
		if seen[a.Suffix] {
			return fmt.Errorf("duplicate artifact suffix %q", a.Suffix)
		}
		seen[a.Suffix] = true
	}
	return nil
}

// ClassNamesFunc returns the table → class names fan-out mapper: the
// camelized table name with each artifact suffix appended, in artifact
// order.
func (c *GenConfig) ClassNamesFunc() func(table string) []string {
	artifacts := c.Artifacts
	return func(table string) []string {
		base := mapping.Camelize(table)
		names := make([]string, 0, len(artifacts))
		for _, a := range artifacts {
			names = append(names, base+a.Suffix)
		}
		return names
	}
}

// IncludeFunc returns the table inclusion predicate built from the
// include/exclude lists.
func (c *GenConfig) IncludeFunc() func(table string) bool {
	include := make(map[string]bool, len(c.Tables.Include))
	for _, t := range c.Tables.Include {
		include[t] = true
	}
	exclude := make(map[string]bool, len(c.Tables.Exclude))
	for _, t := range c.Tables.Exclude {
		exclude[t] = true
	}
	return func(table string) bool {
		if exclude[table] {
			return false
		}
		return len(include) == 0 || include[table]
	}
}

// TypeMapperFor returns the driver's default type mapper wrapped with the
// config's type overrides.
func (c *GenConfig) TypeMapperFor(driver string) mapping.TypeMapper {
	return mapping.WithOverrides(mapping.DefaultTypeMapper(driver), c.Types)
}

// PropertyNameFunc returns the default property mapper: lower camel case
// of the column name ("user_id" → "userId").
func (c *GenConfig) PropertyNameFunc() mapping.PropertyMapper {
	return func(columnName string) string {
		return mapping.LowerCamel(mapping.Camelize(columnName))
	}
}

// TemplateNameFunc maps a class name to its artifact's template by suffix.
// The longest matching suffix wins, so "UserDao" picks the "Dao" artifact
// even when a suffix-less artifact exists.
func (c *GenConfig) TemplateNameFunc() func(className string) string {
	artifacts := bySuffixLength(c.Artifacts)
	return func(className string) string {
		return matchArtifact(artifacts, className).Template
	}
}

// OutputDirFunc maps a class name to its artifact's output directory using
// the same suffix matching as TemplateNameFunc.
func (c *GenConfig) OutputDirFunc() func(className string) string {
	artifacts := bySuffixLength(c.Artifacts)
	return func(className string) string {
		return matchArtifact(artifacts, className).Output
	}
}

func bySuffixLength(artifacts []ArtifactYAML) []ArtifactYAML {
	sorted := make([]ArtifactYAML, len(artifacts))
	copy(sorted, artifacts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Suffix) > len(sorted[j].Suffix)
	})
	return sorted
}

func matchArtifact(bySuffix []ArtifactYAML, className string) ArtifactYAML {
	for _, a := range bySuffix {
		if strings.HasSuffix(className, a.Suffix) {
			return a
		}
	}
	// The suffix-less artifact matches everything; reaching here means the
	// config has no catch-all, so fall back to the first artifact.
	return bySuffix[len(bySuffix)-1]
}
