package loader

import (
	"fmt"
	"os"

	"github.com/ridoystarlord/syncproc/schema"
	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Syncs []yamlSync `yaml:"syncs"`
}

type yamlSync struct {
	Target      string       `yaml:"target"`
	Source      string       `yaml:"source"`
	KeyStrategy string       `yaml:"key_strategy"`
	KeyColumn   string       `yaml:"key_column"`
	Comparison  string       `yaml:"comparison"`
	Columns     []yamlColumn `yaml:"columns"`
}

type yamlColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadDefinitionsFromYAML reads every sync definition from a YAML file.
func LoadDefinitionsFromYAML(filename string) ([]schema.SyncDefinition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading definitions file: %w", err)
	}
	return ParseDefinitions(data)
}

// ParseDefinitions decodes sync definitions from YAML bytes. Column order is
// preserved.
func ParseDefinitions(data []byte) ([]schema.SyncDefinition, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	var defs []schema.SyncDefinition
	for _, s := range yf.Syncs {
		def := schema.SyncDefinition{
			TargetTable: s.Target,
			SourceTable: s.Source,
			KeyStrategy: s.KeyStrategy,
			KeyColumn:   s.KeyColumn,
			Comparison:  s.Comparison,
		}
		for _, c := range s.Columns {
			def.Columns = append(def.Columns, schema.Column{
				Name: c.Name,
				Type: c.Type,
			})
		}
		defs = append(defs, def)
	}

	return defs, nil
}
