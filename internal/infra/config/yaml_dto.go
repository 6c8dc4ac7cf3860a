package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type YAMLConfig struct {
	Metadata    YAMLMetadata    `yaml:"fhir_metadata"`
	CodeSystems YAMLCodeSystems `yaml:"code_systems"`
	ValueSets   YAMLValueSets   `yaml:"value_sets"`

	Generation *YAMLGeneration `yaml:"generation"`
	Output     *YAMLOutput     `yaml:"output"`
	Service    *YAMLService    `yaml:"service"`
}

type YAMLMetadata struct {
	Copyright         string                          `yaml:"copyright"`
	Publisher         string                          `yaml:"publisher"`
	URLTemplate       string                          `yaml:"url_template"`
	DivTemplate       string                          `yaml:"div_template"`
	IdentifierSystems map[string]YAMLIdentifierSystem `yaml:"identifier_systems"`
}

type YAMLIdentifierSystem struct {
	System string `yaml:"system"`
	Prefix string `yaml:"prefix"`
}

type YAMLCodeSystems struct {
	Profiles       []string     `yaml:"profiles"`
	ConceptClasses YAMLResource `yaml:"concept_classes"`
	AllCodes       YAMLAllCodes `yaml:"all_codes"`
}

type YAMLResource struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OID         string `yaml:"oid"`
}

type YAMLAllCodes struct {
	YAMLResource `yaml:",inline"`
	Properties   YAMLProperties `yaml:"properties"`
}

type YAMLProperty struct {
	Code        string `yaml:"-"`
	Type        string `yaml:"type"`
	URI         string `yaml:"uri"`
	Description string `yaml:"description"`
}

// YAMLProperties decodes a code -> property mapping, keeping file order.
type YAMLProperties []YAMLProperty

func (p *YAMLProperties) UnmarshalYAML(node *yaml.Node) error {
	return decodeOrdered(node, func(key string, v YAMLProperty) {
		v.Code = key
		*p = append(*p, v)
	})
}

type YAMLValueSets struct {
	TitleTemplate string          `yaml:"title_template"`
	Description   string          `yaml:"description"`
	Definitions   YAMLDefinitions `yaml:"definitions"`
}

type YAMLDefinition struct {
	Name  string `yaml:"-"`
	Class string `yaml:"class"`
	OID   string `yaml:"oid"`
}

// YAMLDefinitions decodes a name -> definition mapping, keeping file order.
type YAMLDefinitions []YAMLDefinition

func (d *YAMLDefinitions) UnmarshalYAML(node *yaml.Node) error {
	return decodeOrdered(node, func(key string, v YAMLDefinition) {
		v.Name = key
		*d = append(*d, v)
	})
}

type YAMLGeneration struct {
	Designations         []string `yaml:"designations"`
	ValueSetDesignations *bool    `yaml:"value_set_designations"`
}

type YAMLOutput struct {
	Directory       string `yaml:"directory"`
	Extension       string `yaml:"extension"`
	PreserveUnicode *bool  `yaml:"preserve_unicode"`
}

type YAMLService struct {
	Scheme   string `yaml:"scheme"`
	Host     string `yaml:"host"`
	BasePath string `yaml:"base_path"`
	Timeout  string `yaml:"timeout"`
}

func decodeOrdered[T any](node *yaml.Node, add func(key string, v T)) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}

	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if _, dup := seen[k.Value]; dup {
			return fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		}
		seen[k.Value] = struct{}{}

		var item T
		if err := v.Decode(&item); err != nil {
			return fmt.Errorf("line %d: %s: %w", k.Line, k.Value, err)
		}
		add(k.Value, item)
	}
	return nil
}
