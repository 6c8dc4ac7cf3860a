package domain

import (
	"strings"
	"time"
)

// AllLanguages is the designation sentinel that expands to every language the
// terminology service supports.
const AllLanguages = "all"

// OIDSystemKey is the identifier system used for the registry ids (OIDs) of the
// concept resource and the value sets.
const OIDSystemKey = "oid"

// Config represents the validated configuration loaded from edqm2fhir.yaml.
// It is produced once at load time; stages never look keys up dynamically.
type Config struct {
	// Source is the file the configuration was loaded from (for error messages).
	Source string

	Metadata    MetadataConfig
	CodeSystems CodeSystemsConfig
	ValueSets   ValueSetsConfig
	Generation  GenerationConfig
	Output      OutputConfig
	Service     ServiceConfig
}

type MetadataConfig struct {
	Copyright string
	Publisher string

	// URLTemplate builds canonical URLs, e.g.
	// "https://fhir.example.org/<$resource_type$>/<$id_slug$>".
	URLTemplate string

	// DivTemplate renders the narrative; placeholders: title, canonical, description.
	DivTemplate string

	IdentifierSystems map[string]IdentifierSystem
}

type IdentifierSystem struct {
	System string
	Prefix string
}

type CodeSystemsConfig struct {
	Profiles       []string
	ConceptClasses ResourceSettings
	AllCodes       ResourceSettings

	// Properties are the property declarations of the full concept resource,
	// in configuration order.
	Properties []PropertyDecl
}

// ResourceSettings holds the per-resource title/description/oid.
// Description may contain a <$date$> placeholder.
type ResourceSettings struct {
	Title       string
	Description string
	OID         string
}

type ValueSetsConfig struct {
	// TitleTemplate uses <$vs_name$>.
	TitleTemplate string
	// Description uses <$title$> (the definition name), <$class_code$> and
	// <$date$>.
	Description string

	// Definitions keep configuration order.
	Definitions []ValueSetDefinition
}

// ValueSetDefinition configures one partition: its name, the class it
// restricts to and its registry id.
type ValueSetDefinition struct {
	Name  string
	Class string
	OID   string
}

type GenerationConfig struct {
	// Designations lists language codes, or the single sentinel "all".
	Designations []string
	// ValueSetDesignations copies concept designations into partitions.
	ValueSetDesignations bool
}

type OutputConfig struct {
	Directory       string
	Extension       string
	PreserveUnicode bool
}

type ServiceConfig struct {
	Scheme   string
	Host     string
	BasePath string
	Timeout  time.Duration
}

// DefaultConfig provides sane defaults for the optional sections.
func DefaultConfig() Config {
	return Config{
		Generation: GenerationConfig{
			Designations: []string{AllLanguages},
		},
		Output: OutputConfig{
			Directory:       "output",
			Extension:       "fhir.json",
			PreserveUnicode: true,
		},
		Service: ServiceConfig{
			Scheme:   "https",
			Host:     "standardterms.edqm.eu",
			BasePath: "/standardterms/api/v1",
			Timeout:  10 * time.Minute,
		},
	}
}

// ClassCodes returns the class code of every value-set definition, in order.
func (c Config) ClassCodes() []string {
	out := make([]string, 0, len(c.ValueSets.Definitions))
	for _, d := range c.ValueSets.Definitions {
		out = append(out, d.Class)
	}
	return out
}

// WantsAllLanguages reports whether the designation set is the "all" sentinel.
func (c Config) WantsAllLanguages() bool {
	for _, l := range c.Generation.Designations {
		if strings.EqualFold(strings.TrimSpace(l), AllLanguages) {
			return true
		}
	}
	return false
}

// OIDIdentifier builds the registry identifier for oid, or nil when no oid
// system is configured or oid is empty.
func (c Config) OIDIdentifier(oid string) *Identifier {
	sys, ok := c.Metadata.IdentifierSystems[OIDSystemKey]
	if !ok || strings.TrimSpace(oid) == "" {
		return nil
	}
	return &Identifier{
		System: sys.System,
		Value:  sys.Prefix + oid,
	}
}
