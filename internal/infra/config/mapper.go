package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

var propertyTypes = map[string]struct{}{
	"code":     {},
	"Coding":   {},
	"string":   {},
	"integer":  {},
	"boolean":  {},
	"dateTime": {},
	"decimal":  {},
}

// MapConfig validates dto and maps it onto the defaults. Every problem is
// collected into a single ValidationError.
func MapConfig(path string, dto YAMLConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	cfg.Source = path
	v := &domain.ValidationError{}

	mapMetadata(&cfg, dto.Metadata, v)
	mapCodeSystems(&cfg, dto.CodeSystems, v)
	mapValueSets(&cfg, dto.ValueSets, v)
	mapGeneration(&cfg, dto.Generation, v)
	mapOutput(&cfg, dto.Output)
	mapService(&cfg, dto.Service, v)
	checkIdentifiers(cfg, v)
	checkIDCollisions(cfg, v)

	if err := v.Err(); err != nil {
		return domain.Config{}, &domain.OpError{
			Op:   "config.map",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

func mapMetadata(cfg *domain.Config, m YAMLMetadata, v *domain.ValidationError) {
	cfg.Metadata = domain.MetadataConfig{
		Copyright:   strings.TrimSpace(m.Copyright),
		Publisher:   strings.TrimSpace(m.Publisher),
		URLTemplate: strings.TrimSpace(m.URLTemplate),
		DivTemplate: strings.TrimSpace(m.DivTemplate),
	}
	if cfg.Metadata.URLTemplate == "" {
		v.Add("fhir_metadata.url_template", "is required")
	}
	if cfg.Metadata.Publisher == "" {
		v.Add("fhir_metadata.publisher", "is required")
	}

	if len(m.IdentifierSystems) > 0 {
		cfg.Metadata.IdentifierSystems = make(map[string]domain.IdentifierSystem, len(m.IdentifierSystems))
	}
	for name, sys := range m.IdentifierSystems {
		if strings.TrimSpace(sys.System) == "" {
			v.Add("fhir_metadata.identifier_systems."+name+".system", "is required")
		}
		cfg.Metadata.IdentifierSystems[name] = domain.IdentifierSystem{
			System: strings.TrimSpace(sys.System),
			Prefix: sys.Prefix,
		}
	}
}

func mapCodeSystems(cfg *domain.Config, cs YAMLCodeSystems, v *domain.ValidationError) {
	cfg.CodeSystems.Profiles = cs.Profiles
	cfg.CodeSystems.ConceptClasses = mapResource("code_systems.concept_classes", cs.ConceptClasses, v)
	cfg.CodeSystems.AllCodes = mapResource("code_systems.all_codes", cs.AllCodes.YAMLResource, v)

	for _, p := range cs.AllCodes.Properties {
		field := "code_systems.all_codes.properties." + p.Code
		if _, ok := propertyTypes[p.Type]; !ok {
			v.Add(field+".type", fmt.Sprintf("unsupported type %q", p.Type))
		}
		cfg.CodeSystems.Properties = append(cfg.CodeSystems.Properties, domain.PropertyDecl{
			Code:        p.Code,
			Type:        p.Type,
			URI:         strings.TrimSpace(p.URI),
			Description: strings.TrimSpace(p.Description),
		})
	}
}

func mapResource(field string, r YAMLResource, v *domain.ValidationError) domain.ResourceSettings {
	if strings.TrimSpace(r.Title) == "" {
		v.Add(field+".title", "is required")
	}
	return domain.ResourceSettings{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		OID:         strings.TrimSpace(r.OID),
	}
}

func mapValueSets(cfg *domain.Config, vs YAMLValueSets, v *domain.ValidationError) {
	cfg.ValueSets.TitleTemplate = strings.TrimSpace(vs.TitleTemplate)
	cfg.ValueSets.Description = strings.TrimSpace(vs.Description)

	if len(vs.Definitions) > 0 && cfg.ValueSets.TitleTemplate == "" {
		v.Add("value_sets.title_template", "is required when definitions are present")
	}

	// partitions are disjoint only when no class is claimed twice
	owner := map[string]string{}
	for _, d := range vs.Definitions {
		class := strings.TrimSpace(d.Class)
		if class == "" {
			v.Add("value_sets.definitions."+d.Name+".class", "is required")
		} else if prev, dup := owner[class]; dup {
			v.Add("value_sets.definitions."+d.Name+".class", fmt.Sprintf("class %s already used by %s", class, prev))
		} else {
			owner[class] = d.Name
		}
		cfg.ValueSets.Definitions = append(cfg.ValueSets.Definitions, domain.ValueSetDefinition{
			Name:  d.Name,
			Class: class,
			OID:   strings.TrimSpace(d.OID),
		})
	}
}

func mapGeneration(cfg *domain.Config, g *YAMLGeneration, v *domain.ValidationError) {
	if g == nil {
		return
	}
	if g.Designations != nil {
		langs, err := NormalizeDesignations(g.Designations)
		if err != nil {
			v.Add("generation.designations", err.Error())
		}
		cfg.Generation.Designations = langs
	}
	if g.ValueSetDesignations != nil {
		cfg.Generation.ValueSetDesignations = *g.ValueSetDesignations
	}
}

// NormalizeDesignations trims and de-duplicates language codes and checks the
// "all" sentinel is not mixed with explicit codes.
func NormalizeDesignations(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	hasAll := false
	for _, l := range in {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if strings.EqualFold(l, domain.AllLanguages) {
			hasAll = true
			l = domain.AllLanguages
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	if len(out) == 0 {
		return []string{domain.AllLanguages}, fmt.Errorf("must list at least one language or %q", domain.AllLanguages)
	}
	if hasAll && len(out) > 1 {
		return out, fmt.Errorf("%q cannot be combined with explicit languages", domain.AllLanguages)
	}
	return out, nil
}

func mapOutput(cfg *domain.Config, o *YAMLOutput) {
	if o == nil {
		return
	}
	if d := strings.TrimSpace(o.Directory); d != "" {
		cfg.Output.Directory = d
	}
	if ext := strings.TrimLeft(strings.TrimSpace(o.Extension), "."); ext != "" {
		cfg.Output.Extension = ext
	}
	if o.PreserveUnicode != nil {
		cfg.Output.PreserveUnicode = *o.PreserveUnicode
	}
}

func mapService(cfg *domain.Config, s *YAMLService, v *domain.ValidationError) {
	if s == nil {
		return
	}
	if scheme := strings.ToLower(strings.TrimSpace(s.Scheme)); scheme != "" {
		if scheme != "http" && scheme != "https" {
			v.Add("service.scheme", fmt.Sprintf("unsupported scheme %q", s.Scheme))
		}
		cfg.Service.Scheme = scheme
	}
	if h := strings.TrimSpace(s.Host); h != "" {
		cfg.Service.Host = h
	}
	if bp := strings.TrimSpace(s.BasePath); bp != "" {
		cfg.Service.BasePath = bp
	}
	if t := strings.TrimSpace(s.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		switch {
		case err != nil:
			v.Add("service.timeout", fmt.Sprintf("invalid duration %q", t))
		case d <= 0:
			v.Add("service.timeout", "must be positive")
		default:
			cfg.Service.Timeout = d
		}
	}
}

// checkIdentifiers requires an oid identifier system as soon as any resource
// carries an oid.
func checkIdentifiers(cfg domain.Config, v *domain.ValidationError) {
	if _, ok := cfg.Metadata.IdentifierSystems[domain.OIDSystemKey]; ok {
		return
	}
	uses := cfg.CodeSystems.AllCodes.OID != "" || cfg.CodeSystems.ConceptClasses.OID != ""
	for _, d := range cfg.ValueSets.Definitions {
		uses = uses || d.OID != ""
	}
	if uses {
		v.Add("fhir_metadata.identifier_systems."+domain.OIDSystemKey, "is required when an oid is configured")
	}
}

// checkIDCollisions rejects titles that would produce the same resource file.
func checkIDCollisions(cfg domain.Config, v *domain.ValidationError) {
	classes, all := cfg.CodeSystems.ConceptClasses.Title, cfg.CodeSystems.AllCodes.Title
	if classes != "" && all != "" && domain.IDFromTitle(classes) == domain.IDFromTitle(all) {
		v.Add("code_systems.all_codes.title", "yields the same id as code_systems.concept_classes.title")
	}

	vs := map[string]string{}
	for _, d := range cfg.ValueSets.Definitions {
		title, err := domain.RenderPlaceholders(cfg.ValueSets.TitleTemplate, domain.Vars{"vs_name": d.Name})
		if err != nil {
			// reported when the title is first rendered
			continue
		}
		id := domain.IDFromTitle(title)
		if prev, ok := vs[id]; ok {
			v.Add("value_sets.definitions."+d.Name, fmt.Sprintf("yields the same id %q as %s", id, prev))
			continue
		}
		vs[id] = d.Name
	}
}
