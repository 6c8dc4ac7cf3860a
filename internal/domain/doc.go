// Package domain contains the core model for edqm2fhir: concept classes, raw
// concepts as delivered by the terminology service, the transformed concepts
// and the three resource kinds built from them.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML
// parsing, net/http, FHIR JSON or the filesystem. Infra/adapters map into/from
// these types.
package domain
