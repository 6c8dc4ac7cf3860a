// Package fhir holds the FHIR R4 wire shapes of the generated resources and
// the mappers from the domain resources into them. Only the elements this
// tool emits are modelled; field order follows the FHIR JSON examples.
package fhir
