package ports

import "github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"

// ReportWriter writes a human-readable review of a run's concepts and partitions.
type ReportWriter interface {
	WriteReport(full domain.FullConceptResource, parts []domain.PartitionedResource, warnings []domain.Warning) error
}
