package ports

import "time"

// RunRecorder observes a conversion run. Implementations must tolerate being
// called with zero values.
type RunRecorder interface {
	ObserveStage(stage string, d time.Duration, err error)
	ObserveConcepts(n int)
	ObserveWarnings(n int)
	ObservePartition(name string, members int)
	ObserveResourceWritten(kind string)
}
