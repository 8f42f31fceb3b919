package driving

import "context"

// IngestState is the ingestion service's lifecycle state.
type IngestState int32

const (
	// IngestIdle means the service has not started.
	IngestIdle IngestState = iota

	// IngestBootstrapping means the initial directory scan is running.
	IngestBootstrapping

	// IngestWatching means the watch loop is consuming events.
	IngestWatching

	// IngestRestarting means the watch subscription failed and the
	// service is backing off before resubscribing.
	IngestRestarting

	// IngestStopped means the service has shut down.
	IngestStopped
)

// String returns a readable state name.
func (s IngestState) String() string {
	switch s {
	case IngestIdle:
		return "idle"
	case IngestBootstrapping:
		return "bootstrapping"
	case IngestWatching:
		return "watching"
	case IngestRestarting:
		return "restarting"
	case IngestStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Ingestor keeps the document store in sync with the watched directory
// for the life of the process.
type Ingestor interface {
	// Bootstrap runs the initial directory scan. Directory read failure
	// is logged and leaves the store empty; it is not fatal.
	Bootstrap(ctx context.Context)

	// Run consumes watch events until ctx is cancelled, resubscribing
	// with bounded backoff whenever the watch breaks. Blocks.
	Run(ctx context.Context)

	// State returns the current lifecycle state.
	State() IngestState
}
