package export

import "errors"

// Failure taxonomy for the export pipeline. Lower layers raise their own
// errors; the orchestrator wraps them into exactly one of these so
// callers can map them to user-facing messaging.
var (
	// ErrMissingInput: template, data or customization absent at call
	// time. Reported before any resource is acquired.
	ErrMissingInput = errors.New("missing export input")

	// ErrRasterization: rendering, mounting, measuring or capturing the
	// surface failed. No partial PDF is produced.
	ErrRasterization = errors.New("rasterization failed")

	// ErrSerialization: PDF or DOCX assembly failed after the content
	// was ready.
	ErrSerialization = errors.New("serialization failed")
)
