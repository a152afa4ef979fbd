package domain

// Operation is a snapshot of an asynchronous ingestion job.
// The core never polls; callers fetch a fresh snapshot on demand.
type Operation struct {
	// Name is the operation resource name.
	Name string `json:"name"`

	// Done is true once the job has finished.
	Done bool `json:"done"`

	// Metadata is service-specific progress information.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Error is set when the job failed.
	Error *OperationError `json:"error,omitempty"`

	// Response is the job result once Done is true.
	Response map[string]any `json:"response,omitempty"`
}

// Failed returns true if the operation finished with an error.
func (o Operation) Failed() bool {
	return o.Done && o.Error != nil
}

// OperationError describes why an operation failed.
type OperationError struct {
	Code    int              `json:"code"`
	Message string           `json:"message"`
	Details []map[string]any `json:"details,omitempty"`
}
