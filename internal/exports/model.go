package exports

import "time"

// Status of an export job.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Format of the produced artifact.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// Export is one export job and, once completed, its stored artifact.
type Export struct {
	ID          string
	UserID      string
	CVID        string
	Format      string
	Template    string
	Status      string
	FileName    string
	MIMEType    string
	StorageKey  string
	SizeBytes   int64
	Pages       int
	Error       string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// ValidFormat reports whether f is a supported export format.
func ValidFormat(f string) bool {
	return f == FormatPDF || f == FormatDOCX
}
