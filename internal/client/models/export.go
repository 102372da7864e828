package models

import "time"

// Upload states of an exported report.
const (
	ExportPending  = "pending"
	ExportUploaded = "uploaded"
	ExportFailed   = "failed"
)

// Export records one report upload made from this machine.
type Export struct {
	Key       string
	Name      string
	Rows      int
	Status    string
	CreatedAt time.Time
}
