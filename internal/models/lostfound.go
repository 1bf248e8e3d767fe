package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Report types for the campus lost & found board.
const (
	ReportTypeLost  = "lost"
	ReportTypeFound = "found"
)

// LostFoundReport is a notice on the lost & found board. Unlike a listing
// it may carry no image, and it is closed by marking it resolved rather
// than sold. Only the reporter may mutate it.
type LostFoundReport struct {
	BaseModel
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Location      string         `json:"location"`
	Type          string         `gorm:"index" json:"type"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"`
	ContactNumber string         `json:"contact_number"`
	IsResolved    bool           `json:"is_resolved"`
	ReporterID    uuid.UUID      `gorm:"type:uuid;index" json:"reporter_id"`
	Reporter      *User          `json:"reporter,omitempty"`
}
