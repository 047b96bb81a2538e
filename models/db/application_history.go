package dbmodels

import "time"

// ApplicationHistoryEntry is append-only: rows are never updated or
// deleted, and time-in-stage metrics are derived from them alone.
type ApplicationHistoryEntry struct {
	BaseSpaceModel
	ApplicationID string  `gorm:"type:varchar(36);index"`
	FromStageID   *string `gorm:"type:varchar(36)"` // nil for the first entry
	ToStageID     string  `gorm:"type:varchar(36)"`
	ChangedBy     string  `gorm:"type:varchar(36)"`
	ChangedAt     time.Time
	Notes         string
}
