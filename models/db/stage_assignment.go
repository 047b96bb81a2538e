package dbmodels

// StageAssignment grants a user the right to act on applications sitting
// in a stage, optionally narrowed to one job position.
type StageAssignment struct {
	BaseSpaceModel
	StageID       string `gorm:"type:varchar(36);index:idx_stage_assignment"`
	UserID        string `gorm:"type:varchar(36);index:idx_stage_assignment"`
	JobPositionID string `gorm:"type:varchar(36)"` // empty means any position
}
