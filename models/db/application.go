package dbmodels

import (
	"time"

	"recruit-flow-backend/models"
)

type CandidateApplication struct {
	BaseSpaceModel
	CandidateID    string  `gorm:"type:varchar(36);index"`
	JobPositionID  string  `gorm:"type:varchar(36);index"`
	PhaseID        string  `gorm:"type:varchar(36);index"`
	CurrentStageID *string `gorm:"type:varchar(36);index"`
	CurrentStage   *Stage  `gorm:"foreignKey:CurrentStageID"`
	StageEnteredAt *time.Time
	StageDeadline  *time.Time
	Status         models.ApplicationStatus `gorm:"type:varchar(20);index"`
	TaskStatus     models.TaskStatus        `gorm:"type:varchar(20);index"`
	ClaimedBy      *string                  `gorm:"type:varchar(36)"`
}

// IsOverdue is evaluated on read against the supplied clock, never by a
// background sweep.
func (a CandidateApplication) IsOverdue(now time.Time) bool {
	return a.StageDeadline != nil && a.StageDeadline.Before(now)
}

func (a CandidateApplication) AgeInStage(now time.Time) time.Duration {
	if a.StageEnteredAt == nil {
		return 0
	}
	return now.Sub(*a.StageEnteredAt)
}
