package applicantapimodels

import (
	"time"

	"github.com/pkg/errors"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type ApplicationData struct {
	CandidateID   string `json:"candidate_id"`
	JobPositionID string `json:"job_position_id"`
	PhaseID       string `json:"phase_id"`
}

func (a ApplicationData) Validate() error {
	if a.CandidateID == "" {
		return errors.New("candidate id is required")
	}
	if a.JobPositionID == "" {
		return errors.New("job position id is required")
	}
	if a.PhaseID == "" {
		return errors.New("phase id is required")
	}
	return nil
}

type ApplicationView struct {
	ID             string                   `json:"id"`
	CandidateID    string                   `json:"candidate_id"`
	JobPositionID  string                   `json:"job_position_id"`
	PhaseID        string                   `json:"phase_id"`
	CurrentStageID *string                  `json:"current_stage_id,omitempty"`
	StageEnteredAt *time.Time               `json:"stage_entered_at,omitempty"`
	StageDeadline  *time.Time               `json:"stage_deadline,omitempty"`
	Status         models.ApplicationStatus `json:"application_status"`
	TaskStatus     models.TaskStatus        `json:"task_status"`
	ClaimedBy      *string                  `json:"claimed_by,omitempty"`
}

func ApplicationConvert(rec dbmodels.CandidateApplication) ApplicationView {
	return ApplicationView{
		ID:             rec.ID,
		CandidateID:    rec.CandidateID,
		JobPositionID:  rec.JobPositionID,
		PhaseID:        rec.PhaseID,
		CurrentStageID: rec.CurrentStageID,
		StageEnteredAt: rec.StageEnteredAt,
		StageDeadline:  rec.StageDeadline,
		Status:         rec.Status,
		TaskStatus:     rec.TaskStatus,
		ClaimedBy:      rec.ClaimedBy,
	}
}
