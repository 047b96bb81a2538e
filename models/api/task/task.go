package taskapimodels

import (
	"time"

	"recruit-flow-backend/models"
	apimodels "recruit-flow-backend/models/api"
)

type TaskFilter struct {
	apimodels.Pagination
	StageID     string               `json:"stage_id"`     // optional stage filter
	PositionID  string               `json:"position_id"`  // optional position filter
	Status      models.TaskStatus    `json:"status"`       // optional status filter
	OverdueOnly bool                 `json:"overdue_only"` // only tasks past deadline
	MinPriority models.PriorityLevel `json:"min_priority"` // drop tasks below this level
}

// TaskView is the work-queue projection of an application sitting in a
// stage. It is derived on read and never persisted.
type TaskView struct {
	ApplicationID string               `json:"application_id"`
	CandidateID   string               `json:"candidate_id"`
	JobPositionID string               `json:"job_position_id"`
	StageID       string               `json:"stage_id"`
	StageName     string               `json:"stage_name"`
	TaskStatus    models.TaskStatus    `json:"task_status"`
	ClaimedBy     *string              `json:"claimed_by,omitempty"`
	StageDeadline *time.Time           `json:"stage_deadline,omitempty"`
	IsOverdue     bool                 `json:"is_overdue"`
	PriorityScore int                  `json:"priority_score"`
	PriorityLevel models.PriorityLevel `json:"priority_level"`
}
