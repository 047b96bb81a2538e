package workflowapimodels

import (
	"github.com/pkg/errors"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type StageData struct {
	Name                  string               `json:"name"`                    // Stage name
	StageType             models.StageType     `json:"stage_type"`              // INITIAL/STANDARD/SUCCESS/FAIL
	AllowSkip             bool                 `json:"allow_skip"`              // Stage may be skipped
	EstimatedDurationDays int                  `json:"estimated_duration_days"` // Expected time on stage
	DeadlineDays          int                  `json:"deadline_days"`           // Days until the stage deadline
	DefaultRoleIDs        []string             `json:"default_role_ids"`        // Roles assigned by default
	NextPhaseID           *string              `json:"next_phase_id"`           // Hand-off phase for terminal stages
	KanbanDisplay         models.KanbanDisplay `json:"kanban_display"`          // COLUMN/ROW/NONE
	Style                 dbmodels.StageStyle  `json:"style"`
}

func (s StageData) Validate() error {
	if s.Name == "" {
		return errors.New("stage name is required")
	}
	if !s.StageType.IsValid() {
		return errors.New("unknown stage type")
	}
	if s.NextPhaseID != nil && !s.StageType.IsTerminal() {
		return errors.New("next phase can only be set on SUCCESS or FAIL stages")
	}
	if s.DeadlineDays < 0 || s.EstimatedDurationDays < 0 {
		return errors.New("stage durations cannot be negative")
	}
	return nil
}

type StageView struct {
	ID                    string               `json:"id"`
	WorkflowID            string               `json:"workflow_id"`
	Name                  string               `json:"name"`
	StageOrder            int                  `json:"stage_order"`
	StageType             models.StageType     `json:"stage_type"`
	IsActive              bool                 `json:"is_active"`
	AllowSkip             bool                 `json:"allow_skip"`
	EstimatedDurationDays int                  `json:"estimated_duration_days"`
	DeadlineDays          int                  `json:"deadline_days"`
	DefaultRoleIDs        []string             `json:"default_role_ids"`
	NextPhaseID           *string              `json:"next_phase_id,omitempty"`
	KanbanDisplay         models.KanbanDisplay `json:"kanban_display"`
	Style                 dbmodels.StageStyle  `json:"style"`
}

type StageOrderData struct {
	ID       string `json:"id"`        // Stage ID
	NewOrder int    `json:"new_order"` // New position within the workflow
}

func StageConvert(rec dbmodels.Stage) StageView {
	return StageView{
		ID:                    rec.ID,
		WorkflowID:            rec.WorkflowID,
		Name:                  rec.Name,
		StageOrder:            rec.StageOrder,
		StageType:             rec.StageType,
		IsActive:              rec.IsActive,
		AllowSkip:             rec.AllowSkip,
		EstimatedDurationDays: rec.EstimatedDurationDays,
		DeadlineDays:          rec.DeadlineDays,
		DefaultRoleIDs:        rec.DefaultRoleIDs,
		NextPhaseID:           rec.NextPhaseID,
		KanbanDisplay:         rec.KanbanDisplay,
		Style:                 rec.Style,
	}
}
