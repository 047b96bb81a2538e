package workflowapimodels

import (
	"github.com/pkg/errors"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type WorkflowData struct {
	Name         string              `json:"name"`          // Workflow name
	PhaseID      *string             `json:"phase_id"`      // Optional owning phase
	WorkflowType models.WorkflowType `json:"workflow_type"` // CA/PO/CO
	IsDefault    bool                `json:"is_default"`    // Default workflow for the phase+type
}

func (w WorkflowData) Validate() error {
	if w.Name == "" {
		return errors.New("workflow name is required")
	}
	if !w.WorkflowType.IsValid() {
		return errors.New("unknown workflow type")
	}
	return nil
}

type WorkflowView struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	PhaseID      *string               `json:"phase_id,omitempty"`
	WorkflowType models.WorkflowType   `json:"workflow_type"`
	Status       models.WorkflowStatus `json:"status"`
	IsDefault    bool                  `json:"is_default"`
	Stages       []StageView           `json:"stages,omitempty"`
}

func WorkflowConvert(rec dbmodels.Workflow) WorkflowView {
	view := WorkflowView{
		ID:           rec.ID,
		Name:         rec.Name,
		PhaseID:      rec.PhaseID,
		WorkflowType: rec.WorkflowType,
		Status:       rec.Status,
		IsDefault:    rec.IsDefault,
	}
	for _, stage := range rec.Stages {
		view.Stages = append(view.Stages, StageConvert(stage))
	}
	return view
}
