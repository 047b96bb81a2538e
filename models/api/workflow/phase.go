package workflowapimodels

import (
	"github.com/pkg/errors"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type PhaseData struct {
	CompanyID    string              `json:"company_id"`    // Owning company
	Name         string              `json:"name"`          // Phase name
	WorkflowType models.WorkflowType `json:"workflow_type"` // Workflow type served by the phase
	DefaultView  models.PhaseView    `json:"default_view"`  // KANBAN/LIST
	Objective    string              `json:"objective"`     // Optional objective text
}

func (p PhaseData) Validate() error {
	if p.Name == "" {
		return errors.New("phase name is required")
	}
	if p.CompanyID == "" {
		return errors.New("company is required")
	}
	if !p.WorkflowType.IsValid() {
		return errors.New("unknown workflow type")
	}
	if p.DefaultView != models.PhaseViewKanban && p.DefaultView != models.PhaseViewList {
		return errors.New("unknown default view")
	}
	return nil
}

type PhaseView struct {
	ID           string              `json:"id"`
	CompanyID    string              `json:"company_id"`
	Name         string              `json:"name"`
	SortOrder    int                 `json:"sort_order"`
	WorkflowType models.WorkflowType `json:"workflow_type"`
	DefaultView  models.PhaseView    `json:"default_view"`
	Status       models.PhaseStatus  `json:"status"`
	Objective    string              `json:"objective"`
}

func PhaseConvert(rec dbmodels.Phase) PhaseView {
	return PhaseView{
		ID:           rec.ID,
		CompanyID:    rec.CompanyID,
		Name:         rec.Name,
		SortOrder:    rec.SortOrder,
		WorkflowType: rec.WorkflowType,
		DefaultView:  rec.DefaultView,
		Status:       rec.Status,
		Objective:    rec.Objective,
	}
}
