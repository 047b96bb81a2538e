package phasehandler

import (
	"github.com/pkg/errors"
	"recruit-flow-backend/db"
	phasestore "recruit-flow-backend/lib/phase/store"
	workflowstore "recruit-flow-backend/lib/workflow/store"
	"recruit-flow-backend/models"
	workflowapimodels "recruit-flow-backend/models/api/workflow"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(spaceID string, data workflowapimodels.PhaseData) (id string, err error)
	Update(spaceID, id string, data workflowapimodels.PhaseData) error
	GetByID(spaceID, id string) (workflowapimodels.PhaseView, error)
	List(spaceID, companyID string) ([]workflowapimodels.PhaseView, error)
	SetStatus(spaceID, id string, status models.PhaseStatus) error
	Delete(spaceID, id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         phasestore.NewInstance(db.DB),
		workflowStore: workflowstore.NewInstance(db.DB),
	}
}

type impl struct {
	store         phasestore.Provider
	workflowStore workflowstore.Provider
}

func (i impl) Create(spaceID string, data workflowapimodels.PhaseData) (string, error) {
	rec := dbmodels.Phase{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		CompanyID:    data.CompanyID,
		Name:         data.Name,
		WorkflowType: data.WorkflowType,
		DefaultView:  data.DefaultView,
		Status:       models.PhaseStatusDraft,
		Objective:    data.Objective,
	}
	return i.store.Create(rec)
}

func (i impl) Update(spaceID, id string, data workflowapimodels.PhaseData) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("phase not found")
	}
	updMap := map[string]interface{}{
		"name":         data.Name,
		"default_view": data.DefaultView,
		"objective":    data.Objective,
	}
	return i.store.Update(spaceID, id, updMap)
}

func (i impl) GetByID(spaceID, id string) (workflowapimodels.PhaseView, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return workflowapimodels.PhaseView{}, err
	}
	if rec == nil {
		return workflowapimodels.PhaseView{}, errors.New("phase not found")
	}
	return workflowapimodels.PhaseConvert(*rec), nil
}

func (i impl) List(spaceID, companyID string) ([]workflowapimodels.PhaseView, error) {
	list, err := i.store.List(spaceID, companyID)
	if err != nil {
		return nil, err
	}
	result := make([]workflowapimodels.PhaseView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.PhaseConvert(rec))
	}
	return result, nil
}

func (i impl) SetStatus(spaceID, id string, status models.PhaseStatus) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("phase not found")
	}
	updMap := map[string]interface{}{
		"status": status,
	}
	return i.store.Update(spaceID, id, updMap)
}

func (i impl) Delete(spaceID, id string) (hMsg string, err error) {
	workflows, err := i.workflowStore.ListByPhase(spaceID, id)
	if err != nil {
		return "", err
	}
	if len(workflows) > 0 {
		return "phase still has workflows attached", nil
	}
	return "", i.store.Delete(spaceID, id)
}
