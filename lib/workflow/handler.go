package workflowhandler

import (
	"github.com/pkg/errors"
	"recruit-flow-backend/db"
	stagestore "recruit-flow-backend/lib/workflow/stage-store"
	workflowstore "recruit-flow-backend/lib/workflow/store"
	"recruit-flow-backend/models"
	workflowapimodels "recruit-flow-backend/models/api/workflow"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(spaceID string, data workflowapimodels.WorkflowData) (id string, hMsg string, err error)
	Update(spaceID, id string, data workflowapimodels.WorkflowData) (hMsg string, err error)
	GetByID(spaceID, id string) (workflowapimodels.WorkflowView, error)
	List(spaceID string, workflowType models.WorkflowType) ([]workflowapimodels.WorkflowView, error)
	SetStatus(spaceID, id string, status models.WorkflowStatus) (hMsg string, err error)
	Delete(spaceID, id string) error

	StageCreate(spaceID, workflowID string, data workflowapimodels.StageData) (id string, hMsg string, err error)
	StageUpdate(spaceID, workflowID, stageID string, data workflowapimodels.StageData) (hMsg string, err error)
	StageList(spaceID, workflowID string) ([]workflowapimodels.StageView, error)
	StageChangeOrder(spaceID, workflowID string, data workflowapimodels.StageOrderData) (hMsg string, err error)
	StageSetActive(spaceID, workflowID, stageID string, isActive bool) error
	StageDelete(spaceID, workflowID, stageID string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      workflowstore.NewInstance(db.DB),
		stageStore: stagestore.NewInstance(db.DB),
	}
}

type impl struct {
	store      workflowstore.Provider
	stageStore stagestore.Provider
}

func (i impl) Create(spaceID string, data workflowapimodels.WorkflowData) (id string, hMsg string, err error) {
	rec := dbmodels.Workflow{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name:         data.Name,
		PhaseID:      data.PhaseID,
		WorkflowType: data.WorkflowType,
		Status:       models.WorkflowStatusInactive,
		IsDefault:    data.IsDefault,
	}
	if data.IsDefault && data.PhaseID != nil {
		if err = i.store.ResetDefault(spaceID, *data.PhaseID, data.WorkflowType); err != nil {
			return "", "", err
		}
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	return id, "", nil
}

func (i impl) Update(spaceID, id string, data workflowapimodels.WorkflowData) (hMsg string, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "workflow not found", nil
	}
	if data.IsDefault && !rec.IsDefault && data.PhaseID != nil {
		if err = i.store.ResetDefault(spaceID, *data.PhaseID, data.WorkflowType); err != nil {
			return "", err
		}
	}
	updMap := map[string]interface{}{
		"name":       data.Name,
		"phase_id":   data.PhaseID,
		"is_default": data.IsDefault,
	}
	return "", i.store.Update(spaceID, id, updMap)
}

func (i impl) GetByID(spaceID, id string) (workflowapimodels.WorkflowView, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return workflowapimodels.WorkflowView{}, err
	}
	if rec == nil {
		return workflowapimodels.WorkflowView{}, errors.New("workflow not found")
	}
	return workflowapimodels.WorkflowConvert(*rec), nil
}

func (i impl) List(spaceID string, workflowType models.WorkflowType) ([]workflowapimodels.WorkflowView, error) {
	list, err := i.store.List(spaceID, workflowType)
	if err != nil {
		return nil, err
	}
	result := make([]workflowapimodels.WorkflowView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.WorkflowConvert(rec))
	}
	return result, nil
}

// SetStatus activates, deactivates or archives a workflow. Activation
// checks the full stage-set invariants; incomplete workflows stay
// INACTIVE while they are being assembled.
func (i impl) SetStatus(spaceID, id string, status models.WorkflowStatus) (hMsg string, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "workflow not found", nil
	}
	if status == models.WorkflowStatusActive {
		if err := dbmodels.CheckStageSet(rec.Stages); err != nil {
			return err.Error(), nil
		}
	}
	updMap := map[string]interface{}{
		"status": status,
	}
	return "", i.store.Update(spaceID, id, updMap)
}

func (i impl) Delete(spaceID, id string) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("workflow not found")
	}
	for _, stage := range rec.Stages {
		if err = i.stageStore.Delete(spaceID, id, stage.ID); err != nil {
			return err
		}
	}
	return i.store.Delete(spaceID, id)
}

func (i impl) StageCreate(spaceID, workflowID string, data workflowapimodels.StageData) (id string, hMsg string, err error) {
	workflow, err := i.store.GetByID(spaceID, workflowID)
	if err != nil {
		return "", "", err
	}
	if workflow == nil {
		return "", "workflow not found", nil
	}
	for _, existing := range workflow.Stages {
		if data.StageType == models.StageTypeInitial && existing.StageType == models.StageTypeInitial {
			return "", "workflow already has an INITIAL stage", nil
		}
		if data.StageType == models.StageTypeSuccess && existing.StageType == models.StageTypeSuccess {
			return "", "workflow already has a SUCCESS stage", nil
		}
	}
	rec := dbmodels.Stage{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		WorkflowID:            workflowID,
		Name:                  data.Name,
		StageType:             data.StageType,
		IsActive:              true,
		AllowSkip:             data.AllowSkip,
		EstimatedDurationDays: data.EstimatedDurationDays,
		DeadlineDays:          data.DeadlineDays,
		DefaultRoleIDs:        data.DefaultRoleIDs,
		NextPhaseID:           data.NextPhaseID,
		KanbanDisplay:         data.KanbanDisplay,
		Style:                 data.Style,
		FieldPropertiesConfig: dbmodels.FieldPropertiesConfig{},
	}
	id, err = i.stageStore.Create(rec)
	if err != nil {
		return "", "", err
	}
	return id, "", nil
}

func (i impl) StageUpdate(spaceID, workflowID, stageID string, data workflowapimodels.StageData) (hMsg string, err error) {
	stage, err := i.stageStore.GetByID(spaceID, stageID)
	if err != nil {
		return "", err
	}
	if stage == nil || stage.WorkflowID != workflowID {
		return "stage not found", nil
	}
	if stage.StageType != data.StageType {
		workflow, err := i.store.GetByID(spaceID, workflowID)
		if err != nil {
			return "", err
		}
		for _, existing := range workflow.Stages {
			if existing.ID == stageID {
				continue
			}
			if data.StageType == models.StageTypeInitial && existing.StageType == models.StageTypeInitial {
				return "workflow already has an INITIAL stage", nil
			}
			if data.StageType == models.StageTypeSuccess && existing.StageType == models.StageTypeSuccess {
				return "workflow already has a SUCCESS stage", nil
			}
		}
	}
	updMap := map[string]interface{}{
		"name":                    data.Name,
		"stage_type":              data.StageType,
		"allow_skip":              data.AllowSkip,
		"estimated_duration_days": data.EstimatedDurationDays,
		"deadline_days":           data.DeadlineDays,
		"default_role_ids":        data.DefaultRoleIDs,
		"next_phase_id":           data.NextPhaseID,
		"kanban_display":          data.KanbanDisplay,
		"style":                   data.Style,
	}
	return "", i.stageStore.Update(spaceID, workflowID, stageID, updMap)
}

func (i impl) StageList(spaceID, workflowID string) ([]workflowapimodels.StageView, error) {
	list, err := i.stageStore.List(spaceID, workflowID)
	if err != nil {
		return nil, err
	}
	result := make([]workflowapimodels.StageView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.StageConvert(rec))
	}
	return result, nil
}

// StageChangeOrder moves a stage to a new position and renumbers the
// rest, keeping order values dense and unique.
func (i impl) StageChangeOrder(spaceID, workflowID string, data workflowapimodels.StageOrderData) (hMsg string, err error) {
	list, err := i.stageStore.List(spaceID, workflowID)
	if err != nil {
		return "", err
	}
	moved := -1
	for k, rec := range list {
		if rec.ID == data.ID {
			moved = k
			break
		}
	}
	if moved == -1 {
		return "stage not found", nil
	}
	if data.NewOrder < 1 || data.NewOrder > len(list) {
		return "new order is out of range", nil
	}
	rec := list[moved]
	list = append(list[:moved], list[moved+1:]...)
	pos := data.NewOrder - 1
	list = append(list[:pos], append([]dbmodels.Stage{rec}, list[pos:]...)...)
	for k := range list {
		newOrder := k + 1
		if list[k].StageOrder == newOrder {
			continue
		}
		updMap := map[string]interface{}{
			"stage_order": newOrder,
		}
		if err = i.stageStore.Update(spaceID, workflowID, list[k].ID, updMap); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (i impl) StageSetActive(spaceID, workflowID, stageID string, isActive bool) error {
	updMap := map[string]interface{}{
		"is_active": isActive,
	}
	return i.stageStore.Update(spaceID, workflowID, stageID, updMap)
}

func (i impl) StageDelete(spaceID, workflowID, stageID string) (hMsg string, err error) {
	stage, err := i.stageStore.GetByID(spaceID, stageID)
	if err != nil {
		return "", err
	}
	if stage == nil || stage.WorkflowID != workflowID {
		return "stage not found", nil
	}
	workflow, err := i.store.GetByID(spaceID, workflowID)
	if err != nil {
		return "", err
	}
	if workflow != nil && workflow.IsActive() && stage.StageType == models.StageTypeSuccess {
		return "an active workflow requires a SUCCESS stage", nil
	}
	return "", i.stageStore.Delete(spaceID, workflowID, stageID)
}
