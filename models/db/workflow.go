package dbmodels

import "recruit-flow-backend/models"

type Workflow struct {
	BaseSpaceModel
	Name         string                `gorm:"type:varchar(255)"`
	PhaseID      *string               `gorm:"type:varchar(36);index"`
	Phase        *Phase                `gorm:"foreignKey:PhaseID"`
	WorkflowType models.WorkflowType   `gorm:"type:varchar(10)"`
	Status       models.WorkflowStatus `gorm:"type:varchar(20)"`
	IsDefault    bool
	Stages       []Stage `gorm:"foreignKey:WorkflowID"`
}

func (w Workflow) IsActive() bool {
	return w.Status == models.WorkflowStatusActive
}

// CheckStageSet verifies the workflow stage-set invariants over the
// supplied stages: at most one INITIAL, at most one SUCCESS, exactly one
// INITIAL once any STANDARD stage exists, at least one SUCCESS stage,
// and dense unique order values.
func CheckStageSet(stages []Stage) error {
	var initial, standard, success int
	seenOrder := map[int]bool{}
	for _, s := range stages {
		switch s.StageType {
		case models.StageTypeInitial:
			initial++
		case models.StageTypeStandard:
			standard++
		case models.StageTypeSuccess:
			success++
		}
		if seenOrder[s.StageOrder] {
			return models.NewConfigurationError("duplicate stage order %d", s.StageOrder)
		}
		seenOrder[s.StageOrder] = true
	}
	if initial > 1 {
		return models.NewConfigurationError("workflow has %d INITIAL stages, at most one allowed", initial)
	}
	if success > 1 {
		return models.NewConfigurationError("workflow has %d SUCCESS stages, at most one allowed", success)
	}
	if standard > 0 && initial != 1 {
		return models.NewConfigurationError("workflow with STANDARD stages requires exactly one INITIAL stage")
	}
	if success < 1 {
		return models.NewConfigurationError("workflow requires a SUCCESS stage")
	}
	return nil
}
