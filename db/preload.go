package db

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

func InitPreload() {
	backfillDefaultWorkflows()
}

// backfillDefaultWorkflows creates the built-in candidate workflow for
// spaces that have a phase but no candidate workflow yet, so every
// tenant starts with a usable stage-set.
func backfillDefaultWorkflows() {
	phases := []dbmodels.Phase{}
	err := DB.
		Where("NOT EXISTS (SELECT 1 FROM workflows w WHERE w.space_id = phases.space_id AND w.workflow_type = ?)",
			models.WorkflowTypeCandidate).
		Find(&phases).Error
	if err != nil {
		log.WithError(err).Error("failed to backfill default workflows")
		return
	}
	seeded := map[string]bool{}
	for _, phase := range phases {
		if seeded[phase.SpaceID] {
			continue
		}
		seeded[phase.SpaceID] = true
		workflowID := uuid.New().String()
		rec := dbmodels.Workflow{
			BaseSpaceModel: dbmodels.BaseSpaceModel{
				BaseModel: dbmodels.BaseModel{ID: workflowID},
				SpaceID:   phase.SpaceID,
			},
			Name:         "Hiring pipeline",
			PhaseID:      &phase.ID,
			WorkflowType: models.WorkflowTypeCandidate,
			Status:       models.WorkflowStatusActive,
			IsDefault:    true,
		}
		if err = DB.Create(&rec).Error; err != nil {
			log.WithError(err).Error("failed to backfill default workflows")
			return
		}
		for _, stage := range defaultStageSet(phase.SpaceID, workflowID) {
			if err = DB.Create(&stage).Error; err != nil {
				log.WithError(err).Error("failed to backfill default workflows")
				return
			}
		}
	}
}

func defaultStageSet(spaceID, workflowID string) []dbmodels.Stage {
	mk := func(name string, order int, stageType models.StageType) dbmodels.Stage {
		return dbmodels.Stage{
			BaseSpaceModel: dbmodels.BaseSpaceModel{
				SpaceID: spaceID,
			},
			WorkflowID:    workflowID,
			Name:          name,
			StageOrder:    order,
			StageType:     stageType,
			IsActive:      true,
			KanbanDisplay: models.KanbanDisplayColumn,
		}
	}
	return []dbmodels.Stage{
		mk("Applied", 1, models.StageTypeInitial),
		mk("Screening", 2, models.StageTypeStandard),
		mk("Interview", 3, models.StageTypeStandard),
		mk("Offer", 4, models.StageTypeSuccess),
		mk("Rejected", 5, models.StageTypeFail),
	}
}
