package transition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"recruit-flow-backend/models"
	applicantapimodels "recruit-flow-backend/models/api/applicant"
	dbmodels "recruit-flow-backend/models/db"
)

func makeStage(id string, order int, stageType models.StageType, isActive bool) dbmodels.Stage {
	return dbmodels.Stage{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
		},
		WorkflowID: "wf1",
		StageOrder: order,
		StageType:  stageType,
		IsActive:   isActive,
	}
}

func TestSuggestNext(t *testing.T) {
	stages := []dbmodels.Stage{
		makeStage("s1", 1, models.StageTypeInitial, true),
		makeStage("s2", 2, models.StageTypeStandard, true),
		makeStage("s3", 3, models.StageTypeStandard, false),
		makeStage("s4", 4, models.StageTypeSuccess, true),
	}

	t.Run("next active stage by order", func(t *testing.T) {
		next := SuggestNext(stages, stages[0])
		require.NotNil(t, next)
		require.Equal(t, "s2", next.ID)
	})

	t.Run("inactive stages are skipped", func(t *testing.T) {
		next := SuggestNext(stages, stages[1])
		require.NotNil(t, next)
		require.Equal(t, "s4", next.ID)
	})

	t.Run("no stage after the last one", func(t *testing.T) {
		require.Nil(t, SuggestNext(stages, stages[3]))
	})
}

func TestCheckTarget(t *testing.T) {
	phaseID := "ph1"
	workflow := dbmodels.Workflow{
		BaseSpaceModel: dbmodels.BaseSpaceModel{BaseModel: dbmodels.BaseModel{ID: "wf1"}},
		PhaseID:        &phaseID,
		Status:         models.WorkflowStatusActive,
	}
	current := makeStage("s1", 1, models.StageTypeInitial, true)
	app := dbmodels.CandidateApplication{
		PhaseID: phaseID,
		Status:  models.ApplicationStatusReviewing,
	}
	app.CurrentStageID = &current.ID

	t.Run("closed application cannot move", func(t *testing.T) {
		closed := app
		closed.Status = models.ApplicationStatusRejected
		err := CheckTarget(closed, &current, makeStage("s2", 2, models.StageTypeStandard, true), workflow)
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonTerminalApplication, invalid.Reason)
	})

	t.Run("target from another workflow is refused", func(t *testing.T) {
		target := makeStage("s9", 2, models.StageTypeStandard, true)
		target.WorkflowID = "wf2"
		err := CheckTarget(app, &current, target, workflow)
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonWrongWorkflow, invalid.Reason)
	})

	t.Run("inactive target is refused", func(t *testing.T) {
		err := CheckTarget(app, &current, makeStage("s3", 3, models.StageTypeStandard, false), workflow)
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonInactiveTarget, invalid.Reason)
	})

	t.Run("valid move passes", func(t *testing.T) {
		require.NoError(t, CheckTarget(app, &current, makeStage("s2", 2, models.StageTypeStandard, true), workflow))
	})

	t.Run("phase boundary requires the INITIAL stage", func(t *testing.T) {
		boundary := app
		boundary.CurrentStageID = nil
		err := CheckTarget(boundary, nil, makeStage("s2", 2, models.StageTypeStandard, true), workflow)
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonWrongWorkflow, invalid.Reason)

		require.NoError(t, CheckTarget(boundary, nil, makeStage("s1", 1, models.StageTypeInitial, true), workflow))
	})

	t.Run("phase boundary refuses a workflow of another phase", func(t *testing.T) {
		otherPhase := "ph2"
		otherWorkflow := workflow
		otherWorkflow.PhaseID = &otherPhase
		boundary := app
		boundary.CurrentStageID = nil
		err := CheckTarget(boundary, nil, makeStage("s1", 1, models.StageTypeInitial, true), otherWorkflow)
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonWrongWorkflow, invalid.Reason)
	})
}

func TestBuildStageEntry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	app := dbmodels.CandidateApplication{
		Status: models.ApplicationStatusReviewing,
	}

	t.Run("regular move resets the stage context", func(t *testing.T) {
		target := makeStage("s2", 2, models.StageTypeStandard, true)
		target.DeadlineDays = 3

		updMap, outcome := BuildStageEntry(app, target, now)

		require.Equal(t, applicantapimodels.OutcomeMoved, outcome)
		require.Equal(t, "s2", updMap["current_stage_id"])
		require.Equal(t, now, updMap["stage_entered_at"])
		require.Equal(t, now.AddDate(0, 0, 3), updMap["stage_deadline"])
		require.Equal(t, models.TaskStatusPending, updMap["task_status"])
		require.Nil(t, updMap["claimed_by"])
	})

	t.Run("no deadline when the stage has none", func(t *testing.T) {
		updMap, _ := BuildStageEntry(app, makeStage("s2", 2, models.StageTypeStandard, true), now)
		require.Nil(t, updMap["stage_deadline"])
	})

	t.Run("first move marks the application as reviewing", func(t *testing.T) {
		fresh := app
		fresh.Status = models.ApplicationStatusApplied
		updMap, _ := BuildStageEntry(fresh, makeStage("s2", 2, models.StageTypeStandard, true), now)
		require.Equal(t, models.ApplicationStatusReviewing, updMap["status"])
	})

	t.Run("terminal stage with next phase hands the application off", func(t *testing.T) {
		nextPhase := "ph2"
		target := makeStage("s4", 4, models.StageTypeSuccess, true)
		target.NextPhaseID = &nextPhase

		updMap, outcome := BuildStageEntry(app, target, now)

		require.Equal(t, applicantapimodels.OutcomePhaseHandoff, outcome)
		require.Equal(t, "ph2", updMap["phase_id"])
		require.Nil(t, updMap["current_stage_id"])
		require.Nil(t, updMap["stage_entered_at"])
		require.Nil(t, updMap["stage_deadline"])
	})

	t.Run("terminal stages without hand-off close the application", func(t *testing.T) {
		updMap, outcome := BuildStageEntry(app, makeStage("s4", 4, models.StageTypeSuccess, true), now)
		require.Equal(t, applicantapimodels.OutcomeMoved, outcome)
		require.Equal(t, models.ApplicationStatusAccepted, updMap["status"])
		require.Equal(t, models.TaskStatusCompleted, updMap["task_status"])

		updMap, _ = BuildStageEntry(app, makeStage("s5", 5, models.StageTypeFail, true), now)
		require.Equal(t, models.ApplicationStatusRejected, updMap["status"])
	})
}
