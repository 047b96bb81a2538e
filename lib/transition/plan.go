package transition

import (
	"time"

	"recruit-flow-backend/models"
	applicantapimodels "recruit-flow-backend/models/api/applicant"
	dbmodels "recruit-flow-backend/models/db"
)

// SuggestNext picks the active stage with the smallest order above the
// current one. The result is a suggestion for the caller's UI, never
// applied on its own.
func SuggestNext(stages []dbmodels.Stage, current dbmodels.Stage) *dbmodels.Stage {
	var best *dbmodels.Stage
	for k := range stages {
		candidate := stages[k]
		if !candidate.IsActive || candidate.StageOrder <= current.StageOrder {
			continue
		}
		if best == nil || candidate.StageOrder < best.StageOrder {
			best = &stages[k]
		}
	}
	return best
}

// CheckTarget verifies the structural legality of moving the
// application onto the target stage: the application must still be
// open, the target must sit in the right workflow and be active.
// When the application has no current stage (a phase boundary), the
// target must be the INITIAL stage of a workflow of the current phase.
func CheckTarget(app dbmodels.CandidateApplication, current *dbmodels.Stage, target dbmodels.Stage, targetWorkflow dbmodels.Workflow) error {
	if app.Status.IsTerminal() {
		return models.NewInvalidTransition(models.ReasonTerminalApplication, "application is closed")
	}
	if current != nil {
		if target.WorkflowID != current.WorkflowID {
			return models.NewInvalidTransition(models.ReasonWrongWorkflow, "target stage belongs to another workflow")
		}
	} else {
		if targetWorkflow.PhaseID == nil || *targetWorkflow.PhaseID != app.PhaseID {
			return models.NewInvalidTransition(models.ReasonWrongWorkflow, "target workflow does not serve the application's phase")
		}
		if target.StageType != models.StageTypeInitial {
			return models.NewInvalidTransition(models.ReasonWrongWorkflow, "a phase must be entered through its INITIAL stage")
		}
	}
	if !target.IsActive {
		return models.NewInvalidTransition(models.ReasonInactiveTarget, "target stage is inactive")
	}
	return nil
}

// BuildStageEntry computes the application update for entering the
// target stage. Entering a SUCCESS/FAIL stage with a next phase hands
// the application off: the phase changes and the stage context resets,
// because the next phase's workflow is chosen by a separate action.
func BuildStageEntry(app dbmodels.CandidateApplication, target dbmodels.Stage, now time.Time) (map[string]interface{}, applicantapimodels.TransitionOutcome) {
	updMap := map[string]interface{}{
		"current_stage_id": target.ID,
		"stage_entered_at": now,
		"task_status":      models.TaskStatusPending,
		"claimed_by":       nil,
	}
	if target.DeadlineDays > 0 {
		updMap["stage_deadline"] = now.AddDate(0, 0, target.DeadlineDays)
	} else {
		updMap["stage_deadline"] = nil
	}
	if app.Status == models.ApplicationStatusApplied {
		updMap["status"] = models.ApplicationStatusReviewing
	}

	if target.StageType.IsTerminal() && target.NextPhaseID != nil {
		updMap["phase_id"] = *target.NextPhaseID
		updMap["current_stage_id"] = nil
		updMap["stage_entered_at"] = nil
		updMap["stage_deadline"] = nil
		return updMap, applicantapimodels.OutcomePhaseHandoff
	}
	// terminal stage without a hand-off closes the application
	if target.StageType == models.StageTypeSuccess {
		updMap["status"] = models.ApplicationStatusAccepted
		updMap["task_status"] = models.TaskStatusCompleted
	}
	if target.StageType == models.StageTypeFail {
		updMap["status"] = models.ApplicationStatusRejected
		updMap["task_status"] = models.TaskStatusCompleted
	}
	return updMap, applicantapimodels.OutcomeMoved
}
