package task

import (
	"time"

	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

const maxPriorityScore = 150

// PriorityScore derives the 0-150 work-queue score of an application
// sitting in a stage. Components: deadline urgency (0-60), stage weight
// within the workflow (0-40) and age in stage (0-50), capped at 150.
// The score is computed on read against the supplied clock.
func PriorityScore(app dbmodels.CandidateApplication, stage dbmodels.Stage, workflowStages []dbmodels.Stage, now time.Time) int {
	score := urgencyScore(app, now) + stageWeight(stage, workflowStages) + ageScore(app, now)
	if score > maxPriorityScore {
		return maxPriorityScore
	}
	return score
}

// urgencyScore grows as the stage deadline approaches; overdue tasks
// get the full component.
func urgencyScore(app dbmodels.CandidateApplication, now time.Time) int {
	if app.StageDeadline == nil {
		return 0
	}
	left := app.StageDeadline.Sub(now)
	switch {
	case left <= 0:
		return 60
	case left <= 24*time.Hour:
		return 50
	case left <= 72*time.Hour:
		return 40
	case left <= 7*24*time.Hour:
		return 25
	default:
		return 10
	}
}

// stageWeight favours stages close to the end of the pipeline; terminal
// stages take the full component.
func stageWeight(stage dbmodels.Stage, workflowStages []dbmodels.Stage) int {
	if stage.StageType.IsTerminal() {
		return 40
	}
	maxOrder := 0
	for _, s := range workflowStages {
		if s.StageOrder > maxOrder {
			maxOrder = s.StageOrder
		}
	}
	if maxOrder <= 1 {
		return 0
	}
	return 40 * stage.StageOrder / maxOrder
}

// ageScore adds five points per full day in stage, capped at 50.
func ageScore(app dbmodels.CandidateApplication, now time.Time) int {
	days := int(app.AgeInStage(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	score := days * 5
	if score > 50 {
		return 50
	}
	return score
}

// PriorityLevel buckets a score into the coarse level callers sort by.
func PriorityLevel(score int) models.PriorityLevel {
	switch {
	case score >= 110:
		return models.PriorityCritical
	case score >= 70:
		return models.PriorityHigh
	case score >= 30:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// levelRank orders levels for min-priority filtering.
func levelRank(level models.PriorityLevel) int {
	switch level {
	case models.PriorityCritical:
		return 3
	case models.PriorityHigh:
		return 2
	case models.PriorityMedium:
		return 1
	}
	return 0
}
