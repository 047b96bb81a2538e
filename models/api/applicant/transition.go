package applicantapimodels

import (
	"github.com/pkg/errors"
	"recruit-flow-backend/models"
	validationapimodels "recruit-flow-backend/models/api/validation"
)

type TransitionRequest struct {
	TargetStageID   string                 `json:"target_stage_id"`
	Notes           string                 `json:"notes"`
	ProceedAnyway   bool                   `json:"proceed_anyway"` // accept warnings
	CandidateValues map[string]interface{} `json:"candidate_values"`
	PositionValues  map[string]interface{} `json:"position_values"`
}

func (r TransitionRequest) Validate() error {
	if r.TargetStageID == "" {
		return errors.New("target stage id is required")
	}
	return nil
}

type TransitionOutcome string

const (
	OutcomeMoved        TransitionOutcome = "MOVED"
	OutcomePhaseHandoff TransitionOutcome = "PHASE_HANDOFF"
	OutcomeAutoRejected TransitionOutcome = "AUTO_REJECTED"
)

type TransitionResult struct {
	Outcome     TransitionOutcome                     `json:"outcome"`
	Application ApplicationView                       `json:"application"`
	Validation  *validationapimodels.ValidationResult `json:"validation,omitempty"`
}

type SuggestedStage struct {
	StageID    string           `json:"stage_id"`
	Name       string           `json:"name"`
	StageOrder int              `json:"stage_order"`
	StageType  models.StageType `json:"stage_type"`
}
