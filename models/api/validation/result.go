package validationapimodels

import "github.com/pkg/errors"

type EvaluateRequest struct {
	ApplicationID   string                 `json:"application_id"`
	StageID         string                 `json:"stage_id"`
	CandidateValues map[string]interface{} `json:"candidate_values"` // keyed by field_key
	PositionValues  map[string]interface{} `json:"position_values"`
}

func (r EvaluateRequest) Validate() error {
	if r.StageID == "" {
		return errors.New("stage id is required")
	}
	return nil
}

// RuleFinding is one failed comparison, rendered from the rule's
// message template.
type RuleFinding struct {
	RuleID    string `json:"rule_id"`
	FieldKey  string `json:"field_key"`
	FieldName string `json:"field_name"`
	Message   string `json:"message"`
}

type ValidationResult struct {
	IsValid          bool          `json:"is_valid"`
	Errors           []RuleFinding `json:"errors"`
	Warnings         []RuleFinding `json:"warnings"`
	ShouldAutoReject bool          `json:"should_auto_reject"`
	AutoRejectReason string        `json:"auto_reject_reason,omitempty"`
}

func (r ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}
