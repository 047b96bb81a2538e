package validationapimodels

import (
	"github.com/pkg/errors"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type RuleData struct {
	CustomFieldID     string                   `json:"custom_field_id"`
	StageID           string                   `json:"stage_id"`
	RuleType          models.RuleType          `json:"rule_type"`
	Operator          models.CompareOperator   `json:"comparison_operator"`
	PositionFieldPath string                   `json:"position_field_path"` // dot-path into position data
	ComparisonValue   dbmodels.ComparisonValue `json:"comparison_value"`
	Severity          models.RuleSeverity      `json:"severity"`
	ValidationMessage string                   `json:"validation_message"`
	AutoReject        bool                     `json:"auto_reject"`
	RejectionReason   string                   `json:"rejection_reason"`
	IsActive          bool                     `json:"is_active"`
}

// Validate covers request shape only; rule parameter cross-checks
// happen in the rule handler at definition time.
func (r RuleData) Validate() error {
	if r.CustomFieldID == "" {
		return errors.New("custom field id is required")
	}
	if r.StageID == "" {
		return errors.New("stage id is required")
	}
	if !r.RuleType.IsValid() {
		return errors.New("unknown rule type")
	}
	if !r.Operator.IsValid() {
		return errors.New("unknown comparison operator")
	}
	if !r.Severity.IsValid() {
		return errors.New("unknown severity")
	}
	return nil
}

type RuleView struct {
	ID                string                   `json:"id"`
	CustomFieldID     string                   `json:"custom_field_id"`
	StageID           string                   `json:"stage_id"`
	RuleType          models.RuleType          `json:"rule_type"`
	Operator          models.CompareOperator   `json:"comparison_operator"`
	PositionFieldPath string                   `json:"position_field_path,omitempty"`
	ComparisonValue   dbmodels.ComparisonValue `json:"comparison_value"`
	Severity          models.RuleSeverity      `json:"severity"`
	ValidationMessage string                   `json:"validation_message"`
	AutoReject        bool                     `json:"auto_reject"`
	RejectionReason   string                   `json:"rejection_reason,omitempty"`
	IsActive          bool                     `json:"is_active"`
}

func RuleConvert(rec dbmodels.ValidationRule) RuleView {
	return RuleView{
		ID:                rec.ID,
		CustomFieldID:     rec.CustomFieldID,
		StageID:           rec.StageID,
		RuleType:          rec.RuleType,
		Operator:          rec.Operator,
		PositionFieldPath: rec.PositionFieldPath,
		ComparisonValue:   rec.ComparisonValue,
		Severity:          rec.Severity,
		ValidationMessage: rec.ValidationMessage,
		AutoReject:        rec.AutoReject,
		RejectionReason:   rec.RejectionReason,
		IsActive:          rec.IsActive,
	}
}
