package validation

import (
	"recruit-flow-backend/models"
	validationapimodels "recruit-flow-backend/models/api/validation"
	dbmodels "recruit-flow-backend/models/db"
)

// EvaluateRules runs every supplied rule against the value snapshots.
// It is a pure function: identical inputs always produce an identical
// result, and nothing is persisted here.
func EvaluateRules(rules []dbmodels.ValidationRule, candidateValues, positionValues map[string]interface{}) validationapimodels.ValidationResult {
	result := validationapimodels.ValidationResult{
		Errors:   []validationapimodels.RuleFinding{},
		Warnings: []validationapimodels.RuleFinding{},
	}
	for _, rule := range rules {
		if !rule.IsActive || rule.CustomField == nil {
			continue
		}
		fieldKey := rule.CustomField.FieldKey
		fieldName := rule.CustomField.FieldName
		candidateValue := candidateValues[fieldKey]

		comparand, ok := resolveComparand(rule, positionValues)
		if !ok {
			// missing position path: rule is skipped, not failed
			continue
		}

		if applyRule(rule, candidateValue, comparand) {
			continue
		}

		finding := validationapimodels.RuleFinding{
			RuleID:    rule.ID,
			FieldKey:  fieldKey,
			FieldName: fieldName,
			Message:   renderMessage(rule.ValidationMessage, fieldName, candidateValue, comparand.display),
		}
		if rule.Severity == models.SeverityWarning {
			result.Warnings = append(result.Warnings, finding)
		} else {
			result.Errors = append(result.Errors, finding)
		}
		// first failing auto-reject rule wins; later reasons are dropped
		if rule.AutoReject && !result.ShouldAutoReject {
			result.ShouldAutoReject = true
			result.AutoRejectReason = rule.RejectionReason
		}
	}
	result.IsValid = len(result.Errors) == 0 && !result.ShouldAutoReject
	return result
}

// comparand is the resolved right-hand side of a rule.
type comparand struct {
	scalar  interface{}
	min     interface{}
	max     interface{}
	isRange bool
	display interface{} // value substituted into {{target_value}}
}

func resolveComparand(rule dbmodels.ValidationRule, positionValues map[string]interface{}) (comparand, bool) {
	if rule.RuleType == models.RuleTypeComparePositionField {
		value, ok := resolvePath(positionValues, rule.PositionFieldPath)
		if !ok {
			return comparand{}, false
		}
		if rule.Operator.IsRange() {
			pair, ok := value.([]interface{})
			if !ok || len(pair) != 2 {
				return comparand{display: value}, true
			}
			return comparand{min: pair[0], max: pair[1], isRange: true, display: value}, true
		}
		return comparand{scalar: value, display: value}, true
	}

	cv := rule.ComparisonValue
	switch cv.Kind {
	case dbmodels.ComparisonRange:
		var min, max interface{}
		if cv.Min != nil {
			min = *cv.Min
		}
		if cv.Max != nil {
			max = *cv.Max
		}
		return comparand{min: min, max: max, isRange: true, display: []interface{}{min, max}}, true
	case dbmodels.ComparisonList:
		if len(cv.List) == 2 && rule.Operator.IsRange() {
			return comparand{min: cv.List[0], max: cv.List[1], isRange: true, display: cv.List}, true
		}
		return comparand{scalar: cv.List, display: cv.List}, true
	default:
		return comparand{scalar: cv.Scalar, display: cv.Scalar}, true
	}
}

// applyRule reports whether the candidate value satisfies the rule.
func applyRule(rule dbmodels.ValidationRule, candidateValue interface{}, cmp comparand) bool {
	switch {
	case rule.Operator.IsRange():
		if !cmp.isRange {
			return false
		}
		return compareRange(rule.Operator, candidateValue, cmp.min, cmp.max)
	case rule.Operator == models.OperatorContains || rule.Operator == models.OperatorNotContains:
		return compareContains(rule.Operator, candidateValue, cmp.scalar)
	default:
		return comparePair(rule.Operator, candidateValue, cmp.scalar)
	}
}
