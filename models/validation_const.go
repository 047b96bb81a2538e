package models

type RuleType string

const (
	RuleTypeComparePositionField RuleType = "COMPARE_POSITION_FIELD"
	RuleTypeRange                RuleType = "RANGE"
	RuleTypePattern              RuleType = "PATTERN"
	RuleTypeCustom               RuleType = "CUSTOM"
)

func (t RuleType) IsValid() bool {
	switch t {
	case RuleTypeComparePositionField, RuleTypeRange, RuleTypePattern, RuleTypeCustom:
		return true
	}
	return false
}

type CompareOperator string

const (
	OperatorGT          CompareOperator = "GT"
	OperatorGTE         CompareOperator = "GTE"
	OperatorLT          CompareOperator = "LT"
	OperatorLTE         CompareOperator = "LTE"
	OperatorEQ          CompareOperator = "EQ"
	OperatorNEQ         CompareOperator = "NEQ"
	OperatorInRange     CompareOperator = "IN_RANGE"
	OperatorOutRange    CompareOperator = "OUT_RANGE"
	OperatorContains    CompareOperator = "CONTAINS"
	OperatorNotContains CompareOperator = "NOT_CONTAINS"
)

func (o CompareOperator) IsValid() bool {
	switch o {
	case OperatorGT, OperatorGTE, OperatorLT, OperatorLTE, OperatorEQ, OperatorNEQ,
		OperatorInRange, OperatorOutRange, OperatorContains, OperatorNotContains:
		return true
	}
	return false
}

// IsNumeric reports whether the operator compares two ordered scalar operands.
func (o CompareOperator) IsNumeric() bool {
	switch o {
	case OperatorGT, OperatorGTE, OperatorLT, OperatorLTE, OperatorEQ, OperatorNEQ:
		return true
	}
	return false
}

// IsRange reports whether the operator expects a [min,max] comparand.
func (o CompareOperator) IsRange() bool {
	return o == OperatorInRange || o == OperatorOutRange
}

type RuleSeverity string

const (
	SeverityWarning RuleSeverity = "WARNING"
	SeverityError   RuleSeverity = "ERROR"
)

func (s RuleSeverity) IsValid() bool {
	return s == SeverityWarning || s == SeverityError
}
