package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

func makeRule(id, fieldKey, fieldName string) dbmodels.ValidationRule {
	return dbmodels.ValidationRule{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
		},
		CustomField: &dbmodels.CustomField{
			FieldKey:  fieldKey,
			FieldName: fieldName,
		},
		Severity: models.SeverityError,
		IsActive: true,
	}
}

func TestEvaluateRules(t *testing.T) {
	t.Run("salary below position budget fails with rendered message", func(t *testing.T) {
		rule := makeRule("r1", "expected_salary", "Expected salary")
		rule.RuleType = models.RuleTypeComparePositionField
		rule.Operator = models.OperatorLTE
		rule.PositionFieldPath = "budget.max_salary"
		rule.ValidationMessage = "{{field_name}} {{candidate_value}} exceeds the budget {{target_value}}"

		result := EvaluateRules([]dbmodels.ValidationRule{rule},
			map[string]interface{}{"expected_salary": float64(120000)},
			map[string]interface{}{"budget": map[string]interface{}{"max_salary": float64(100000)}})

		require.False(t, result.IsValid)
		require.Len(t, result.Errors, 1)
		require.Empty(t, result.Warnings)
		require.Equal(t, "r1", result.Errors[0].RuleID)
		require.Equal(t, "Expected salary 120000 exceeds the budget 100000", result.Errors[0].Message)
	})

	t.Run("satisfied rule produces no findings", func(t *testing.T) {
		rule := makeRule("r1", "expected_salary", "Expected salary")
		rule.RuleType = models.RuleTypeComparePositionField
		rule.Operator = models.OperatorLTE
		rule.PositionFieldPath = "budget.max_salary"

		result := EvaluateRules([]dbmodels.ValidationRule{rule},
			map[string]interface{}{"expected_salary": float64(90000)},
			map[string]interface{}{"budget": map[string]interface{}{"max_salary": float64(100000)}})

		require.True(t, result.IsValid)
		require.Empty(t, result.Errors)
	})

	t.Run("missing position path skips the rule", func(t *testing.T) {
		rule := makeRule("r1", "expected_salary", "Expected salary")
		rule.RuleType = models.RuleTypeComparePositionField
		rule.Operator = models.OperatorLTE
		rule.PositionFieldPath = "budget.max_salary"

		result := EvaluateRules([]dbmodels.ValidationRule{rule},
			map[string]interface{}{"expected_salary": float64(120000)},
			map[string]interface{}{})

		require.True(t, result.IsValid)
		require.Empty(t, result.Errors)
		require.Empty(t, result.Warnings)
	})

	t.Run("warning severity does not block validity", func(t *testing.T) {
		rule := makeRule("r1", "years_experience", "Years of experience")
		rule.RuleType = models.RuleTypeRange
		rule.Operator = models.OperatorGTE
		rule.Severity = models.SeverityWarning
		rule.ComparisonValue = dbmodels.ComparisonValue{
			Kind:   dbmodels.ComparisonScalar,
			Scalar: float64(3),
		}

		result := EvaluateRules([]dbmodels.ValidationRule{rule},
			map[string]interface{}{"years_experience": float64(1)}, nil)

		require.True(t, result.IsValid)
		require.Len(t, result.Warnings, 1)
		require.Empty(t, result.Errors)
	})

	t.Run("auto reject wins even on warning severity", func(t *testing.T) {
		rule := makeRule("r1", "work_permit", "Work permit")
		rule.RuleType = models.RuleTypeCustom
		rule.Operator = models.OperatorEQ
		rule.Severity = models.SeverityWarning
		rule.AutoReject = true
		rule.RejectionReason = "no work permit"
		rule.ComparisonValue = dbmodels.ComparisonValue{
			Kind:   dbmodels.ComparisonScalar,
			Scalar: float64(1),
		}

		result := EvaluateRules([]dbmodels.ValidationRule{rule},
			map[string]interface{}{"work_permit": float64(0)}, nil)

		require.False(t, result.IsValid)
		require.True(t, result.ShouldAutoReject)
		require.Equal(t, "no work permit", result.AutoRejectReason)
	})

	t.Run("first failing auto reject reason wins", func(t *testing.T) {
		first := makeRule("r1", "field_a", "Field A")
		first.RuleType = models.RuleTypeCustom
		first.Operator = models.OperatorEQ
		first.AutoReject = true
		first.RejectionReason = "first reason"
		first.ComparisonValue = dbmodels.ComparisonValue{Kind: dbmodels.ComparisonScalar, Scalar: float64(1)}

		second := makeRule("r2", "field_b", "Field B")
		second.RuleType = models.RuleTypeCustom
		second.Operator = models.OperatorEQ
		second.AutoReject = true
		second.RejectionReason = "second reason"
		second.ComparisonValue = dbmodels.ComparisonValue{Kind: dbmodels.ComparisonScalar, Scalar: float64(1)}

		values := map[string]interface{}{"field_a": float64(0), "field_b": float64(0)}
		result := EvaluateRules([]dbmodels.ValidationRule{first, second}, values, nil)

		require.True(t, result.ShouldAutoReject)
		require.Equal(t, "first reason", result.AutoRejectReason)
		require.Len(t, result.Errors, 2)
	})

	t.Run("inactive rules are skipped", func(t *testing.T) {
		rule := makeRule("r1", "field_a", "Field A")
		rule.RuleType = models.RuleTypeCustom
		rule.Operator = models.OperatorEQ
		rule.IsActive = false
		rule.ComparisonValue = dbmodels.ComparisonValue{Kind: dbmodels.ComparisonScalar, Scalar: float64(1)}

		result := EvaluateRules([]dbmodels.ValidationRule{rule},
			map[string]interface{}{"field_a": float64(0)}, nil)

		require.True(t, result.IsValid)
	})

	t.Run("evaluation is deterministic", func(t *testing.T) {
		rule := makeRule("r1", "expected_salary", "Expected salary")
		rule.RuleType = models.RuleTypeRange
		rule.Operator = models.OperatorInRange
		min, max := float64(50000), float64(100000)
		rule.ComparisonValue = dbmodels.ComparisonValue{Kind: dbmodels.ComparisonRange, Min: &min, Max: &max}

		values := map[string]interface{}{"expected_salary": float64(120000)}
		first := EvaluateRules([]dbmodels.ValidationRule{rule}, values, nil)
		for i := 0; i < 10; i++ {
			require.Equal(t, first, EvaluateRules([]dbmodels.ValidationRule{rule}, values, nil))
		}
	})
}

func TestComparePair(t *testing.T) {
	t.Run("numeric strings are coerced", func(t *testing.T) {
		require.True(t, comparePair(models.OperatorGT, "10", float64(5)))
		require.True(t, comparePair(models.OperatorEQ, "5", float64(5)))
	})

	t.Run("dates compare by timeline order", func(t *testing.T) {
		require.True(t, comparePair(models.OperatorLT, "2024-01-01", "2025-06-15"))
		require.True(t, comparePair(models.OperatorGT, "2025-06-15T10:00:00Z", "2024-01-01"))
	})

	t.Run("non coercible operands fail the comparison", func(t *testing.T) {
		require.False(t, comparePair(models.OperatorEQ, "abc", float64(5)))
		require.False(t, comparePair(models.OperatorNEQ, "abc", float64(5)))
		require.False(t, comparePair(models.OperatorGT, nil, float64(5)))
	})
}

func TestCompareRange(t *testing.T) {
	require.True(t, compareRange(models.OperatorInRange, float64(7), float64(5), float64(10)))
	require.True(t, compareRange(models.OperatorInRange, float64(5), float64(5), float64(10)))
	require.False(t, compareRange(models.OperatorInRange, float64(11), float64(5), float64(10)))
	require.True(t, compareRange(models.OperatorOutRange, float64(11), float64(5), float64(10)))
	require.False(t, compareRange(models.OperatorInRange, "abc", float64(5), float64(10)))
}

func TestCompareContains(t *testing.T) {
	t.Run("array candidate", func(t *testing.T) {
		skills := []interface{}{"go", "sql"}
		require.True(t, compareContains(models.OperatorContains, skills, "go"))
		require.False(t, compareContains(models.OperatorContains, skills, "rust"))
		require.True(t, compareContains(models.OperatorNotContains, skills, "rust"))
	})

	t.Run("string candidate uses substring match", func(t *testing.T) {
		require.True(t, compareContains(models.OperatorContains, "golang developer", "go"))
		require.False(t, compareContains(models.OperatorContains, "java developer", "go"))
	})

	t.Run("scalar candidate fails", func(t *testing.T) {
		require.False(t, compareContains(models.OperatorContains, float64(5), "5"))
	})
}

func TestResolvePath(t *testing.T) {
	values := map[string]interface{}{
		"budget": map[string]interface{}{
			"max_salary": float64(100000),
		},
	}
	v, ok := resolvePath(values, "budget.max_salary")
	require.True(t, ok)
	require.Equal(t, float64(100000), v)

	_, ok = resolvePath(values, "budget.missing")
	require.False(t, ok)

	_, ok = resolvePath(values, "budget.max_salary.deeper")
	require.False(t, ok)

	_, ok = resolvePath(values, "")
	require.False(t, ok)
}
