package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"recruit-flow-backend/models"
)

// coerceOrdered maps a value onto a comparable float64. Numbers come
// through as-is, numeric strings are parsed, dates (RFC3339 or
// YYYY-MM-DD strings, time.Time values) become unix seconds.
func coerceOrdered(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case time.Time:
		return float64(v.Unix()), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return float64(t.Unix()), true
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return float64(t.Unix()), true
		}
		return 0, false
	}
	return 0, false
}

// comparePair applies an ordered operator to two coerced operands.
// Pairs that cannot be coerced count as a failed comparison, never as
// a runtime error.
func comparePair(op models.CompareOperator, candidate, comparand interface{}) bool {
	left, okLeft := coerceOrdered(candidate)
	right, okRight := coerceOrdered(comparand)
	if !okLeft || !okRight {
		return false
	}
	switch op {
	case models.OperatorGT:
		return left > right
	case models.OperatorGTE:
		return left >= right
	case models.OperatorLT:
		return left < right
	case models.OperatorLTE:
		return left <= right
	case models.OperatorEQ:
		return left == right
	case models.OperatorNEQ:
		return left != right
	}
	return false
}

// compareRange checks IN_RANGE/OUT_RANGE against a [min,max] comparand.
func compareRange(op models.CompareOperator, candidate interface{}, min, max interface{}) bool {
	left, okLeft := coerceOrdered(candidate)
	lo, okLo := coerceOrdered(min)
	hi, okHi := coerceOrdered(max)
	if !okLeft || !okLo || !okHi {
		return false
	}
	inRange := left >= lo && left <= hi
	if op == models.OperatorOutRange {
		return !inRange
	}
	return inRange
}

// compareContains handles CONTAINS/NOT_CONTAINS for array and string
// candidate values.
func compareContains(op models.CompareOperator, candidate, comparand interface{}) bool {
	var contains bool
	switch v := candidate.(type) {
	case []interface{}:
		needle := valueString(comparand)
		for _, item := range v {
			if valueString(item) == needle {
				contains = true
				break
			}
		}
	case []string:
		needle := valueString(comparand)
		for _, item := range v {
			if item == needle {
				contains = true
				break
			}
		}
	case string:
		contains = strings.Contains(v, valueString(comparand))
	default:
		return false
	}
	if op == models.OperatorNotContains {
		return !contains
	}
	return contains
}

func valueString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", value)
}

// resolvePath walks a dot-path through nested maps. The second return
// is false when any segment is missing.
func resolvePath(values map[string]interface{}, path string) (interface{}, bool) {
	if path == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	var current interface{} = values
	for _, segment := range segments {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// renderMessage substitutes the supported template placeholders.
func renderMessage(template, fieldName string, candidateValue, targetValue interface{}) string {
	msg := strings.ReplaceAll(template, "{{field_name}}", fieldName)
	msg = strings.ReplaceAll(msg, "{{candidate_value}}", valueString(candidateValue))
	msg = strings.ReplaceAll(msg, "{{target_value}}", valueString(targetValue))
	return msg
}
