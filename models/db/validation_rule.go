package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"recruit-flow-backend/models"
)

type ValidationRule struct {
	BaseSpaceModel
	CustomFieldID     string                 `gorm:"type:varchar(36);index"`
	CustomField       *CustomField           `gorm:"foreignKey:CustomFieldID"`
	StageID           string                 `gorm:"type:varchar(36);index"`
	RuleType          models.RuleType        `gorm:"type:varchar(50)"`
	Operator          models.CompareOperator `gorm:"type:varchar(20)"`
	PositionFieldPath string                 `gorm:"type:varchar(255)"` // COMPARE_POSITION_FIELD only
	ComparisonValue   ComparisonValue        `gorm:"type:jsonb"`
	Severity          models.RuleSeverity    `gorm:"type:varchar(20)"`
	ValidationMessage string
	AutoReject        bool
	RejectionReason   string
	IsActive          bool `gorm:"default:true"`
}

// ComparisonValue is the closed sum of static comparands a rule may carry.
// Exactly one member is set, chosen by Kind and checked at definition time.
type ComparisonValue struct {
	Kind   ComparisonValueKind `json:"kind"`
	Scalar interface{}         `json:"scalar,omitempty"` // number, string or bool
	Min    *float64            `json:"min,omitempty"`
	Max    *float64            `json:"max,omitempty"`
	List   []interface{}       `json:"list,omitempty"`
}

type ComparisonValueKind string

const (
	ComparisonScalar ComparisonValueKind = "SCALAR"
	ComparisonRange  ComparisonValueKind = "RANGE"
	ComparisonList   ComparisonValueKind = "LIST"
	ComparisonNone   ComparisonValueKind = ""
)

func (j ComparisonValue) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ComparisonValue) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

func (j ComparisonValue) IsEmpty() bool {
	return j.Kind == ComparisonNone
}
