package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"recruit-flow-backend/models"
)

type CustomField struct {
	BaseSpaceModel
	EntityKind  models.EntityKind `gorm:"type:varchar(20);index:idx_field_owner"`
	EntityID    string            `gorm:"type:varchar(36);index:idx_field_owner"`
	FieldKey    string            `gorm:"type:varchar(100)"` // immutable once created
	FieldName   string            `gorm:"type:varchar(255)"`
	FieldType   models.FieldType  `gorm:"type:varchar(20)"`
	FieldConfig FieldConfig       `gorm:"type:jsonb"`
	OrderIndex  int
}

func (f CustomField) EntityRef() models.EntityRef {
	return models.EntityRef{Kind: f.EntityKind, ID: f.EntityID}
}

// FieldConfig holds the type-specific part of a custom field definition.
// Which members are meaningful depends on CustomField.FieldType.
type FieldConfig struct {
	Min               *float64      `json:"min,omitempty"`
	Max               *float64      `json:"max,omitempty"`
	Options           []FieldOption `json:"options,omitempty"`
	AllowedExtensions []string      `json:"allowed_extensions,omitempty"`
	MaxSizeMB         int64         `json:"max_size_mb,omitempty"`
	CurrencyCode      string        `json:"currency_code,omitempty"`
}

type FieldOption struct {
	Value  string            `json:"value"`
	Labels map[string]string `json:"labels"` // language code -> label
}

func (j FieldConfig) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *FieldConfig) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
