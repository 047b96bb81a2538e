package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/lib/pq"
	"recruit-flow-backend/models"
)

type Stage struct {
	BaseSpaceModel
	WorkflowID            string           `gorm:"type:varchar(36);index"`
	Name                  string           `gorm:"type:varchar(255)"`
	StageOrder            int              `gorm:"index"`
	StageType             models.StageType `gorm:"type:varchar(20)"`
	IsActive              bool             `gorm:"default:true"`
	AllowSkip             bool
	EstimatedDurationDays int
	DeadlineDays          int
	DefaultRoleIDs        pq.StringArray        `gorm:"type:text[]"`
	NextPhaseID           *string               `gorm:"type:varchar(36)"` // terminal stages only
	KanbanDisplay         models.KanbanDisplay  `gorm:"type:varchar(20)"`
	Style                 StageStyle            `gorm:"type:jsonb"`
	FieldPropertiesConfig FieldPropertiesConfig `gorm:"type:jsonb"`
}

type StageStyle struct {
	Icon            string `json:"icon"`
	Color           string `json:"color"`
	BackgroundColor string `json:"background_color"`
}

func (j StageStyle) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *StageStyle) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// FieldProperties controls visibility and editability of a custom field
// within one stage, per audience.
type FieldProperties struct {
	VisibleCompany   bool `json:"visible_company"`
	VisibleCandidate bool `json:"visible_candidate"`
	IsRequired       bool `json:"is_required"`
	IsEditable       bool `json:"is_editable"`
}

func (p FieldProperties) VisibleFor(audience models.Audience) bool {
	if audience == models.AudienceCandidate {
		return p.VisibleCandidate
	}
	return p.VisibleCompany
}

// FieldPropertiesConfig maps custom field IDs to their per-stage properties.
type FieldPropertiesConfig map[string]FieldProperties

func (j FieldPropertiesConfig) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *FieldPropertiesConfig) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
