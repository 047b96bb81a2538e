package fieldapimodels

import (
	"github.com/pkg/errors"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type PropertiesData struct {
	FieldID    string                   `json:"field_id"`
	Properties dbmodels.FieldProperties `json:"properties"`
}

func (p PropertiesData) Validate() error {
	if p.FieldID == "" {
		return errors.New("field id is required")
	}
	return nil
}

type PropertiesView struct {
	StageID    string                   `json:"stage_id"`
	FieldID    string                   `json:"field_id"`
	Properties dbmodels.FieldProperties `json:"properties"`
	Configured bool                     `json:"configured"` // false when the global default applied
}

type VisibleFieldsRequest struct {
	Audience models.Audience `json:"audience"` // COMPANY/CANDIDATE
}

func (r VisibleFieldsRequest) Validate() error {
	if !r.Audience.IsValid() {
		return errors.New("unknown audience")
	}
	return nil
}
