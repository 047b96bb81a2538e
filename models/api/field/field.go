package fieldapimodels

import (
	"github.com/pkg/errors"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type FieldData struct {
	Entity      models.EntityRef     `json:"entity"`     // Owning entity (polymorphic)
	FieldKey    string               `json:"field_key"`  // Immutable identifier, lowercase snake_case
	FieldName   string               `json:"field_name"` // Display name
	FieldType   models.FieldType     `json:"field_type"`
	FieldConfig dbmodels.FieldConfig `json:"field_config"` // Type-specific configuration
	OrderIndex  int                  `json:"order_index"`
}

func (f FieldData) Validate() error {
	if !f.Entity.Kind.IsValid() {
		return errors.New("unknown entity kind")
	}
	if f.Entity.ID == "" {
		return errors.New("entity id is required")
	}
	if f.FieldKey == "" {
		return errors.New("field key is required")
	}
	if f.FieldName == "" {
		return errors.New("field name is required")
	}
	if !f.FieldType.IsValid() {
		return errors.New("unknown field type")
	}
	return nil
}

type FieldUpdateData struct {
	FieldName   string               `json:"field_name"`
	FieldConfig dbmodels.FieldConfig `json:"field_config"`
}

type FieldView struct {
	ID          string               `json:"id"`
	Entity      models.EntityRef     `json:"entity"`
	FieldKey    string               `json:"field_key"`
	FieldName   string               `json:"field_name"`
	FieldType   models.FieldType     `json:"field_type"`
	FieldConfig dbmodels.FieldConfig `json:"field_config"`
	OrderIndex  int                  `json:"order_index"`
}

type FieldOrderData struct {
	ID       string `json:"id"`        // Field ID
	NewOrder int    `json:"new_order"` // New position within the owning entity
}

func FieldConvert(rec dbmodels.CustomField) FieldView {
	return FieldView{
		ID:          rec.ID,
		Entity:      rec.EntityRef(),
		FieldKey:    rec.FieldKey,
		FieldName:   rec.FieldName,
		FieldType:   rec.FieldType,
		FieldConfig: rec.FieldConfig,
		OrderIndex:  rec.OrderIndex,
	}
}
