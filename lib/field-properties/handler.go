package fieldproperties

import (
	"github.com/pkg/errors"
	"recruit-flow-backend/db"
	fieldstore "recruit-flow-backend/lib/field-catalog/store"
	stagestore "recruit-flow-backend/lib/workflow/stage-store"
	"recruit-flow-backend/models"
	fieldapimodels "recruit-flow-backend/models/api/field"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	ResolveProperties(spaceID, stageID, fieldID string) (fieldapimodels.PropertiesView, error)
	ResolveVisibleFields(spaceID, stageID string, audience models.Audience) ([]string, error)
	SetProperties(spaceID, stageID string, data fieldapimodels.PropertiesData) error
	// MissingRequiredFields returns field keys that the stage requires
	// but the supplied value snapshot leaves empty.
	MissingRequiredFields(spaceID string, stage dbmodels.Stage, candidateValues map[string]interface{}) ([]string, error)
}

var Instance Provider

// DefaultProperties is the resolver fallback for (stage, field) pairs
// with no explicit entry: visible to company staff, otherwise inert.
var DefaultProperties = dbmodels.FieldProperties{
	VisibleCompany:   true,
	VisibleCandidate: false,
	IsRequired:       false,
	IsEditable:       false,
}

func NewHandler() {
	Instance = NewResolver(stagestore.NewInstance(db.DB), fieldstore.NewInstance(db.DB), DefaultProperties)
}

// NewResolver builds a resolver with explicit defaults so scenarios can
// vary the fallback without touching package state.
func NewResolver(stageStore stagestore.Provider, fieldStore fieldstore.Provider, defaults dbmodels.FieldProperties) Provider {
	return impl{
		stageStore: stageStore,
		fieldStore: fieldStore,
		defaults:   defaults,
	}
}

type impl struct {
	stageStore stagestore.Provider
	fieldStore fieldstore.Provider
	defaults   dbmodels.FieldProperties
}

// ResolveProperties is total: unconfigured pairs resolve to the defaults.
func (i impl) ResolveProperties(spaceID, stageID, fieldID string) (fieldapimodels.PropertiesView, error) {
	stage, err := i.stageStore.GetByID(spaceID, stageID)
	if err != nil {
		return fieldapimodels.PropertiesView{}, err
	}
	if stage == nil {
		return fieldapimodels.PropertiesView{}, errors.New("stage not found")
	}
	view := fieldapimodels.PropertiesView{
		StageID:    stageID,
		FieldID:    fieldID,
		Properties: i.defaults,
	}
	if props, ok := stage.FieldPropertiesConfig[fieldID]; ok {
		view.Properties = props
		view.Configured = true
	}
	return view, nil
}

func (i impl) ResolveVisibleFields(spaceID, stageID string, audience models.Audience) ([]string, error) {
	stage, err := i.stageStore.GetByID(spaceID, stageID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, errors.New("stage not found")
	}
	fields, err := i.fieldStore.List(spaceID, models.EntityRef{Kind: models.EntityKindWorkflow, ID: stage.WorkflowID})
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(fields))
	for _, field := range fields {
		props, ok := stage.FieldPropertiesConfig[field.ID]
		if !ok {
			props = i.defaults
		}
		if props.VisibleFor(audience) {
			result = append(result, field.ID)
		}
	}
	return result, nil
}

// SetProperties replaces the field's entry in one write; readers never
// observe a partially updated property set.
func (i impl) SetProperties(spaceID, stageID string, data fieldapimodels.PropertiesData) error {
	stage, err := i.stageStore.GetByID(spaceID, stageID)
	if err != nil {
		return err
	}
	if stage == nil {
		return errors.New("stage not found")
	}
	field, err := i.fieldStore.GetByID(spaceID, data.FieldID)
	if err != nil {
		return err
	}
	if field == nil {
		return errors.New("field not found")
	}
	config := stage.FieldPropertiesConfig
	if config == nil {
		config = dbmodels.FieldPropertiesConfig{}
	}
	config[data.FieldID] = data.Properties
	return i.stageStore.SetFieldProperties(spaceID, stageID, config)
}

func (i impl) MissingRequiredFields(spaceID string, stage dbmodels.Stage, candidateValues map[string]interface{}) ([]string, error) {
	fields, err := i.fieldStore.List(spaceID, models.EntityRef{Kind: models.EntityKindWorkflow, ID: stage.WorkflowID})
	if err != nil {
		return nil, err
	}
	missing := []string{}
	for _, field := range fields {
		props, ok := stage.FieldPropertiesConfig[field.ID]
		if !ok {
			props = i.defaults
		}
		if !props.IsRequired {
			continue
		}
		if isEmptyValue(candidateValues[field.FieldKey]) {
			missing = append(missing, field.FieldKey)
		}
	}
	return missing, nil
}

func isEmptyValue(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	}
	return false
}
