package fieldcatalog

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"recruit-flow-backend/db"
	fieldstore "recruit-flow-backend/lib/field-catalog/store"
	rulestore "recruit-flow-backend/lib/validation/rule-store"
	stagestore "recruit-flow-backend/lib/workflow/stage-store"
	"recruit-flow-backend/models"
	fieldapimodels "recruit-flow-backend/models/api/field"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	DefineField(spaceID string, data fieldapimodels.FieldData) (id string, err error)
	UpdateField(spaceID, id string, data fieldapimodels.FieldUpdateData) error
	ListFields(spaceID string, entity models.EntityRef) ([]fieldapimodels.FieldView, error)
	ReorderField(spaceID string, data fieldapimodels.FieldOrderData) (hMsg string, err error)
	DeleteField(spaceID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      fieldstore.NewInstance(db.DB),
		ruleStore:  rulestore.NewInstance(db.DB),
		stageStore: stagestore.NewInstance(db.DB),
	}
}

type impl struct {
	store      fieldstore.Provider
	ruleStore  rulestore.Provider
	stageStore stagestore.Provider
}

func (i impl) GetLogger(spaceID, fieldID string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("custom_field_id", fieldID)
}

func (i impl) DefineField(spaceID string, data fieldapimodels.FieldData) (string, error) {
	if err := CheckFieldKey(data.FieldKey); err != nil {
		return "", err
	}
	if err := CheckFieldConfig(data.FieldType, data.FieldConfig); err != nil {
		return "", err
	}
	existing, err := i.store.GetByKey(spaceID, data.Entity, data.FieldKey)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewConfigurationError("field key %q already exists for this entity", data.FieldKey)
	}
	rec := dbmodels.CustomField{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		EntityKind:  data.Entity.Kind,
		EntityID:    data.Entity.ID,
		FieldKey:    data.FieldKey,
		FieldName:   data.FieldName,
		FieldType:   data.FieldType,
		FieldConfig: data.FieldConfig,
		OrderIndex:  data.OrderIndex,
	}
	return i.store.Create(rec)
}

// UpdateField changes the display name and configuration. The field key
// and type stay immutable so stored values remain interpretable.
func (i impl) UpdateField(spaceID, id string, data fieldapimodels.FieldUpdateData) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("field not found")
	}
	if err := CheckFieldConfig(rec.FieldType, data.FieldConfig); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"field_name":   data.FieldName,
		"field_config": data.FieldConfig,
	}
	return i.store.Update(spaceID, id, updMap)
}

func (i impl) ListFields(spaceID string, entity models.EntityRef) ([]fieldapimodels.FieldView, error) {
	list, err := i.store.List(spaceID, entity)
	if err != nil {
		return nil, err
	}
	result := make([]fieldapimodels.FieldView, 0, len(list))
	for _, rec := range list {
		result = append(result, fieldapimodels.FieldConvert(rec))
	}
	return result, nil
}

func (i impl) ReorderField(spaceID string, data fieldapimodels.FieldOrderData) (hMsg string, err error) {
	rec, err := i.store.GetByID(spaceID, data.ID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "field not found", nil
	}
	list, err := i.store.List(spaceID, rec.EntityRef())
	if err != nil {
		return "", err
	}
	moved := -1
	for k, field := range list {
		if field.ID == data.ID {
			moved = k
			break
		}
	}
	if moved == -1 {
		return "field not found", nil
	}
	if data.NewOrder < 1 || data.NewOrder > len(list) {
		return "new order is out of range", nil
	}
	field := list[moved]
	list = append(list[:moved], list[moved+1:]...)
	pos := data.NewOrder - 1
	list = append(list[:pos], append([]dbmodels.CustomField{field}, list[pos:]...)...)
	for k := range list {
		newOrder := k + 1
		if list[k].OrderIndex == newOrder {
			continue
		}
		updMap := map[string]interface{}{
			"order_index": newOrder,
		}
		if err = i.store.Update(spaceID, list[k].ID, updMap); err != nil {
			return "", err
		}
	}
	return "", nil
}

// DeleteField cascades: validation rules bound to the field are removed
// and the field's entry is dropped from every stage property config.
func (i impl) DeleteField(spaceID, id string) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("field not found")
	}
	logger := i.GetLogger(spaceID, id)
	rules, err := i.ruleStore.ListByField(spaceID, id)
	if err != nil {
		return err
	}
	for _, rule := range rules {
		if err = i.ruleStore.Delete(spaceID, rule.ID); err != nil {
			return err
		}
	}
	if len(rules) > 0 {
		logger.WithField("rule_count", len(rules)).Info("cascade removed validation rules")
	}
	stages, err := i.stageStore.ListWithFieldConfigured(spaceID, id)
	if err != nil {
		return err
	}
	for _, stage := range stages {
		delete(stage.FieldPropertiesConfig, id)
		if err = i.stageStore.SetFieldProperties(spaceID, stage.ID, stage.FieldPropertiesConfig); err != nil {
			return err
		}
	}
	return i.store.Delete(spaceID, id)
}
