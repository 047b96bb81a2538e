package stagestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Stage) (id string, err error)
	Update(spaceID, workflowID, id string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (*dbmodels.Stage, error)
	List(spaceID, workflowID string) (list []dbmodels.Stage, err error)
	Delete(spaceID, workflowID, id string) (err error)
	SetFieldProperties(spaceID, id string, config dbmodels.FieldPropertiesConfig) error
	ListWithFieldConfigured(spaceID, fieldID string) (list []dbmodels.Stage, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Stage) (id string, err error) {
	maxOrder, err := i.maxOrder(rec.SpaceID, rec.WorkflowID)
	if err != nil {
		return "", err
	}
	rec.StageOrder = maxOrder + 1
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Stage, error) {
	rec := dbmodels.Stage{}
	err := i.db.
		Model(&dbmodels.Stage{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(spaceID, workflowID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Stage{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Where("workflow_id = ?", workflowID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(spaceID, workflowID string) (list []dbmodels.Stage, err error) {
	list = []dbmodels.Stage{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("workflow_id = ?", workflowID).
		Order("stage_order").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(spaceID, workflowID, id string) (err error) {
	delRec := dbmodels.Stage{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
		WorkflowID: workflowID,
	}
	err = i.db.
		Delete(&delRec).
		Error
	if err != nil {
		return err
	}
	return nil
}

// SetFieldProperties replaces the whole jsonb config in one update so
// partial states are never observable.
func (i impl) SetFieldProperties(spaceID, id string, config dbmodels.FieldPropertiesConfig) error {
	return i.db.
		Model(&dbmodels.Stage{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Update("field_properties_config", config).
		Error
}

// ListWithFieldConfigured finds stages whose jsonb property config has
// an explicit entry for the field.
func (i impl) ListWithFieldConfigured(spaceID, fieldID string) (list []dbmodels.Stage, err error) {
	list = []dbmodels.Stage{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("field_properties_config ?? ?", fieldID).
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) maxOrder(spaceID, workflowID string) (order int, err error) {
	type result struct {
		MaxOrder int
	}
	res := result{}
	err = i.db.Table("stages").
		Where("space_id = ?", spaceID).
		Where("workflow_id = ?", workflowID).
		Select("max(stage_order) as max_order").Find(&res).Error
	if err != nil {
		return 0, err
	}
	return res.MaxOrder, nil
}
