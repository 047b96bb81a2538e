package fieldstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.CustomField) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (*dbmodels.CustomField, error)
	GetByKey(spaceID string, entity models.EntityRef, fieldKey string) (*dbmodels.CustomField, error)
	List(spaceID string, entity models.EntityRef) (list []dbmodels.CustomField, err error)
	Delete(spaceID, id string) (err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.CustomField) (id string, err error) {
	maxOrder, err := i.maxOrder(rec.SpaceID, rec.EntityRef())
	if err != nil {
		return "", err
	}
	if rec.OrderIndex == 0 {
		rec.OrderIndex = maxOrder + 1
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.CustomField, error) {
	rec := dbmodels.CustomField{}
	err := i.db.
		Model(&dbmodels.CustomField{}).
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

func (i impl) GetByKey(spaceID string, entity models.EntityRef, fieldKey string) (*dbmodels.CustomField, error) {
	rec := dbmodels.CustomField{}
	err := i.db.
		Model(&dbmodels.CustomField{}).
		Where("space_id = ?", spaceID).
		Where("entity_kind = ?", entity.Kind).
		Where("entity_id = ?", entity.ID).
		Where("field_key = ?", fieldKey).
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

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.CustomField{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(spaceID string, entity models.EntityRef) (list []dbmodels.CustomField, err error) {
	list = []dbmodels.CustomField{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("entity_kind = ?", entity.Kind).
		Where("entity_id = ?", entity.ID).
		Order("order_index").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(spaceID, id string) (err error) {
	delRec := dbmodels.CustomField{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	err = i.db.
		Delete(&delRec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) maxOrder(spaceID string, entity models.EntityRef) (order int, err error) {
	type result struct {
		MaxOrder int
	}
	res := result{}
	err = i.db.Table("custom_fields").
		Where("space_id = ?", spaceID).
		Where("entity_kind = ?", entity.Kind).
		Where("entity_id = ?", entity.ID).
		Select("max(order_index) as max_order").Find(&res).Error
	if err != nil {
		return 0, err
	}
	return res.MaxOrder, nil
}
