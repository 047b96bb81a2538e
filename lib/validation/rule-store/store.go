package rulestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ValidationRule) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (*dbmodels.ValidationRule, error)
	// ListActiveByStage returns active rules in creation order; the
	// evaluator relies on this order for the auto-reject tie-break.
	ListActiveByStage(spaceID, stageID string) (list []dbmodels.ValidationRule, err error)
	ListByField(spaceID, fieldID string) (list []dbmodels.ValidationRule, err error)
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

func (i impl) Create(rec dbmodels.ValidationRule) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.ValidationRule, error) {
	rec := dbmodels.ValidationRule{}
	err := i.db.
		Model(&dbmodels.ValidationRule{}).
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

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.ValidationRule{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListActiveByStage(spaceID, stageID string) (list []dbmodels.ValidationRule, err error) {
	list = []dbmodels.ValidationRule{}
	err = i.db.
		Preload("CustomField").
		Where("space_id = ?", spaceID).
		Where("stage_id = ?", stageID).
		Where("is_active = ?", true).
		Order("created_at, id").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByField(spaceID, fieldID string) (list []dbmodels.ValidationRule, err error) {
	list = []dbmodels.ValidationRule{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("custom_field_id = ?", fieldID).
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
	delRec := dbmodels.ValidationRule{
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
