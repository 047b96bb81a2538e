package phasestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Phase) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (*dbmodels.Phase, error)
	List(spaceID, companyID string) (list []dbmodels.Phase, err error)
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

func (i impl) Create(rec dbmodels.Phase) (id string, err error) {
	maxOrder, err := i.maxOrder(rec.SpaceID, rec.CompanyID, rec.WorkflowType)
	if err != nil {
		return "", err
	}
	rec.SortOrder = maxOrder + 1
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Phase, error) {
	rec := dbmodels.Phase{}
	err := i.db.
		Model(&dbmodels.Phase{}).
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
		Model(&dbmodels.Phase{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(spaceID, companyID string) (list []dbmodels.Phase, err error) {
	list = []dbmodels.Phase{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Order("sort_order")
	if companyID != "" {
		tx = tx.Where("company_id = ?", companyID)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(spaceID, id string) (err error) {
	delRec := dbmodels.Phase{
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

func (i impl) maxOrder(spaceID, companyID string, workflowType models.WorkflowType) (order int, err error) {
	type result struct {
		MaxOrder int
	}
	res := result{}
	err = i.db.Table("phases").
		Where("space_id = ?", spaceID).
		Where("company_id = ?", companyID).
		Where("workflow_type = ?", workflowType).
		Select("max(sort_order) as max_order").Find(&res).Error
	if err != nil {
		return 0, err
	}
	return res.MaxOrder, nil
}
