package workflowstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Workflow) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (*dbmodels.Workflow, error)
	List(spaceID string, workflowType models.WorkflowType) (list []dbmodels.Workflow, err error)
	ListByPhase(spaceID, phaseID string) (list []dbmodels.Workflow, err error)
	ResetDefault(spaceID, phaseID string, workflowType models.WorkflowType) error
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

func (i impl) Create(rec dbmodels.Workflow) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Workflow, error) {
	rec := dbmodels.Workflow{}
	err := i.db.
		Model(&dbmodels.Workflow{}).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stages.stage_order")
		}).
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
		Model(&dbmodels.Workflow{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(spaceID string, workflowType models.WorkflowType) (list []dbmodels.Workflow, err error) {
	list = []dbmodels.Workflow{}
	tx := i.db.
		Where("space_id = ?", spaceID)
	if workflowType != "" {
		tx = tx.Where("workflow_type = ?", workflowType)
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

func (i impl) ListByPhase(spaceID, phaseID string) (list []dbmodels.Workflow, err error) {
	list = []dbmodels.Workflow{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("phase_id = ?", phaseID).
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// ResetDefault drops the default flag from every workflow of the
// phase+type pair, keeping is_default unique.
func (i impl) ResetDefault(spaceID, phaseID string, workflowType models.WorkflowType) error {
	return i.db.
		Model(&dbmodels.Workflow{}).
		Where("space_id = ?", spaceID).
		Where("phase_id = ?", phaseID).
		Where("workflow_type = ?", workflowType).
		Update("is_default", false).
		Error
}

func (i impl) Delete(spaceID, id string) (err error) {
	delRec := dbmodels.Workflow{
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
