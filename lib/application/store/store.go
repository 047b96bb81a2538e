package applicationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.CandidateApplication) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (*dbmodels.CandidateApplication, error)
	List(spaceID string, filter ListFilter) (list []dbmodels.CandidateApplication, err error)
	// CASTaskStatus flips task_status only when the stored value still
	// matches expected. The boolean result reports whether this caller
	// won the update.
	CASTaskStatus(spaceID, id string, expected, next models.TaskStatus, updMap map[string]interface{}) (bool, error)
	// CASStage applies updMap only while current_stage_id still equals
	// expected, serializing concurrent transition attempts.
	CASStage(spaceID, id string, expected *string, updMap map[string]interface{}) (bool, error)
}

type ListFilter struct {
	StageID       string
	JobPositionID string
	TaskStatuses  []models.TaskStatus
	Limit         int
	Offset        int
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.CandidateApplication) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.CandidateApplication, error) {
	rec := dbmodels.CandidateApplication{}
	err := i.db.
		Model(&dbmodels.CandidateApplication{}).
		Preload("CurrentStage").
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
		Model(&dbmodels.CandidateApplication{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(spaceID string, filter ListFilter) (list []dbmodels.CandidateApplication, err error) {
	list = []dbmodels.CandidateApplication{}
	tx := i.db.
		Preload("CurrentStage").
		Where("space_id = ?", spaceID)
	if filter.StageID != "" {
		tx = tx.Where("current_stage_id = ?", filter.StageID)
	}
	if filter.JobPositionID != "" {
		tx = tx.Where("job_position_id = ?", filter.JobPositionID)
	}
	if len(filter.TaskStatuses) > 0 {
		tx = tx.Where("task_status IN ?", filter.TaskStatuses)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit).Offset(filter.Offset)
	}
	err = tx.Order("created_at").Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) CASTaskStatus(spaceID, id string, expected, next models.TaskStatus, updMap map[string]interface{}) (bool, error) {
	if updMap == nil {
		updMap = map[string]interface{}{}
	}
	updMap["task_status"] = next
	res := i.db.
		Model(&dbmodels.CandidateApplication{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Where("task_status = ?", expected).
		Updates(updMap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (i impl) CASStage(spaceID, id string, expected *string, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.CandidateApplication{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID)
	if expected == nil {
		tx = tx.Where("current_stage_id IS NULL")
	} else {
		tx = tx.Where("current_stage_id = ?", *expected)
	}
	res := tx.Updates(updMap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
