package assignmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.StageAssignment) (id string, err error)
	ListByStage(spaceID, stageID string) (list []dbmodels.StageAssignment, err error)
	Exists(spaceID, userID, stageID, positionID string) (bool, error)
	Delete(spaceID, id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StageAssignment) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByStage(spaceID, stageID string) (list []dbmodels.StageAssignment, err error) {
	list = []dbmodels.StageAssignment{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("stage_id = ?", stageID).
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Exists(spaceID, userID, stageID, positionID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.StageAssignment{}).
		Where("space_id = ?", spaceID).
		Where("user_id = ?", userID).
		Where("stage_id = ?", stageID).
		Where("job_position_id IN ?", []string{"", positionID}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) Delete(spaceID, id string) error {
	delRec := dbmodels.StageAssignment{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	return i.db.
		Delete(&delRec).
		Error
}
