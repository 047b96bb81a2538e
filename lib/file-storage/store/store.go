package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.FileInfo) (id string, err error)
	GetByID(spaceID, id string) (*dbmodels.FileInfo, error)
	ListByApplication(spaceID, applicationID string) ([]dbmodels.FileInfo, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{DB: DB}
}

type impl struct {
	DB *gorm.DB
}

func (i impl) Create(rec dbmodels.FileInfo) (string, error) {
	err := i.DB.Create(&rec).Error
	if err != nil {
		return "", errors.Wrap(err, "failed to create file record")
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.FileInfo, error) {
	rec := dbmodels.FileInfo{}
	err := i.DB.Where("space_id = ? and id = ?", spaceID, id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get file record")
	}
	return &rec, nil
}

func (i impl) ListByApplication(spaceID, applicationID string) ([]dbmodels.FileInfo, error) {
	recs := []dbmodels.FileInfo{}
	err := i.DB.Where("space_id = ? and application_id = ?", spaceID, applicationID).
		Order("created_at").Find(&recs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list file records")
	}
	return recs, nil
}
