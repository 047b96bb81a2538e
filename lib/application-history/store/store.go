package applicationhistorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	applicantapimodels "recruit-flow-backend/models/api/applicant"
	dbmodels "recruit-flow-backend/models/db"
)

// Provider is append-only on purpose: no update or delete methods exist,
// matching the immutability of the history log.
type Provider interface {
	Append(rec dbmodels.ApplicationHistoryEntry) (id string, err error)
	List(spaceID, applicationID string, filter applicantapimodels.HistoryFilter) (list []dbmodels.ApplicationHistoryEntry, err error)
	ListCount(spaceID, applicationID string, filter applicantapimodels.HistoryFilter) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Append(rec dbmodels.ApplicationHistoryEntry) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(spaceID, applicationID string, filter applicantapimodels.HistoryFilter) (list []dbmodels.ApplicationHistoryEntry, err error) {
	list = []dbmodels.ApplicationHistoryEntry{}
	page, limit := filter.GetPage()
	tx := i.filtered(spaceID, applicationID, filter)
	err = tx.
		Order("changed_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(spaceID, applicationID string, filter applicantapimodels.HistoryFilter) (int64, error) {
	var count int64
	err := i.filtered(spaceID, applicationID, filter).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) filtered(spaceID, applicationID string, filter applicantapimodels.HistoryFilter) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.ApplicationHistoryEntry{}).
		Where("space_id = ?", spaceID).
		Where("application_id = ?", applicationID)
	if filter.FromDate != nil {
		tx = tx.Where("changed_at >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		tx = tx.Where("changed_at <= ?", filter.ToDate)
	}
	return tx
}
