package applicationhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"recruit-flow-backend/db"
	applicationhistorystore "recruit-flow-backend/lib/application-history/store"
	applicationstore "recruit-flow-backend/lib/application/store"
	phasestore "recruit-flow-backend/lib/phase/store"
	"recruit-flow-backend/models"
	applicantapimodels "recruit-flow-backend/models/api/applicant"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	Create(spaceID string, data applicantapimodels.ApplicationData) (id string, err error)
	GetByID(spaceID, id string) (applicantapimodels.ApplicationView, error)
	Withdraw(spaceID, id, userID string) error
	History(spaceID, id string, filter applicantapimodels.HistoryFilter) ([]applicantapimodels.HistoryView, int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        applicationstore.NewInstance(db.DB),
		historyStore: applicationhistorystore.NewInstance(db.DB),
		phaseStore:   phasestore.NewInstance(db.DB),
	}
}

type impl struct {
	store        applicationstore.Provider
	historyStore applicationhistorystore.Provider
	phaseStore   phasestore.Provider
}

func (i impl) GetLogger(spaceID, applicationID string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("application_id", applicationID)
}

// Create registers a submitted application in its starting phase. The
// phase's initial stage is entered later by an explicit transition,
// because a phase may offer more than one eligible workflow.
func (i impl) Create(spaceID string, data applicantapimodels.ApplicationData) (string, error) {
	phase, err := i.phaseStore.GetByID(spaceID, data.PhaseID)
	if err != nil {
		return "", err
	}
	if phase == nil {
		return "", errors.New("phase not found")
	}
	rec := dbmodels.CandidateApplication{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		CandidateID:   data.CandidateID,
		JobPositionID: data.JobPositionID,
		PhaseID:       data.PhaseID,
		Status:        models.ApplicationStatusApplied,
		TaskStatus:    models.TaskStatusPending,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", err
	}
	i.GetLogger(spaceID, id).Info("application created")
	return id, nil
}

func (i impl) GetByID(spaceID, id string) (applicantapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return applicantapimodels.ApplicationView{}, err
	}
	if rec == nil {
		return applicantapimodels.ApplicationView{}, errors.New("application not found")
	}
	return applicantapimodels.ApplicationConvert(*rec), nil
}

func (i impl) Withdraw(spaceID, id, userID string) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("application not found")
	}
	if rec.Status.IsTerminal() {
		return errors.New("application is already closed")
	}
	updMap := map[string]interface{}{
		"status":      models.ApplicationStatusWithdrawn,
		"task_status": models.TaskStatusCompleted,
		"claimed_by":  nil,
	}
	if err = i.store.Update(spaceID, id, updMap); err != nil {
		return err
	}
	i.GetLogger(spaceID, id).WithField("user_id", userID).Info("application withdrawn")
	return nil
}

func (i impl) History(spaceID, id string, filter applicantapimodels.HistoryFilter) ([]applicantapimodels.HistoryView, int64, error) {
	rowCount, err := i.historyStore.ListCount(spaceID, id, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []applicantapimodels.HistoryView{}, rowCount, nil
	}
	list, err := i.historyStore.List(spaceID, id, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]applicantapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicantapimodels.HistoryConvert(rec))
	}
	return result, rowCount, nil
}
