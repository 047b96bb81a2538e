package authz

import (
	"recruit-flow-backend/db"
	assignmentstore "recruit-flow-backend/lib/authz/store"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	// IsAssignedToStage reports whether the user may act on
	// applications sitting in the stage for the given position.
	IsAssignedToStage(spaceID, userID, stageID, positionID string) (bool, error)
	Assign(spaceID, userID, stageID, positionID string) (id string, err error)
	Revoke(spaceID, assignmentID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: assignmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store assignmentstore.Provider
}

func (i impl) IsAssignedToStage(spaceID, userID, stageID, positionID string) (bool, error) {
	return i.store.Exists(spaceID, userID, stageID, positionID)
}

func (i impl) Assign(spaceID, userID, stageID, positionID string) (string, error) {
	rec := dbmodels.StageAssignment{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		StageID:       stageID,
		UserID:        userID,
		JobPositionID: positionID,
	}
	return i.store.Create(rec)
}

func (i impl) Revoke(spaceID, assignmentID string) error {
	return i.store.Delete(spaceID, assignmentID)
}
