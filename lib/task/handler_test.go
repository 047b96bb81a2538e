package task

import (
	"testing"

	"github.com/stretchr/testify/require"
	applicationstore "recruit-flow-backend/lib/application/store"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

// fakeApplicationStore keeps a single application in memory and applies
// CASTaskStatus with the same conditional-update semantics the gorm
// store has. loseCAS forces the next compare-and-set to report a lost
// race regardless of the stored status.
type fakeApplicationStore struct {
	app     dbmodels.CandidateApplication
	loseCAS bool
}

func (f *fakeApplicationStore) Create(rec dbmodels.CandidateApplication) (string, error) {
	return rec.ID, nil
}
func (f *fakeApplicationStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeApplicationStore) GetByID(spaceID, id string) (*dbmodels.CandidateApplication, error) {
	copied := f.app
	return &copied, nil
}
func (f *fakeApplicationStore) List(spaceID string, filter applicationstore.ListFilter) ([]dbmodels.CandidateApplication, error) {
	return []dbmodels.CandidateApplication{f.app}, nil
}
func (f *fakeApplicationStore) CASTaskStatus(spaceID, id string, expected, next models.TaskStatus, updMap map[string]interface{}) (bool, error) {
	if f.loseCAS || f.app.TaskStatus != expected {
		return false, nil
	}
	f.app.TaskStatus = next
	if claimedBy, ok := updMap["claimed_by"]; ok {
		if userID, isString := claimedBy.(string); isString {
			f.app.ClaimedBy = &userID
		} else {
			f.app.ClaimedBy = nil
		}
	}
	return true, nil
}
func (f *fakeApplicationStore) CASStage(spaceID, id string, expected *string, updMap map[string]interface{}) (bool, error) {
	return true, nil
}

type fakeAssignments struct {
	allowed bool
}

func (f fakeAssignments) IsAssignedToStage(spaceID, userID, stageID, positionID string) (bool, error) {
	return f.allowed, nil
}
func (f fakeAssignments) Assign(spaceID, userID, stageID, positionID string) (string, error) {
	return "", nil
}
func (f fakeAssignments) Revoke(spaceID, assignmentID string) error { return nil }

func pendingApplication() dbmodels.CandidateApplication {
	stageID := "stage-1"
	return dbmodels.CandidateApplication{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: "app-1"},
			SpaceID:   "space-1",
		},
		CandidateID:    "cand-1",
		JobPositionID:  "pos-1",
		CurrentStageID: &stageID,
		Status:         models.ApplicationStatusReviewing,
		TaskStatus:     models.TaskStatusPending,
	}
}

func TestClaimExclusivity(t *testing.T) {
	store := &fakeApplicationStore{app: pendingApplication()}
	handler := impl{appStore: store, authz: fakeAssignments{allowed: true}}

	t.Run("first claimant wins", func(t *testing.T) {
		err := handler.Claim("space-1", "app-1", "u1")
		require.NoError(t, err)
		require.Equal(t, models.TaskStatusInProgress, store.app.TaskStatus)
		require.NotNil(t, store.app.ClaimedBy)
		require.Equal(t, "u1", *store.app.ClaimedBy)
	})

	t.Run("second claimant gets AlreadyClaimed", func(t *testing.T) {
		err := handler.Claim("space-1", "app-1", "u2")
		require.ErrorIs(t, err, models.ErrAlreadyClaimed)
		require.Equal(t, "u1", *store.app.ClaimedBy)
	})

	t.Run("unclaim by another user is refused", func(t *testing.T) {
		err := handler.Unclaim("space-1", "app-1", "u2", false)
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonPermissionDenied, invalid.Reason)
		require.Equal(t, models.TaskStatusInProgress, store.app.TaskStatus)
	})

	t.Run("claimant unclaims back to pending", func(t *testing.T) {
		err := handler.Unclaim("space-1", "app-1", "u1", false)
		require.NoError(t, err)
		require.Equal(t, models.TaskStatusPending, store.app.TaskStatus)
		require.Nil(t, store.app.ClaimedBy)
	})

	t.Run("admin override releases a foreign claim", func(t *testing.T) {
		require.NoError(t, handler.Claim("space-1", "app-1", "u1"))
		err := handler.Unclaim("space-1", "app-1", "admin", true)
		require.NoError(t, err)
		require.Equal(t, models.TaskStatusPending, store.app.TaskStatus)
	})
}

func TestClaimLostRace(t *testing.T) {
	// the status check passes on the loaded snapshot but the
	// conditional update loses to a concurrent claimant
	store := &fakeApplicationStore{app: pendingApplication(), loseCAS: true}
	handler := impl{appStore: store, authz: fakeAssignments{allowed: true}}

	err := handler.Claim("space-1", "app-1", "u2")
	require.ErrorIs(t, err, models.ErrAlreadyClaimed)
	require.Equal(t, models.TaskStatusPending, store.app.TaskStatus)
	require.Nil(t, store.app.ClaimedBy)
}

func TestClaimRequiresStageAssignment(t *testing.T) {
	store := &fakeApplicationStore{app: pendingApplication()}
	handler := impl{appStore: store, authz: fakeAssignments{allowed: false}}

	err := handler.Claim("space-1", "app-1", "u1")
	invalid, ok := models.AsInvalidTransition(err)
	require.True(t, ok)
	require.Equal(t, models.ReasonPermissionDenied, invalid.Reason)
	require.Equal(t, models.TaskStatusPending, store.app.TaskStatus)
}

func TestUnclaimWithoutClaim(t *testing.T) {
	store := &fakeApplicationStore{app: pendingApplication()}
	handler := impl{appStore: store, authz: fakeAssignments{allowed: true}}

	err := handler.Unclaim("space-1", "app-1", "u1", false)
	require.ErrorIs(t, err, models.ErrNotClaimed)
}
