package transition

import (
	"testing"

	"github.com/stretchr/testify/require"
	applicationstore "recruit-flow-backend/lib/application/store"
	"recruit-flow-backend/models"
	applicantapimodels "recruit-flow-backend/models/api/applicant"
	fieldapimodels "recruit-flow-backend/models/api/field"
	dbmodels "recruit-flow-backend/models/db"
)

// recordingAppStore counts every mutating call so tests can assert a
// refused transition wrote nothing.
type recordingAppStore struct {
	app           dbmodels.CandidateApplication
	updateCalls   int
	casStageCalls int
	casTaskCalls  int
}

func (f *recordingAppStore) Create(rec dbmodels.CandidateApplication) (string, error) {
	return rec.ID, nil
}
func (f *recordingAppStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	f.updateCalls++
	return nil
}
func (f *recordingAppStore) GetByID(spaceID, id string) (*dbmodels.CandidateApplication, error) {
	copied := f.app
	return &copied, nil
}
func (f *recordingAppStore) List(spaceID string, filter applicationstore.ListFilter) ([]dbmodels.CandidateApplication, error) {
	return nil, nil
}
func (f *recordingAppStore) CASTaskStatus(spaceID, id string, expected, next models.TaskStatus, updMap map[string]interface{}) (bool, error) {
	f.casTaskCalls++
	return true, nil
}
func (f *recordingAppStore) CASStage(spaceID, id string, expected *string, updMap map[string]interface{}) (bool, error) {
	f.casStageCalls++
	return true, nil
}

type fakeStages struct {
	stages map[string]*dbmodels.Stage
	byWF   map[string][]dbmodels.Stage
}

func (f *fakeStages) Create(rec dbmodels.Stage) (string, error) { return rec.ID, nil }
func (f *fakeStages) Update(spaceID, workflowID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeStages) GetByID(spaceID, id string) (*dbmodels.Stage, error) {
	return f.stages[id], nil
}
func (f *fakeStages) List(spaceID, workflowID string) ([]dbmodels.Stage, error) {
	return f.byWF[workflowID], nil
}
func (f *fakeStages) Delete(spaceID, workflowID, id string) error { return nil }
func (f *fakeStages) SetFieldProperties(spaceID, id string, config dbmodels.FieldPropertiesConfig) error {
	return nil
}
func (f *fakeStages) ListWithFieldConfigured(spaceID, fieldID string) ([]dbmodels.Stage, error) {
	return nil, nil
}

type fakeWorkflows struct {
	workflows map[string]*dbmodels.Workflow
	byPhase   map[string][]dbmodels.Workflow
}

func (f *fakeWorkflows) Create(rec dbmodels.Workflow) (string, error) { return rec.ID, nil }
func (f *fakeWorkflows) Update(spaceID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeWorkflows) GetByID(spaceID, id string) (*dbmodels.Workflow, error) {
	return f.workflows[id], nil
}
func (f *fakeWorkflows) List(spaceID string, workflowType models.WorkflowType) ([]dbmodels.Workflow, error) {
	return nil, nil
}
func (f *fakeWorkflows) ListByPhase(spaceID, phaseID string) ([]dbmodels.Workflow, error) {
	return f.byPhase[phaseID], nil
}
func (f *fakeWorkflows) ResetDefault(spaceID, phaseID string, workflowType models.WorkflowType) error {
	return nil
}
func (f *fakeWorkflows) Delete(spaceID, id string) error { return nil }

type fakeRules struct {
	rules []dbmodels.ValidationRule
}

func (f *fakeRules) Create(rec dbmodels.ValidationRule) (string, error) { return rec.ID, nil }
func (f *fakeRules) Update(spaceID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeRules) GetByID(spaceID, id string) (*dbmodels.ValidationRule, error) {
	return nil, nil
}
func (f *fakeRules) ListActiveByStage(spaceID, stageID string) ([]dbmodels.ValidationRule, error) {
	return f.rules, nil
}
func (f *fakeRules) ListByField(spaceID, fieldID string) ([]dbmodels.ValidationRule, error) {
	return nil, nil
}
func (f *fakeRules) Delete(spaceID, id string) error { return nil }

type fakeResolver struct {
	missing []string
}

func (f fakeResolver) ResolveProperties(spaceID, stageID, fieldID string) (fieldapimodels.PropertiesView, error) {
	return fieldapimodels.PropertiesView{}, nil
}
func (f fakeResolver) ResolveVisibleFields(spaceID, stageID string, audience models.Audience) ([]string, error) {
	return nil, nil
}
func (f fakeResolver) SetProperties(spaceID, stageID string, data fieldapimodels.PropertiesData) error {
	return nil
}
func (f fakeResolver) MissingRequiredFields(spaceID string, stage dbmodels.Stage, candidateValues map[string]interface{}) ([]string, error) {
	return f.missing, nil
}

type fakeGrants struct {
	allowed bool
}

func (f fakeGrants) IsAssignedToStage(spaceID, userID, stageID, positionID string) (bool, error) {
	return f.allowed, nil
}
func (f fakeGrants) Assign(spaceID, userID, stageID, positionID string) (string, error) {
	return "", nil
}
func (f fakeGrants) Revoke(spaceID, assignmentID string) error { return nil }

type transitionFixture struct {
	handler  impl
	appStore *recordingAppStore
	rules    *fakeRules
	resolver *fakeResolver
	grants   *fakeGrants
}

func newTransitionFixture() *transitionFixture {
	phaseID := "ph1"
	nextPhaseID := "ph2"
	current := makeStage("s1", 1, models.StageTypeInitial, true)
	target := makeStage("s2", 2, models.StageTypeStandard, true)
	inactive := makeStage("s3", 3, models.StageTypeStandard, false)
	handoff := makeStage("s9", 4, models.StageTypeSuccess, true)
	handoff.NextPhaseID = &nextPhaseID
	foreign := makeStage("x1", 1, models.StageTypeStandard, true)
	foreign.WorkflowID = "wf2"

	workflow := dbmodels.Workflow{
		BaseSpaceModel: dbmodels.BaseSpaceModel{BaseModel: dbmodels.BaseModel{ID: "wf1"}},
		PhaseID:        &phaseID,
		WorkflowType:   models.WorkflowTypeCandidate,
		Status:         models.WorkflowStatusActive,
	}
	otherWorkflow := dbmodels.Workflow{
		BaseSpaceModel: dbmodels.BaseSpaceModel{BaseModel: dbmodels.BaseModel{ID: "wf2"}},
		PhaseID:        &phaseID,
		WorkflowType:   models.WorkflowTypeCandidate,
		Status:         models.WorkflowStatusActive,
	}
	// the next phase's only workflow has no INITIAL stage
	strandedWorkflow := dbmodels.Workflow{
		BaseSpaceModel: dbmodels.BaseSpaceModel{BaseModel: dbmodels.BaseModel{ID: "wf3"}},
		PhaseID:        &nextPhaseID,
		WorkflowType:   models.WorkflowTypeCandidate,
		Status:         models.WorkflowStatusActive,
	}
	strandedStage := makeStage("y1", 1, models.StageTypeStandard, true)
	strandedStage.WorkflowID = "wf3"

	currentStageID := current.ID
	appStore := &recordingAppStore{
		app: dbmodels.CandidateApplication{
			BaseSpaceModel: dbmodels.BaseSpaceModel{
				BaseModel: dbmodels.BaseModel{ID: "app-1"},
				SpaceID:   "space-1",
			},
			CandidateID:    "cand-1",
			JobPositionID:  "pos-1",
			PhaseID:        phaseID,
			CurrentStageID: &currentStageID,
			CurrentStage:   &current,
			Status:         models.ApplicationStatusReviewing,
			TaskStatus:     models.TaskStatusPending,
		},
	}
	rules := &fakeRules{}
	resolver := &fakeResolver{}
	grants := &fakeGrants{allowed: true}
	handler := impl{
		appStore: appStore,
		stageStore: &fakeStages{
			stages: map[string]*dbmodels.Stage{
				"s1": &current, "s2": &target, "s3": &inactive, "s9": &handoff, "x1": &foreign,
			},
			byWF: map[string][]dbmodels.Stage{
				"wf1": {current, target, inactive, handoff},
				"wf3": {strandedStage},
			},
		},
		workflowStore: &fakeWorkflows{
			workflows: map[string]*dbmodels.Workflow{
				"wf1": &workflow, "wf2": &otherWorkflow, "wf3": &strandedWorkflow,
			},
			byPhase: map[string][]dbmodels.Workflow{
				nextPhaseID: {strandedWorkflow},
			},
		},
		ruleStore: rules,
		resolver:  resolver,
		authz:     grants,
	}
	return &transitionFixture{
		handler:  handler,
		appStore: appStore,
		rules:    rules,
		resolver: resolver,
		grants:   grants,
	}
}

func requireNoWrites(t *testing.T, store *recordingAppStore) {
	t.Helper()
	require.Zero(t, store.updateCalls)
	require.Zero(t, store.casStageCalls)
	require.Zero(t, store.casTaskCalls)
}

func failingRule() dbmodels.ValidationRule {
	return dbmodels.ValidationRule{
		BaseSpaceModel: dbmodels.BaseSpaceModel{BaseModel: dbmodels.BaseModel{ID: "r1"}},
		CustomField: &dbmodels.CustomField{
			FieldKey:  "expected_salary",
			FieldName: "Expected salary",
		},
		RuleType:          models.RuleTypeComparePositionField,
		Operator:          models.OperatorLTE,
		PositionFieldPath: "max_salary",
		Severity:          models.SeverityError,
		IsActive:          true,
	}
}

// every refused transition must leave the application record and its
// history untouched
func TestAttemptTransitionRefusalsWriteNothing(t *testing.T) {
	request := func(targetID string) applicantapimodels.TransitionRequest {
		return applicantapimodels.TransitionRequest{TargetStageID: targetID}
	}

	t.Run("target in another workflow", func(t *testing.T) {
		fx := newTransitionFixture()
		_, err := fx.handler.AttemptTransition("space-1", "app-1", "u1", request("x1"))
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonWrongWorkflow, invalid.Reason)
		requireNoWrites(t, fx.appStore)
	})

	t.Run("inactive target stage", func(t *testing.T) {
		fx := newTransitionFixture()
		_, err := fx.handler.AttemptTransition("space-1", "app-1", "u1", request("s3"))
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonInactiveTarget, invalid.Reason)
		requireNoWrites(t, fx.appStore)
	})

	t.Run("user not assigned to target stage", func(t *testing.T) {
		fx := newTransitionFixture()
		fx.grants.allowed = false
		_, err := fx.handler.AttemptTransition("space-1", "app-1", "u1", request("s2"))
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonPermissionDenied, invalid.Reason)
		requireNoWrites(t, fx.appStore)
	})

	t.Run("required fields missing", func(t *testing.T) {
		fx := newTransitionFixture()
		fx.resolver.missing = []string{"expected_salary"}
		_, err := fx.handler.AttemptTransition("space-1", "app-1", "u1", request("s2"))
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonMissingRequiredFields, invalid.Reason)
		require.Contains(t, invalid.Details, "expected_salary")
		requireNoWrites(t, fx.appStore)
	})

	t.Run("validation rule error", func(t *testing.T) {
		fx := newTransitionFixture()
		fx.rules.rules = []dbmodels.ValidationRule{failingRule()}
		req := request("s2")
		req.CandidateValues = map[string]interface{}{"expected_salary": float64(120000)}
		req.PositionValues = map[string]interface{}{"max_salary": float64(100000)}
		result, err := fx.handler.AttemptTransition("space-1", "app-1", "u1", req)
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonValidationErrors, invalid.Reason)
		require.NotNil(t, result.Validation)
		require.False(t, result.Validation.IsValid)
		requireNoWrites(t, fx.appStore)
	})

	t.Run("closed application", func(t *testing.T) {
		fx := newTransitionFixture()
		fx.appStore.app.Status = models.ApplicationStatusAccepted
		_, err := fx.handler.AttemptTransition("space-1", "app-1", "u1", request("s2"))
		invalid, ok := models.AsInvalidTransition(err)
		require.True(t, ok)
		require.Equal(t, models.ReasonTerminalApplication, invalid.Reason)
		requireNoWrites(t, fx.appStore)
	})
}

func TestAttemptTransitionHandoffNeedsInitialStage(t *testing.T) {
	fx := newTransitionFixture()
	_, err := fx.handler.AttemptTransition("space-1", "app-1", "u1",
		applicantapimodels.TransitionRequest{TargetStageID: "s9"})
	require.Error(t, err)
	require.True(t, models.IsConfigurationError(err))
	requireNoWrites(t, fx.appStore)
}
