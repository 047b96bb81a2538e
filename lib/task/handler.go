package task

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"recruit-flow-backend/db"
	applicationstore "recruit-flow-backend/lib/application/store"
	"recruit-flow-backend/lib/authz"
	stagestore "recruit-flow-backend/lib/workflow/stage-store"
	"recruit-flow-backend/models"
	taskapimodels "recruit-flow-backend/models/api/task"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	List(spaceID, userID string, filter taskapimodels.TaskFilter) ([]taskapimodels.TaskView, error)
	Claim(spaceID, applicationID, userID string) error
	Unclaim(spaceID, applicationID, userID string, adminOverride bool) error
	Complete(spaceID, applicationID, userID string) error
	Block(spaceID, applicationID, userID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		appStore:   applicationstore.NewInstance(db.DB),
		stageStore: stagestore.NewInstance(db.DB),
		authz:      authz.Instance,
	}
}

type impl struct {
	appStore   applicationstore.Provider
	stageStore stagestore.Provider
	authz      authz.Provider
}

func (i impl) GetLogger(spaceID, applicationID string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("application_id", applicationID)
}

// List builds the derived task queue: every open application sitting in
// a stage, scored and sorted by priority.
func (i impl) List(spaceID, userID string, filter taskapimodels.TaskFilter) ([]taskapimodels.TaskView, error) {
	statuses := []models.TaskStatus{models.TaskStatusPending, models.TaskStatusInProgress}
	if filter.Status != "" {
		statuses = []models.TaskStatus{filter.Status}
	}
	apps, err := i.appStore.List(spaceID, applicationstore.ListFilter{
		StageID:       filter.StageID,
		JobPositionID: filter.PositionID,
		TaskStatuses:  statuses,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stagesByWorkflow := map[string][]dbmodels.Stage{}
	result := make([]taskapimodels.TaskView, 0, len(apps))
	for _, app := range apps {
		if app.Status.IsTerminal() || app.CurrentStage == nil {
			continue
		}
		stage := *app.CurrentStage
		workflowStages, ok := stagesByWorkflow[stage.WorkflowID]
		if !ok {
			workflowStages, err = i.stageStore.List(spaceID, stage.WorkflowID)
			if err != nil {
				return nil, err
			}
			stagesByWorkflow[stage.WorkflowID] = workflowStages
		}
		view := buildTaskView(app, stage, workflowStages, now)
		if filter.OverdueOnly && !view.IsOverdue {
			continue
		}
		if filter.MinPriority != "" && levelRank(view.PriorityLevel) < levelRank(filter.MinPriority) {
			continue
		}
		result = append(result, view)
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].PriorityScore > result[b].PriorityScore
	})
	return result, nil
}

func buildTaskView(app dbmodels.CandidateApplication, stage dbmodels.Stage, workflowStages []dbmodels.Stage, now time.Time) taskapimodels.TaskView {
	score := PriorityScore(app, stage, workflowStages, now)
	return taskapimodels.TaskView{
		ApplicationID: app.ID,
		CandidateID:   app.CandidateID,
		JobPositionID: app.JobPositionID,
		StageID:       stage.ID,
		StageName:     stage.Name,
		TaskStatus:    app.TaskStatus,
		ClaimedBy:     app.ClaimedBy,
		StageDeadline: app.StageDeadline,
		// advisory only: overdue tasks are flagged, never escalated
		IsOverdue:     app.IsOverdue(now),
		PriorityScore: score,
		PriorityLevel: PriorityLevel(score),
	}
}

// Claim moves the task PENDING -> IN_PROGRESS with a compare-and-set,
// so of two concurrent claimants exactly one wins and the loser gets
// ErrAlreadyClaimed.
func (i impl) Claim(spaceID, applicationID, userID string) error {
	app, err := i.loadOpenTask(spaceID, applicationID)
	if err != nil {
		return err
	}
	if !canFire(app.TaskStatus, triggerClaim) {
		return models.ErrAlreadyClaimed
	}
	allowed, err := i.authz.IsAssignedToStage(spaceID, userID, *app.CurrentStageID, app.JobPositionID)
	if err != nil {
		return err
	}
	if !allowed {
		return models.NewInvalidTransition(models.ReasonPermissionDenied, "user is not assigned to the stage")
	}
	updMap := map[string]interface{}{
		"claimed_by": userID,
	}
	won, err := i.appStore.CASTaskStatus(spaceID, applicationID, models.TaskStatusPending, models.TaskStatusInProgress, updMap)
	if err != nil {
		return err
	}
	if !won {
		return models.ErrAlreadyClaimed
	}
	i.GetLogger(spaceID, applicationID).WithField("user_id", userID).Info("task claimed")
	return nil
}

// Unclaim is the converse compare-and-set and requires the original
// claimant unless an administrative override is supplied.
func (i impl) Unclaim(spaceID, applicationID, userID string, adminOverride bool) error {
	app, err := i.loadOpenTask(spaceID, applicationID)
	if err != nil {
		return err
	}
	if !canFire(app.TaskStatus, triggerUnclaim) {
		return models.ErrNotClaimed
	}
	if !adminOverride && (app.ClaimedBy == nil || *app.ClaimedBy != userID) {
		return models.NewInvalidTransition(models.ReasonPermissionDenied, "task is claimed by another user")
	}
	updMap := map[string]interface{}{
		"claimed_by": nil,
	}
	won, err := i.appStore.CASTaskStatus(spaceID, applicationID, models.TaskStatusInProgress, models.TaskStatusPending, updMap)
	if err != nil {
		return err
	}
	if !won {
		return models.ErrNotClaimed
	}
	i.GetLogger(spaceID, applicationID).WithField("user_id", userID).Info("task unclaimed")
	return nil
}

func (i impl) Complete(spaceID, applicationID, userID string) error {
	return i.finish(spaceID, applicationID, userID, triggerComplete, models.TaskStatusCompleted)
}

func (i impl) Block(spaceID, applicationID, userID string) error {
	return i.finish(spaceID, applicationID, userID, triggerBlock, models.TaskStatusBlocked)
}

func (i impl) finish(spaceID, applicationID, userID, trigger string, next models.TaskStatus) error {
	app, err := i.loadOpenTask(spaceID, applicationID)
	if err != nil {
		return err
	}
	if !canFire(app.TaskStatus, trigger) {
		return models.ErrNotClaimed
	}
	if app.ClaimedBy == nil || *app.ClaimedBy != userID {
		return models.NewInvalidTransition(models.ReasonPermissionDenied, "task is claimed by another user")
	}
	won, err := i.appStore.CASTaskStatus(spaceID, applicationID, models.TaskStatusInProgress, next, nil)
	if err != nil {
		return err
	}
	if !won {
		return models.ErrNotClaimed
	}
	i.GetLogger(spaceID, applicationID).
		WithField("user_id", userID).
		WithField("task_status", next).
		Info("task finished")
	return nil
}

func (i impl) loadOpenTask(spaceID, applicationID string) (*dbmodels.CandidateApplication, error) {
	app, err := i.appStore.GetByID(spaceID, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errors.New("application not found")
	}
	if app.Status.IsTerminal() || app.CurrentStageID == nil {
		return nil, errors.New("application has no open task")
	}
	return app, nil
}
