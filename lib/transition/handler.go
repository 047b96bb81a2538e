package transition

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"recruit-flow-backend/config"
	"recruit-flow-backend/db"
	applicationhistorystore "recruit-flow-backend/lib/application-history/store"
	applicationstore "recruit-flow-backend/lib/application/store"
	"recruit-flow-backend/lib/authz"
	candidatestore "recruit-flow-backend/lib/candidate/store"
	fieldproperties "recruit-flow-backend/lib/field-properties"
	"recruit-flow-backend/lib/smtp"
	"recruit-flow-backend/lib/validation"
	rulestore "recruit-flow-backend/lib/validation/rule-store"
	stagestore "recruit-flow-backend/lib/workflow/stage-store"
	workflowstore "recruit-flow-backend/lib/workflow/store"
	"recruit-flow-backend/models"
	applicantapimodels "recruit-flow-backend/models/api/applicant"
	validationapimodels "recruit-flow-backend/models/api/validation"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	AttemptTransition(spaceID, applicationID, userID string, req applicantapimodels.TransitionRequest) (applicantapimodels.TransitionResult, error)
	SuggestNextStage(spaceID, applicationID string) (*applicantapimodels.SuggestedStage, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		dbConn:         db.DB,
		appStore:       applicationstore.NewInstance(db.DB),
		stageStore:     stagestore.NewInstance(db.DB),
		workflowStore:  workflowstore.NewInstance(db.DB),
		ruleStore:      rulestore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
		resolver:       fieldproperties.Instance,
		authz:          authz.Instance,
		notifier:       smtp.Instance,
	}
}

type impl struct {
	dbConn         *gorm.DB
	appStore       applicationstore.Provider
	stageStore     stagestore.Provider
	workflowStore  workflowstore.Provider
	ruleStore      rulestore.Provider
	candidateStore candidatestore.Provider
	resolver       fieldproperties.Provider
	authz          authz.Provider
	notifier       smtp.Provider
}

func (i impl) GetLogger(spaceID, applicationID string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("application_id", applicationID)
}

func (i impl) AttemptTransition(spaceID, applicationID, userID string, req applicantapimodels.TransitionRequest) (applicantapimodels.TransitionResult, error) {
	logger := i.GetLogger(spaceID, applicationID).WithField("target_stage_id", req.TargetStageID)

	app, err := i.appStore.GetByID(spaceID, applicationID)
	if err != nil {
		return applicantapimodels.TransitionResult{}, err
	}
	if app == nil {
		return applicantapimodels.TransitionResult{}, errors.New("application not found")
	}
	target, err := i.stageStore.GetByID(spaceID, req.TargetStageID)
	if err != nil {
		return applicantapimodels.TransitionResult{}, err
	}
	if target == nil {
		return applicantapimodels.TransitionResult{}, models.NewInvalidTransition(models.ReasonWrongWorkflow, "target stage not found")
	}
	targetWorkflow, err := i.workflowStore.GetByID(spaceID, target.WorkflowID)
	if err != nil {
		return applicantapimodels.TransitionResult{}, err
	}
	if targetWorkflow == nil {
		return applicantapimodels.TransitionResult{}, models.NewInvalidTransition(models.ReasonWrongWorkflow, "target workflow not found")
	}

	if err = CheckTarget(*app, app.CurrentStage, *target, *targetWorkflow); err != nil {
		return applicantapimodels.TransitionResult{}, err
	}

	allowed, err := i.authz.IsAssignedToStage(spaceID, userID, target.ID, app.JobPositionID)
	if err != nil {
		return applicantapimodels.TransitionResult{}, err
	}
	if !allowed {
		return applicantapimodels.TransitionResult{}, models.NewInvalidTransition(models.ReasonPermissionDenied, "user is not assigned to the target stage")
	}

	missing, err := i.resolver.MissingRequiredFields(spaceID, *target, req.CandidateValues)
	if err != nil {
		return applicantapimodels.TransitionResult{}, err
	}
	if len(missing) > 0 {
		return applicantapimodels.TransitionResult{},
			models.NewInvalidTransition(models.ReasonMissingRequiredFields, strings.Join(missing, ", "))
	}

	rules, err := i.ruleStore.ListActiveByStage(spaceID, target.ID)
	if err != nil {
		return applicantapimodels.TransitionResult{}, err
	}
	result := validation.EvaluateRules(rules, req.CandidateValues, req.PositionValues)

	if result.ShouldAutoReject {
		return i.autoReject(spaceID, *app, result, logger)
	}
	if result.HasErrors() {
		return applicantapimodels.TransitionResult{Validation: &result},
			models.NewInvalidTransition(models.ReasonValidationErrors, "stage validation rules failed")
	}
	if result.HasWarnings() && !req.ProceedAnyway {
		return applicantapimodels.TransitionResult{Validation: &result},
			models.NewInvalidTransition(models.ReasonValidationErrors, "validation warnings require proceed_anyway")
	}

	if target.StageType.IsTerminal() && target.NextPhaseID != nil {
		if err = i.checkHandoffDestination(spaceID, *target.NextPhaseID); err != nil {
			return applicantapimodels.TransitionResult{}, err
		}
	}

	now := time.Now()
	updMap, outcome := BuildStageEntry(*app, *target, now)
	historyEntry := dbmodels.ApplicationHistoryEntry{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		ApplicationID: applicationID,
		FromStageID:   app.CurrentStageID,
		ToStageID:     target.ID,
		ChangedBy:     userID,
		ChangedAt:     now,
		Notes:         req.Notes,
	}

	// stage update and history append commit together or not at all
	err = i.dbConn.Transaction(func(tx *gorm.DB) error {
		txAppStore := applicationstore.NewInstance(tx)
		won, err := txAppStore.CASStage(spaceID, applicationID, app.CurrentStageID, updMap)
		if err != nil {
			return err
		}
		if !won {
			return errors.New("application was moved by a concurrent request")
		}
		txHistoryStore := applicationhistorystore.NewInstance(tx)
		if _, err = txHistoryStore.Append(historyEntry); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return applicantapimodels.TransitionResult{}, err
	}

	updated, err := i.appStore.GetByID(spaceID, applicationID)
	if err != nil {
		return applicantapimodels.TransitionResult{}, err
	}
	logger.WithField("outcome", outcome).Info("application stage changed")
	return applicantapimodels.TransitionResult{
		Outcome:     outcome,
		Application: applicantapimodels.ApplicationConvert(*updated),
		Validation:  &result,
	}, nil
}

// checkHandoffDestination refuses a phase hand-off when no active
// candidate workflow of the destination phase has an active INITIAL
// stage: the application would be stranded with no stage it can enter.
func (i impl) checkHandoffDestination(spaceID, phaseID string) error {
	workflows, err := i.workflowStore.ListByPhase(spaceID, phaseID)
	if err != nil {
		return err
	}
	for _, workflow := range workflows {
		if workflow.WorkflowType != models.WorkflowTypeCandidate || workflow.Status != models.WorkflowStatusActive {
			continue
		}
		stages, err := i.stageStore.List(spaceID, workflow.ID)
		if err != nil {
			return err
		}
		for _, stage := range stages {
			if stage.StageType == models.StageTypeInitial && stage.IsActive {
				return nil
			}
		}
	}
	return models.NewConfigurationError("next phase has no candidate workflow with an INITIAL stage")
}

// autoReject short-circuits the transition: the stage stays unchanged
// and the application closes with the first failing rule's reason.
func (i impl) autoReject(spaceID string, app dbmodels.CandidateApplication, result validationapimodels.ValidationResult, logger *log.Entry) (applicantapimodels.TransitionResult, error) {
	updMap := map[string]interface{}{
		"status":      models.ApplicationStatusRejected,
		"task_status": models.TaskStatusCompleted,
		"claimed_by":  nil,
	}
	won, err := i.appStore.CASStage(spaceID, app.ID, app.CurrentStageID, updMap)
	if err != nil {
		return applicantapimodels.TransitionResult{}, err
	}
	if !won {
		return applicantapimodels.TransitionResult{}, errors.New("application was moved by a concurrent request")
	}
	logger.WithField("reason", result.AutoRejectReason).Info("application auto-rejected")
	i.notifyRejection(spaceID, app, result.AutoRejectReason, logger)

	updated, err := i.appStore.GetByID(spaceID, app.ID)
	if err != nil {
		return applicantapimodels.TransitionResult{}, err
	}
	return applicantapimodels.TransitionResult{
		Outcome:     applicantapimodels.OutcomeAutoRejected,
		Application: applicantapimodels.ApplicationConvert(*updated),
		Validation:  &result,
	}, nil
}

// notifyRejection is best effort; a mail failure never rolls back the
// rejection.
func (i impl) notifyRejection(spaceID string, app dbmodels.CandidateApplication, reason string, logger *log.Entry) {
	if i.notifier == nil {
		return
	}
	candidate, err := i.candidateStore.GetByID(spaceID, app.CandidateID)
	if err != nil || candidate == nil || candidate.Email == "" {
		logger.Warn("rejection notification skipped, candidate email unavailable")
		return
	}
	message := fmt.Sprintf("Dear %s, unfortunately your application was not successful. Reason: %s", candidate.GetFullName(), reason)
	if err := i.notifier.SendEMail(config.Conf.Smtp.FromEmail, candidate.Email, message, "Application update"); err != nil {
		logger.WithError(err).Warn("failed to send rejection notification")
	}
}

// SuggestNextStage computes the "move to next stage" affordance: the
// lowest-order active stage after the current one.
func (i impl) SuggestNextStage(spaceID, applicationID string) (*applicantapimodels.SuggestedStage, error) {
	app, err := i.appStore.GetByID(spaceID, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errors.New("application not found")
	}
	if app.CurrentStageID == nil || app.CurrentStage == nil {
		return nil, nil
	}
	stages, err := i.stageStore.List(spaceID, app.CurrentStage.WorkflowID)
	if err != nil {
		return nil, err
	}
	next := SuggestNext(stages, *app.CurrentStage)
	if next == nil {
		return nil, nil
	}
	return &applicantapimodels.SuggestedStage{
		StageID:    next.ID,
		Name:       next.Name,
		StageOrder: next.StageOrder,
		StageType:  next.StageType,
	}, nil
}
