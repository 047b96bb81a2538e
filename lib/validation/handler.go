package validation

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"recruit-flow-backend/db"
	fieldstore "recruit-flow-backend/lib/field-catalog/store"
	rulestore "recruit-flow-backend/lib/validation/rule-store"
	stagestore "recruit-flow-backend/lib/workflow/stage-store"
	"recruit-flow-backend/models"
	validationapimodels "recruit-flow-backend/models/api/validation"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	CreateRule(spaceID string, data validationapimodels.RuleData) (id string, err error)
	UpdateRule(spaceID, id string, data validationapimodels.RuleData) error
	GetRule(spaceID, id string) (validationapimodels.RuleView, error)
	ListStageRules(spaceID, stageID string) ([]validationapimodels.RuleView, error)
	DeleteRule(spaceID, id string) error
	EvaluateStage(spaceID string, req validationapimodels.EvaluateRequest) (validationapimodels.ValidationResult, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      rulestore.NewInstance(db.DB),
		fieldStore: fieldstore.NewInstance(db.DB),
		stageStore: stagestore.NewInstance(db.DB),
	}
}

type impl struct {
	store      rulestore.Provider
	fieldStore fieldstore.Provider
	stageStore stagestore.Provider
}

func (i impl) GetLogger(spaceID, stageID string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("stage_id", stageID)
}

// checkRuleParams cross-validates rule parameters at definition time.
// Evaluation assumes these checks have passed and never re-raises them.
func checkRuleParams(data validationapimodels.RuleData) error {
	if data.RuleType == models.RuleTypeComparePositionField {
		if data.PositionFieldPath == "" {
			return models.NewConfigurationError("COMPARE_POSITION_FIELD rule requires position_field_path")
		}
		if !data.ComparisonValue.IsEmpty() {
			return models.NewConfigurationError("COMPARE_POSITION_FIELD rule cannot carry a static comparison_value")
		}
	} else {
		if data.PositionFieldPath != "" {
			return models.NewConfigurationError("position_field_path is only valid for COMPARE_POSITION_FIELD rules")
		}
		if data.ComparisonValue.IsEmpty() {
			return models.NewConfigurationError("comparison_value is required for %s rules", data.RuleType)
		}
		cv := data.ComparisonValue
		switch cv.Kind {
		case dbmodels.ComparisonScalar:
			if cv.Scalar == nil {
				return models.NewConfigurationError("scalar comparison_value is empty")
			}
		case dbmodels.ComparisonRange:
			if cv.Min == nil || cv.Max == nil {
				return models.NewConfigurationError("range comparison_value requires min and max")
			}
			if *cv.Min > *cv.Max {
				return models.NewConfigurationError("range comparison_value min exceeds max")
			}
			if !data.Operator.IsRange() {
				return models.NewConfigurationError("range comparison_value requires IN_RANGE or OUT_RANGE")
			}
		case dbmodels.ComparisonList:
			if len(cv.List) == 0 {
				return models.NewConfigurationError("list comparison_value is empty")
			}
		default:
			return models.NewConfigurationError("unknown comparison_value kind %q", cv.Kind)
		}
		if data.Operator.IsRange() && cv.Kind == dbmodels.ComparisonScalar {
			return models.NewConfigurationError("IN_RANGE/OUT_RANGE require a [min,max] comparison_value")
		}
	}
	if data.AutoReject && data.RejectionReason == "" {
		return models.NewConfigurationError("auto-reject rule requires rejection_reason")
	}
	return nil
}

func (i impl) CreateRule(spaceID string, data validationapimodels.RuleData) (string, error) {
	if err := checkRuleParams(data); err != nil {
		return "", err
	}
	field, err := i.fieldStore.GetByID(spaceID, data.CustomFieldID)
	if err != nil {
		return "", err
	}
	if field == nil {
		return "", errors.New("custom field not found")
	}
	stage, err := i.stageStore.GetByID(spaceID, data.StageID)
	if err != nil {
		return "", err
	}
	if stage == nil {
		return "", errors.New("stage not found")
	}
	rec := dbmodels.ValidationRule{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		CustomFieldID:     data.CustomFieldID,
		StageID:           data.StageID,
		RuleType:          data.RuleType,
		Operator:          data.Operator,
		PositionFieldPath: data.PositionFieldPath,
		ComparisonValue:   data.ComparisonValue,
		Severity:          data.Severity,
		ValidationMessage: data.ValidationMessage,
		AutoReject:        data.AutoReject,
		RejectionReason:   data.RejectionReason,
		IsActive:          data.IsActive,
	}
	return i.store.Create(rec)
}

func (i impl) UpdateRule(spaceID, id string, data validationapimodels.RuleData) error {
	if err := checkRuleParams(data); err != nil {
		return err
	}
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("validation rule not found")
	}
	updMap := map[string]interface{}{
		"rule_type":           data.RuleType,
		"operator":            data.Operator,
		"position_field_path": data.PositionFieldPath,
		"comparison_value":    data.ComparisonValue,
		"severity":            data.Severity,
		"validation_message":  data.ValidationMessage,
		"auto_reject":         data.AutoReject,
		"rejection_reason":    data.RejectionReason,
		"is_active":           data.IsActive,
	}
	return i.store.Update(spaceID, id, updMap)
}

func (i impl) GetRule(spaceID, id string) (validationapimodels.RuleView, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return validationapimodels.RuleView{}, err
	}
	if rec == nil {
		return validationapimodels.RuleView{}, errors.New("validation rule not found")
	}
	return validationapimodels.RuleConvert(*rec), nil
}

func (i impl) ListStageRules(spaceID, stageID string) ([]validationapimodels.RuleView, error) {
	list, err := i.store.ListActiveByStage(spaceID, stageID)
	if err != nil {
		return nil, err
	}
	result := make([]validationapimodels.RuleView, 0, len(list))
	for _, rec := range list {
		result = append(result, validationapimodels.RuleConvert(rec))
	}
	return result, nil
}

func (i impl) DeleteRule(spaceID, id string) error {
	return i.store.Delete(spaceID, id)
}

// EvaluateStage loads the stage's active rules and evaluates them
// against the supplied snapshots. Persisting a resulting rejection is
// the caller's concern.
func (i impl) EvaluateStage(spaceID string, req validationapimodels.EvaluateRequest) (validationapimodels.ValidationResult, error) {
	rules, err := i.store.ListActiveByStage(spaceID, req.StageID)
	if err != nil {
		return validationapimodels.ValidationResult{}, err
	}
	return EvaluateRules(rules, req.CandidateValues, req.PositionValues), nil
}
