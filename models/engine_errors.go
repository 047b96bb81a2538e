package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// TransitionReason is the machine-readable cause of a refused stage transition.
type TransitionReason string

const (
	ReasonWrongWorkflow         TransitionReason = "wrong_workflow"
	ReasonInactiveTarget        TransitionReason = "inactive_target"
	ReasonPermissionDenied      TransitionReason = "permission_denied"
	ReasonMissingRequiredFields TransitionReason = "missing_required_fields"
	ReasonValidationErrors      TransitionReason = "validation_errors"
	ReasonTerminalApplication   TransitionReason = "terminal_application"
)

type InvalidTransitionError struct {
	Reason  TransitionReason
	Details string
}

func (e *InvalidTransitionError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("invalid transition: %s", e.Reason)
	}
	return fmt.Sprintf("invalid transition: %s (%s)", e.Reason, e.Details)
}

func NewInvalidTransition(reason TransitionReason, details string) error {
	return &InvalidTransitionError{Reason: reason, Details: details}
}

// AsInvalidTransition unwraps an InvalidTransitionError if err carries one.
func AsInvalidTransition(err error) (*InvalidTransitionError, bool) {
	var target *InvalidTransitionError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

var (
	// ErrAlreadyClaimed is returned when a claim loses the compare-and-set
	// race or the task is already in progress.
	ErrAlreadyClaimed = errors.New("task is already claimed")
	// ErrNotClaimed is returned when unclaim finds no active claim to release.
	ErrNotClaimed = errors.New("task is not claimed")
)

// ConfigurationError marks definition-time failures: malformed field
// config, duplicate field keys, missing rule parameters. These are
// raised when fields and rules are defined, never during evaluation.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
