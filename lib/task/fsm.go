package task

import (
	"github.com/qmuntal/stateless"
	"recruit-flow-backend/models"
)

const (
	triggerClaim    = "claim"
	triggerUnclaim  = "unclaim"
	triggerComplete = "complete"
	triggerBlock    = "block"
)

// newTaskMachine describes the claim state machine:
// PENDING -> IN_PROGRESS -> {COMPLETED, BLOCKED}, with unclaim as the
// back edge. The machine only answers legality questions; the actual
// flip is a compare-and-set in the store.
func newTaskMachine(current models.TaskStatus) *stateless.StateMachine {
	sm := stateless.NewStateMachine(current)
	sm.Configure(models.TaskStatusPending).
		Permit(triggerClaim, models.TaskStatusInProgress)
	sm.Configure(models.TaskStatusInProgress).
		Permit(triggerUnclaim, models.TaskStatusPending).
		Permit(triggerComplete, models.TaskStatusCompleted).
		Permit(triggerBlock, models.TaskStatusBlocked)
	sm.Configure(models.TaskStatusCompleted)
	sm.Configure(models.TaskStatusBlocked)
	return sm
}

func canFire(current models.TaskStatus, trigger string) bool {
	ok, err := newTaskMachine(current).CanFire(trigger)
	return err == nil && ok
}
