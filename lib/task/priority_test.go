package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

var clock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func appInStage(enteredAgo time.Duration, deadlineIn *time.Duration) dbmodels.CandidateApplication {
	entered := clock.Add(-enteredAgo)
	app := dbmodels.CandidateApplication{
		StageEnteredAt: &entered,
	}
	if deadlineIn != nil {
		deadline := clock.Add(*deadlineIn)
		app.StageDeadline = &deadline
	}
	return app
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

func TestUrgencyScore(t *testing.T) {
	require.Equal(t, 0, urgencyScore(appInStage(0, nil), clock))
	require.Equal(t, 10, urgencyScore(appInStage(0, durationPtr(10*24*time.Hour)), clock))
	require.Equal(t, 25, urgencyScore(appInStage(0, durationPtr(5*24*time.Hour)), clock))
	require.Equal(t, 40, urgencyScore(appInStage(0, durationPtr(48*time.Hour)), clock))
	require.Equal(t, 50, urgencyScore(appInStage(0, durationPtr(12*time.Hour)), clock))
	require.Equal(t, 60, urgencyScore(appInStage(0, durationPtr(-time.Hour)), clock))
}

func TestStageWeight(t *testing.T) {
	stages := []dbmodels.Stage{
		{StageOrder: 1, StageType: models.StageTypeInitial},
		{StageOrder: 2, StageType: models.StageTypeStandard},
		{StageOrder: 3, StageType: models.StageTypeStandard},
		{StageOrder: 4, StageType: models.StageTypeSuccess},
	}

	require.Equal(t, 10, stageWeight(stages[0], stages))
	require.Equal(t, 20, stageWeight(stages[1], stages))
	require.Equal(t, 30, stageWeight(stages[2], stages))
	require.Equal(t, 40, stageWeight(stages[3], stages))

	t.Run("single stage workflow has no weight", func(t *testing.T) {
		only := []dbmodels.Stage{{StageOrder: 1, StageType: models.StageTypeInitial}}
		require.Equal(t, 0, stageWeight(only[0], only))
	})
}

func TestAgeScore(t *testing.T) {
	require.Equal(t, 0, ageScore(appInStage(12*time.Hour, nil), clock))
	require.Equal(t, 10, ageScore(appInStage(2*24*time.Hour, nil), clock))
	require.Equal(t, 50, ageScore(appInStage(30*24*time.Hour, nil), clock))
}

func TestPriorityScore(t *testing.T) {
	stages := []dbmodels.Stage{
		{StageOrder: 1, StageType: models.StageTypeInitial},
		{StageOrder: 2, StageType: models.StageTypeStandard},
	}

	t.Run("components add up", func(t *testing.T) {
		app := appInStage(2*24*time.Hour, durationPtr(12*time.Hour))
		// urgency 50 + weight 40*2/2=40 + age 10
		require.Equal(t, 100, PriorityScore(app, stages[1], stages, clock))
	})

	t.Run("score is capped", func(t *testing.T) {
		terminal := dbmodels.Stage{StageOrder: 5, StageType: models.StageTypeFail}
		app := appInStage(40*24*time.Hour, durationPtr(-time.Hour))
		// urgency 60 + weight 40 + age 50 = 150, already the cap
		require.Equal(t, 150, PriorityScore(app, terminal, stages, clock))
	})
}

func TestPriorityLevel(t *testing.T) {
	require.Equal(t, models.PriorityLow, PriorityLevel(0))
	require.Equal(t, models.PriorityLow, PriorityLevel(29))
	require.Equal(t, models.PriorityMedium, PriorityLevel(30))
	require.Equal(t, models.PriorityHigh, PriorityLevel(70))
	require.Equal(t, models.PriorityCritical, PriorityLevel(110))
	require.Equal(t, models.PriorityCritical, PriorityLevel(150))
}

func TestTaskMachine(t *testing.T) {
	t.Run("pending can only be claimed", func(t *testing.T) {
		require.True(t, canFire(models.TaskStatusPending, triggerClaim))
		require.False(t, canFire(models.TaskStatusPending, triggerUnclaim))
		require.False(t, canFire(models.TaskStatusPending, triggerComplete))
		require.False(t, canFire(models.TaskStatusPending, triggerBlock))
	})

	t.Run("in progress allows unclaim, complete and block", func(t *testing.T) {
		require.True(t, canFire(models.TaskStatusInProgress, triggerUnclaim))
		require.True(t, canFire(models.TaskStatusInProgress, triggerComplete))
		require.True(t, canFire(models.TaskStatusInProgress, triggerBlock))
		require.False(t, canFire(models.TaskStatusInProgress, triggerClaim))
	})

	t.Run("terminal task states allow nothing", func(t *testing.T) {
		for _, trigger := range []string{triggerClaim, triggerUnclaim, triggerComplete, triggerBlock} {
			require.False(t, canFire(models.TaskStatusCompleted, trigger))
			require.False(t, canFire(models.TaskStatusBlocked, trigger))
		}
	})
}
