package dbmodels

import (
	"testing"

	"github.com/stretchr/testify/require"
	"recruit-flow-backend/models"
)

func stageOf(order int, stageType models.StageType) Stage {
	return Stage{
		StageOrder: order,
		StageType:  stageType,
	}
}

func TestCheckStageSet(t *testing.T) {
	t.Run("complete pipeline passes", func(t *testing.T) {
		require.NoError(t, CheckStageSet([]Stage{
			stageOf(1, models.StageTypeInitial),
			stageOf(2, models.StageTypeStandard),
			stageOf(3, models.StageTypeSuccess),
			stageOf(4, models.StageTypeFail),
		}))
	})

	t.Run("two INITIAL stages are refused", func(t *testing.T) {
		err := CheckStageSet([]Stage{
			stageOf(1, models.StageTypeInitial),
			stageOf(2, models.StageTypeInitial),
			stageOf(3, models.StageTypeSuccess),
		})
		require.Error(t, err)
		require.True(t, models.IsConfigurationError(err))
	})

	t.Run("two SUCCESS stages are refused", func(t *testing.T) {
		err := CheckStageSet([]Stage{
			stageOf(1, models.StageTypeInitial),
			stageOf(2, models.StageTypeSuccess),
			stageOf(3, models.StageTypeSuccess),
		})
		require.Error(t, err)
	})

	t.Run("STANDARD stage requires an INITIAL one", func(t *testing.T) {
		err := CheckStageSet([]Stage{
			stageOf(1, models.StageTypeStandard),
			stageOf(2, models.StageTypeSuccess),
		})
		require.Error(t, err)
	})

	t.Run("SUCCESS stage is mandatory", func(t *testing.T) {
		err := CheckStageSet([]Stage{
			stageOf(1, models.StageTypeInitial),
			stageOf(2, models.StageTypeStandard),
		})
		require.Error(t, err)
	})

	t.Run("duplicate orders are refused", func(t *testing.T) {
		err := CheckStageSet([]Stage{
			stageOf(1, models.StageTypeInitial),
			stageOf(1, models.StageTypeSuccess),
		})
		require.Error(t, err)
	})

	t.Run("success and fail only set is valid", func(t *testing.T) {
		require.NoError(t, CheckStageSet([]Stage{
			stageOf(1, models.StageTypeSuccess),
			stageOf(2, models.StageTypeFail),
		}))
	})
}
