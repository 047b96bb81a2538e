package fieldcatalog

import (
	"testing"

	"github.com/stretchr/testify/require"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

func TestCheckFieldKey(t *testing.T) {
	for _, valid := range []string{"expected_salary", "a", "field2", "years_of_exp_10"} {
		require.NoError(t, CheckFieldKey(valid), valid)
	}
	for _, invalid := range []string{"", "Salary", "2field", "_salary", "field-name", "field name", "поле"} {
		err := CheckFieldKey(invalid)
		require.Error(t, err, invalid)
		require.True(t, models.IsConfigurationError(err))
	}
}

func TestCheckFieldConfig(t *testing.T) {
	option := func(value string) dbmodels.FieldOption {
		return dbmodels.FieldOption{
			Value:  value,
			Labels: map[string]string{"en": value},
		}
	}

	t.Run("dropdown requires options", func(t *testing.T) {
		err := CheckFieldConfig(models.FieldTypeDropdown, dbmodels.FieldConfig{})
		require.Error(t, err)

		err = CheckFieldConfig(models.FieldTypeDropdown, dbmodels.FieldConfig{
			Options: []dbmodels.FieldOption{option("remote"), option("office")},
		})
		require.NoError(t, err)
	})

	t.Run("duplicate option values are refused", func(t *testing.T) {
		err := CheckFieldConfig(models.FieldTypeMultiSelect, dbmodels.FieldConfig{
			Options: []dbmodels.FieldOption{option("go"), option("go")},
		})
		require.Error(t, err)
	})

	t.Run("options need localized labels", func(t *testing.T) {
		err := CheckFieldConfig(models.FieldTypeRadio, dbmodels.FieldConfig{
			Options: []dbmodels.FieldOption{{Value: "yes"}},
		})
		require.Error(t, err)
	})

	t.Run("scalar types cannot carry options", func(t *testing.T) {
		err := CheckFieldConfig(models.FieldTypeText, dbmodels.FieldConfig{
			Options: []dbmodels.FieldOption{option("x")},
		})
		require.Error(t, err)
	})

	t.Run("number bounds must be ordered", func(t *testing.T) {
		min, max := 10.0, 5.0
		err := CheckFieldConfig(models.FieldTypeNumber, dbmodels.FieldConfig{Min: &min, Max: &max})
		require.Error(t, err)

		min, max = 5.0, 10.0
		require.NoError(t, CheckFieldConfig(models.FieldTypeNumber, dbmodels.FieldConfig{Min: &min, Max: &max}))
	})

	t.Run("file extension format", func(t *testing.T) {
		err := CheckFieldConfig(models.FieldTypeFile, dbmodels.FieldConfig{
			AllowedExtensions: []string{".pdf"},
		})
		require.Error(t, err)

		require.NoError(t, CheckFieldConfig(models.FieldTypeFile, dbmodels.FieldConfig{
			AllowedExtensions: []string{"pdf", "docx"},
			MaxSizeMB:         10,
		}))
	})

	t.Run("file limits are refused on other types", func(t *testing.T) {
		err := CheckFieldConfig(models.FieldTypeText, dbmodels.FieldConfig{MaxSizeMB: 5})
		require.Error(t, err)
	})
}
