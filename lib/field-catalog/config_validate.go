package fieldcatalog

import (
	"regexp"
	"strings"

	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

var fieldKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// CheckFieldKey enforces the immutable identifier format.
func CheckFieldKey(fieldKey string) error {
	if !fieldKeyPattern.MatchString(fieldKey) {
		return models.NewConfigurationError("invalid field key %q: must match ^[a-z][a-z0-9_]*$", fieldKey)
	}
	return nil
}

// CheckFieldConfig validates the type-specific configuration schema at
// definition time, so evaluation never sees a malformed config.
func CheckFieldConfig(fieldType models.FieldType, config dbmodels.FieldConfig) error {
	if fieldType.HasOptions() {
		if len(config.Options) == 0 {
			return models.NewConfigurationError("%s field requires at least one option", fieldType)
		}
		seen := map[string]bool{}
		for _, option := range config.Options {
			if option.Value == "" {
				return models.NewConfigurationError("option value cannot be empty")
			}
			if seen[option.Value] {
				return models.NewConfigurationError("duplicate option value %q", option.Value)
			}
			seen[option.Value] = true
			if len(option.Labels) == 0 {
				return models.NewConfigurationError("option %q requires at least one localized label", option.Value)
			}
			for lang, label := range option.Labels {
				if lang == "" || label == "" {
					return models.NewConfigurationError("option %q has an empty label entry", option.Value)
				}
			}
		}
	} else if len(config.Options) > 0 {
		return models.NewConfigurationError("%s field cannot carry options", fieldType)
	}

	switch fieldType {
	case models.FieldTypeNumber, models.FieldTypeCurrency:
		if config.Min != nil && config.Max != nil && *config.Min > *config.Max {
			return models.NewConfigurationError("min cannot exceed max")
		}
	case models.FieldTypeFile:
		if config.MaxSizeMB < 0 {
			return models.NewConfigurationError("max file size cannot be negative")
		}
		for _, ext := range config.AllowedExtensions {
			if ext == "" || strings.ContainsAny(ext, "./\\") {
				return models.NewConfigurationError("invalid file extension %q", ext)
			}
		}
	default:
		if len(config.AllowedExtensions) > 0 || config.MaxSizeMB > 0 {
			return models.NewConfigurationError("file limits are only valid for FILE fields")
		}
	}
	return nil
}
