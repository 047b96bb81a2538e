package models

type EntityKind string

const (
	EntityKindWorkflow    EntityKind = "WORKFLOW"
	EntityKindCandidate   EntityKind = "CANDIDATE"
	EntityKindApplication EntityKind = "APPLICATION"
	EntityKindPosition    EntityKind = "POSITION"
)

func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindWorkflow, EntityKindCandidate, EntityKindApplication, EntityKindPosition:
		return true
	}
	return false
}

// EntityRef is a polymorphic owner reference for custom fields,
// so the field catalog stays kind-agnostic.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}

type FieldType string

const (
	FieldTypeText        FieldType = "TEXT"
	FieldTypeTextarea    FieldType = "TEXTAREA"
	FieldTypeNumber      FieldType = "NUMBER"
	FieldTypeCurrency    FieldType = "CURRENCY"
	FieldTypeDate        FieldType = "DATE"
	FieldTypeDropdown    FieldType = "DROPDOWN"
	FieldTypeMultiSelect FieldType = "MULTI_SELECT"
	FieldTypeRadio       FieldType = "RADIO"
	FieldTypeCheckbox    FieldType = "CHECKBOX"
	FieldTypeFile        FieldType = "FILE"
	FieldTypeURL         FieldType = "URL"
	FieldTypeEmail       FieldType = "EMAIL"
	FieldTypePhone       FieldType = "PHONE"
)

func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeCurrency, FieldTypeDate,
		FieldTypeDropdown, FieldTypeMultiSelect, FieldTypeRadio, FieldTypeCheckbox,
		FieldTypeFile, FieldTypeURL, FieldTypeEmail, FieldTypePhone:
		return true
	}
	return false
}

// HasOptions reports whether the field type is configured with a fixed option list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeDropdown || t == FieldTypeMultiSelect || t == FieldTypeRadio
}

type Audience string

const (
	AudienceCompany   Audience = "COMPANY"
	AudienceCandidate Audience = "CANDIDATE"
)

func (a Audience) IsValid() bool {
	return a == AudienceCompany || a == AudienceCandidate
}
