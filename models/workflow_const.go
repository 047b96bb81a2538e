package models

type WorkflowStatus string

const (
	WorkflowStatusActive   WorkflowStatus = "ACTIVE"
	WorkflowStatusInactive WorkflowStatus = "INACTIVE"
	WorkflowStatusArchived WorkflowStatus = "ARCHIVED"
)

func (s WorkflowStatus) IsValid() bool {
	switch s {
	case WorkflowStatusActive, WorkflowStatusInactive, WorkflowStatusArchived:
		return true
	}
	return false
}

type WorkflowType string

const (
	WorkflowTypeCandidate WorkflowType = "CA"
	WorkflowTypePosition  WorkflowType = "PO"
	WorkflowTypeCompany   WorkflowType = "CO"
)

func (t WorkflowType) IsValid() bool {
	return t == WorkflowTypeCandidate || t == WorkflowTypePosition || t == WorkflowTypeCompany
}

type StageType string

const (
	StageTypeInitial  StageType = "INITIAL"
	StageTypeStandard StageType = "STANDARD"
	StageTypeSuccess  StageType = "SUCCESS"
	StageTypeFail     StageType = "FAIL"
)

func (t StageType) IsValid() bool {
	switch t {
	case StageTypeInitial, StageTypeStandard, StageTypeSuccess, StageTypeFail:
		return true
	}
	return false
}

// IsTerminal reports whether entering a stage of this type ends the
// current phase for the application.
func (t StageType) IsTerminal() bool {
	return t == StageTypeSuccess || t == StageTypeFail
}

type KanbanDisplay string

const (
	KanbanDisplayColumn KanbanDisplay = "COLUMN"
	KanbanDisplayRow    KanbanDisplay = "ROW"
	KanbanDisplayNone   KanbanDisplay = "NONE"
)

type PhaseStatus string

const (
	PhaseStatusDraft    PhaseStatus = "DRAFT"
	PhaseStatusActive   PhaseStatus = "ACTIVE"
	PhaseStatusArchived PhaseStatus = "ARCHIVED"
)

func (s PhaseStatus) IsValid() bool {
	switch s {
	case PhaseStatusDraft, PhaseStatusActive, PhaseStatusArchived:
		return true
	}
	return false
}

type PhaseView string

const (
	PhaseViewKanban PhaseView = "KANBAN"
	PhaseViewList   PhaseView = "LIST"
)
