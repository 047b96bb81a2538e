package applicantapimodels

import (
	"time"

	apimodels "recruit-flow-backend/models/api"
	dbmodels "recruit-flow-backend/models/db"
)

type HistoryFilter struct {
	apimodels.Pagination
	FromDate *time.Time `json:"from_date"`
	ToDate   *time.Time `json:"to_date"`
}

type HistoryView struct {
	ID          string    `json:"id"`
	FromStageID *string   `json:"from_stage_id,omitempty"`
	ToStageID   string    `json:"to_stage_id"`
	ChangedBy   string    `json:"changed_by"`
	ChangedAt   time.Time `json:"changed_at"`
	Notes       string    `json:"notes,omitempty"`
}

func HistoryConvert(rec dbmodels.ApplicationHistoryEntry) HistoryView {
	return HistoryView{
		ID:          rec.ID,
		FromStageID: rec.FromStageID,
		ToStageID:   rec.ToStageID,
		ChangedBy:   rec.ChangedBy,
		ChangedAt:   rec.ChangedAt,
		Notes:       rec.Notes,
	}
}
