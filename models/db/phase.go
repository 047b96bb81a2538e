package dbmodels

import "recruit-flow-backend/models"

type Phase struct {
	BaseSpaceModel
	CompanyID    string              `gorm:"type:varchar(36);index"`
	Name         string              `gorm:"type:varchar(255)"`
	SortOrder    int                 `gorm:"index"`
	WorkflowType models.WorkflowType `gorm:"type:varchar(10)"`
	DefaultView  models.PhaseView    `gorm:"type:varchar(20)"`
	Status       models.PhaseStatus  `gorm:"type:varchar(20)"`
	Objective    string
}
