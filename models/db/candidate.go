package dbmodels

type Candidate struct {
	BaseSpaceModel
	FirstName string `gorm:"type:varchar(255)"`
	LastName  string `gorm:"type:varchar(255)"`
	Email     string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(255)"`
}

func (c Candidate) GetFullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	return c.FirstName + " " + c.LastName
}

type JobPosition struct {
	BaseSpaceModel
	Name      string `gorm:"type:varchar(255)"`
	CompanyID string `gorm:"type:varchar(36);index"`
	IsActive  bool   `gorm:"default:true"`
}
