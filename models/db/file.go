package dbmodels

// FileInfo describes an uploaded FILE custom-field value stored in S3.
type FileInfo struct {
	BaseSpaceModel
	ApplicationID string `gorm:"type:varchar(36);index"`
	CustomFieldID string `gorm:"type:varchar(36);index"`
	FileName      string `gorm:"type:varchar(255)"`
	ContentType   string `gorm:"type:varchar(255)"`
	Size          int64
}
