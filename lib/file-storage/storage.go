package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"recruit-flow-backend/config"
	"recruit-flow-backend/db"
	fieldstore "recruit-flow-backend/lib/field-catalog/store"
	filestore "recruit-flow-backend/lib/file-storage/store"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"
)

type Provider interface {
	// UploadFieldFile stores a FILE custom-field payload after checking
	// it against the field's allowed extensions and size limit.
	UploadFieldFile(ctx context.Context, spaceID, applicationID, fieldID, fileName, contentType string, fileReader io.Reader, fileSize int64) (fileID string, err error)
	GetFile(ctx context.Context, spaceID, fileID string) (*dbmodels.FileInfo, []byte, error)
}

var Instance Provider

func NewHandler(s3 *minio.Client) {
	Instance = impl{
		s3client:   s3,
		fieldStore: fieldstore.NewInstance(db.DB),
		fileStore:  filestore.NewInstance(db.DB),
	}
}

type impl struct {
	s3client   *minio.Client
	fieldStore fieldstore.Provider
	fileStore  filestore.Provider
}

func (i impl) UploadFieldFile(ctx context.Context, spaceID, applicationID, fieldID, fileName, contentType string, fileReader io.Reader, fileSize int64) (string, error) {
	field, err := i.fieldStore.GetByID(spaceID, fieldID)
	if err != nil {
		return "", err
	}
	if field == nil {
		return "", errors.New("field not found")
	}
	if field.FieldType != models.FieldTypeFile {
		return "", errors.New("field does not accept file values")
	}
	if err = checkFileLimits(field.FieldConfig, fileName, fileSize); err != nil {
		return "", err
	}
	rec := dbmodels.FileInfo{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		ApplicationID: applicationID,
		CustomFieldID: fieldID,
		FileName:      fileName,
		ContentType:   contentType,
		Size:          fileSize,
	}
	fileID, err := i.fileStore.Create(rec)
	if err != nil {
		return "", err
	}
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectName(spaceID, fileID), fileReader, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to store file in s3")
	}
	return fileID, nil
}

func (i impl) GetFile(ctx context.Context, spaceID, fileID string) (*dbmodels.FileInfo, []byte, error) {
	rec, err := i.fileStore.GetByID(spaceID, fileID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.New("file not found")
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, objectName(spaceID, fileID), minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to fetch file from s3")
	}
	defer object.Close()
	buf := bytes.Buffer{}
	if _, err = buf.ReadFrom(object); err != nil {
		return nil, nil, err
	}
	return rec, buf.Bytes(), nil
}

func checkFileLimits(cfg dbmodels.FieldConfig, fileName string, fileSize int64) error {
	if cfg.MaxSizeMB > 0 && fileSize > cfg.MaxSizeMB*1024*1024 {
		return errors.Errorf("file exceeds the %dMB limit", cfg.MaxSizeMB)
	}
	if len(cfg.AllowedExtensions) == 0 {
		return nil
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	for _, allowed := range cfg.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return errors.Errorf("file extension %q is not allowed", ext)
}

func objectName(spaceID, fileID string) string {
	return fmt.Sprintf("%s/%s", spaceID, fileID)
}
