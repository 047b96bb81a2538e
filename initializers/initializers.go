package initializers

import (
	"context"

	"recruit-flow-backend/config"
	"recruit-flow-backend/fiberlog"
	applicationhandler "recruit-flow-backend/lib/application"
	"recruit-flow-backend/lib/authz"
	xlsexport "recruit-flow-backend/lib/export/xls"
	fieldcatalog "recruit-flow-backend/lib/field-catalog"
	fieldproperties "recruit-flow-backend/lib/field-properties"
	filestorage "recruit-flow-backend/lib/file-storage"
	phasehandler "recruit-flow-backend/lib/phase"
	taskhandler "recruit-flow-backend/lib/task"
	transitionhandler "recruit-flow-backend/lib/transition"
	validationhandler "recruit-flow-backend/lib/validation"
	workflowhandler "recruit-flow-backend/lib/workflow"
	s3client "recruit-flow-backend/s3"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	filestorage.NewHandler(s3client.Client)
	phasehandler.NewHandler()
	workflowhandler.NewHandler()
	fieldcatalog.NewHandler()
	fieldproperties.NewHandler()
	validationhandler.NewHandler()
	authz.NewHandler()
	applicationhandler.NewHandler()
	transitionhandler.NewHandler()
	taskhandler.NewHandler()
	xlsexport.NewHandler()
}
