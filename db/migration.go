package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "recruit-flow-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	tables := []struct {
		name  string
		model interface{}
	}{
		{"Phase", &dbmodels.Phase{}},
		{"Workflow", &dbmodels.Workflow{}},
		{"Stage", &dbmodels.Stage{}},
		{"CustomField", &dbmodels.CustomField{}},
		{"ValidationRule", &dbmodels.ValidationRule{}},
		{"Candidate", &dbmodels.Candidate{}},
		{"JobPosition", &dbmodels.JobPosition{}},
		{"CandidateApplication", &dbmodels.CandidateApplication{}},
		{"ApplicationHistoryEntry", &dbmodels.ApplicationHistoryEntry{}},
		{"StageAssignment", &dbmodels.StageAssignment{}},
		{"FileInfo", &dbmodels.FileInfo{}},
	}
	for _, table := range tables {
		if err := DB.AutoMigrate(table.model); err != nil {
			return errors.Wrapf(err, "failed to migrate %v", table.name)
		}
	}
	log.Info("migrations finished")
	return nil
}
