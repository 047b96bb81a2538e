package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	taskapimodels "recruit-flow-backend/models/api/task"
)

type Provider interface {
	ExportTaskList(list []taskapimodels.TaskView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var taskHeaders = []string{"Application", "Candidate", "Position", "Stage", "Status", "Claimed by", "Deadline", "Overdue", "Priority score", "Priority"}

func (i impl) ExportTaskList(list []taskapimodels.TaskView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, taskHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		if err = writeTaskData(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Tasks")
	return f.WriteToBuffer()
}

func writeTaskData(f *excelize.File, sheet string, list []taskapimodels.TaskView, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(taskHeaders), len(list)+1); err != nil {
		return err
	}
	for _, item := range list {
		row++
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ApplicationID); err != nil {
			return err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.CandidateID); err != nil {
			return err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.JobPositionID); err != nil {
			return err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.StageName); err != nil {
			return err
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.TaskStatus)); err != nil {
			return err
		}

		col++
		claimedBy := ""
		if item.ClaimedBy != nil {
			claimedBy = *item.ClaimedBy
		}
		if err := writeColumn(f, sheet, col, row, claimedBy); err != nil {
			return err
		}

		col++
		deadline := ""
		if item.StageDeadline != nil {
			deadline = item.StageDeadline.Format("2006-01-02 15:04")
		}
		if err := writeColumn(f, sheet, col, row, deadline); err != nil {
			return err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.IsOverdue); err != nil {
			return err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.PriorityScore); err != nil {
			return err
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.PriorityLevel)); err != nil {
			return err
		}
	}
	return nil
}
