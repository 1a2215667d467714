package worklogs_testing

import (
	"time"

	worklogs_enums "pmtrack/internal/features/worklogs/enums"
	worklogs_models "pmtrack/internal/features/worklogs/models"
	worklogs_repositories "pmtrack/internal/features/worklogs/repositories"

	"github.com/google/uuid"
)

// CreateTestWorklog stores an entry without any access checks. A non-nil
// delegateID makes it a delegated entry.
func CreateTestWorklog(
	projectID uuid.UUID,
	beneficiaryID uuid.UUID,
	delegateID *uuid.UUID,
	date time.Time,
	hours float64,
	taskType string,
) *worklogs_models.Worklog {
	worklog := &worklogs_models.Worklog{
		ProjectID:   projectID,
		Date:        date,
		HoursWorked: hours,
		Description: "test work",
		TaskType:    taskType,
		Status:      worklogs_enums.WorklogStatusSubmitted,
	}

	if delegateID != nil {
		worklog.SetAttribution(worklogs_models.Delegated(beneficiaryID, *delegateID))
	} else {
		worklog.SetAttribution(worklogs_models.Direct(beneficiaryID))
	}

	if err := (&worklogs_repositories.WorklogRepository{}).CreateWorklog(worklog); err != nil {
		panic(err)
	}

	return worklog
}
