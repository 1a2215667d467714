package worklogs_services

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	projects_models "pmtrack/internal/features/projects/models"
	worklogs_enums "pmtrack/internal/features/worklogs/enums"
	worklogs_models "pmtrack/internal/features/worklogs/models"
	errors_utils "pmtrack/internal/util/errors"
	time_utils "pmtrack/internal/util/time"
)

// absorbs float noise such as 0.1+0.2, never a real third decimal
const hoursPrecisionTolerance = 1e-9

// worklogFields is one row after parsing, before attribution is known
type worklogFields struct {
	hours       float64
	description string
	taskType    string
	status      worklogs_enums.WorklogStatus
}

func validateFields(hours float64, description, taskType string, status worklogs_enums.WorklogStatus) (*worklogFields, error) {
	if math.IsNaN(hours) || hours < worklogs_models.MinHours || hours > worklogs_models.MaxHours {
		return nil, errors_utils.NewValidationError(
			"INVALID_HOURS",
			fmt.Sprintf("hours must be between %s and %s",
				time_utils.FormatHours(worklogs_models.MinHours), time_utils.FormatHours(worklogs_models.MaxHours)),
			"hoursWorked",
		)
	}

	rounded := time_utils.RoundHours(hours)
	if math.Abs(hours-rounded) > hoursPrecisionTolerance {
		return nil, errors_utils.NewValidationError(
			"INVALID_HOURS",
			"hours must have at most 2 decimal places",
			"hoursWorked",
		)
	}
	hours = rounded

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors_utils.NewValidationError("INVALID_DESCRIPTION", "description is required", "description")
	}
	if utf8.RuneCountInString(description) > worklogs_models.MaxDescriptionLength {
		return nil, errors_utils.NewValidationError(
			"INVALID_DESCRIPTION",
			fmt.Sprintf("description must be at most %d characters", worklogs_models.MaxDescriptionLength),
			"description",
		)
	}

	taskType = strings.TrimSpace(taskType)
	if utf8.RuneCountInString(taskType) > worklogs_models.MaxTaskTypeLength {
		return nil, errors_utils.NewValidationError(
			"INVALID_TASK_TYPE",
			fmt.Sprintf("task type must be at most %d characters", worklogs_models.MaxTaskTypeLength),
			"taskType",
		)
	}

	if status == "" {
		status = worklogs_enums.WorklogStatusSubmitted
	}
	if !status.IsValid() {
		return nil, errors_utils.NewValidationError("INVALID_STATUS", "unknown worklog status", "status")
	}

	return &worklogFields{
		hours:       hours,
		description: description,
		taskType:    taskType,
		status:      status,
	}, nil
}

// validateDate rejects future days and days outside the project's schedule
func validateDate(value string, project *projects_models.Project, now time.Time) (time.Time, error) {
	date, err := time_utils.ParseDate(value)
	if err != nil {
		return time.Time{}, errors_utils.NewValidationError("INVALID_DATE", err.Error(), "date")
	}

	if date.After(time_utils.TruncateToDay(now)) {
		return time.Time{}, errors_utils.NewValidationError("INVALID_DATE", "date cannot be in the future", "date")
	}

	if date.Before(time_utils.TruncateToDay(project.StartDate)) ||
		(project.EndDate != nil && date.After(time_utils.TruncateToDay(*project.EndDate))) {
		return time.Time{}, errors_utils.NewValidationError(
			"DATE_OUTSIDE_PROJECT",
			"date is outside the project schedule",
			"date",
		)
	}

	return date, nil
}
