package summaries

import (
	"fmt"
	"strings"

	worklogs_models "pmtrack/internal/features/worklogs/models"
	time_utils "pmtrack/internal/util/time"
)

type taskTotal struct {
	taskType string
	hours    float64
	entries  int
}

// BuildSummaryText renders one beneficiary's month. Both slices must already
// be ordered by date then creation time. Task types are listed in the order
// they first appear, direct entries before delegated ones; entries without a
// task type count towards the totals only.
func BuildSummaryText(direct, delegated []*worklogs_models.Worklog) (string, float64) {
	directHours := sumHours(direct)
	delegatedHours := sumHours(delegated)
	totalHours := time_utils.RoundHours(directHours + delegatedHours)

	var text strings.Builder
	fmt.Fprintf(&text, "Total hours worked: %s\n\n", time_utils.FormatHours(totalHours))

	if directHours > 0 && delegatedHours > 0 {
		fmt.Fprintf(&text, "Direct work: %s hours\nShadow resource work: %s hours\n\n",
			time_utils.FormatHours(directHours), time_utils.FormatHours(delegatedHours))
	}

	tasks := groupByTaskType(append(append([]*worklogs_models.Worklog{}, direct...), delegated...))
	if len(tasks) > 0 {
		text.WriteString("Task breakdown:\n")
		for _, task := range tasks {
			fmt.Fprintf(&text, "- %s: %s hours (%d entries)\n", task.taskType, time_utils.FormatHours(task.hours), task.entries)
		}
	}

	return text.String(), totalHours
}

func sumHours(worklogs []*worklogs_models.Worklog) float64 {
	total := 0.0
	for _, worklog := range worklogs {
		total += worklog.HoursWorked
	}

	return time_utils.RoundHours(total)
}

func groupByTaskType(worklogs []*worklogs_models.Worklog) []*taskTotal {
	index := make(map[string]*taskTotal)
	tasks := make([]*taskTotal, 0)

	for _, worklog := range worklogs {
		if worklog.TaskType == "" {
			continue
		}

		task, ok := index[worklog.TaskType]
		if !ok {
			task = &taskTotal{taskType: worklog.TaskType}
			index[worklog.TaskType] = task
			tasks = append(tasks, task)
		}

		task.hours = time_utils.RoundHours(task.hours + worklog.HoursWorked)
		task.entries++
	}

	return tasks
}
