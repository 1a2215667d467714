package summaries

import (
	"testing"
	"time"

	worklogs_models "pmtrack/internal/features/worklogs/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func worklogFor(attribution worklogs_models.Attribution, day int, hours float64, taskType string) *worklogs_models.Worklog {
	worklog := &worklogs_models.Worklog{
		ID:          uuid.New(),
		ProjectID:   uuid.New(),
		Date:        time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC),
		HoursWorked: hours,
		TaskType:    taskType,
	}
	worklog.SetAttribution(attribution)

	return worklog
}

func Test_BuildSummaryText_WithDirectAndDelegatedWork_RendersBothSections(t *testing.T) {
	beneficiary := uuid.New()
	delegate := uuid.New()
	direct := worklogs_models.Direct(beneficiary)
	delegated := worklogs_models.Delegated(beneficiary, delegate)

	text, total := BuildSummaryText(
		[]*worklogs_models.Worklog{
			worklogFor(direct, 3, 2, "Development"),
			worklogFor(direct, 4, 3, "Testing"),
			worklogFor(direct, 5, 1.5, "Development"),
		},
		[]*worklogs_models.Worklog{
			worklogFor(delegated, 10, 4, "Support"),
			worklogFor(delegated, 11, 2, "Development"),
		},
	)

	assert.Equal(t, 12.5, total)
	assert.Equal(t,
		"Total hours worked: 12.5\n\n"+
			"Direct work: 6.5 hours\n"+
			"Shadow resource work: 6 hours\n\n"+
			"Task breakdown:\n"+
			"- Development: 5.5 hours (3 entries)\n"+
			"- Testing: 3 hours (1 entries)\n"+
			"- Support: 4 hours (1 entries)\n",
		text,
	)
}

func Test_BuildSummaryText_WithDirectWorkOnly_OmitsSplit(t *testing.T) {
	direct := worklogs_models.Direct(uuid.New())

	text, total := BuildSummaryText(
		[]*worklogs_models.Worklog{worklogFor(direct, 3, 7.25, "Review")},
		nil,
	)

	assert.Equal(t, 7.25, total)
	assert.Equal(t, "Total hours worked: 7.25\n\nTask breakdown:\n- Review: 7.25 hours (1 entries)\n", text)
}

func Test_BuildSummaryText_WithoutTaskTypes_SkipsBreakdown(t *testing.T) {
	direct := worklogs_models.Direct(uuid.New())

	text, total := BuildSummaryText(
		[]*worklogs_models.Worklog{worklogFor(direct, 3, 1, ""), worklogFor(direct, 4, 2, "")},
		nil,
	)

	assert.Equal(t, 3.0, total)
	assert.Equal(t, "Total hours worked: 3\n\n", text)
}

func Test_BuildSummaryText_SumsWithoutFloatDrift(t *testing.T) {
	direct := worklogs_models.Direct(uuid.New())

	worklogs := make([]*worklogs_models.Worklog, 0, 10)
	for day := 1; day <= 10; day++ {
		worklogs = append(worklogs, worklogFor(direct, day, 0.1, "Admin"))
	}

	text, total := BuildSummaryText(worklogs, nil)

	assert.Equal(t, 1.0, total)
	assert.Contains(t, text, "- Admin: 1 hours (10 entries)")
}
