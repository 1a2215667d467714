package summaries

import (
	"context"
	"errors"
	"testing"
	"time"

	projects_services "pmtrack/internal/features/projects/services"
	projects_testing "pmtrack/internal/features/projects/testing"
	users_enums "pmtrack/internal/features/users/enums"
	users_models "pmtrack/internal/features/users/models"
	users_testing "pmtrack/internal/features/users/testing"
	worklogs_testing "pmtrack/internal/features/worklogs/testing"
	errors_utils "pmtrack/internal/util/errors"
	"pmtrack/internal/storage"
	"pmtrack/internal/util/locks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type summaryFixture struct {
	projectID    uuid.UUID
	admin        *users_models.User
	beneficiary  *users_models.User
	teammate     *users_models.User
	delegate     *users_models.User
	delegationID uuid.UUID
	year         int
	month        int
}

// newSummaryFixture logs last month's work: the beneficiary 5h direct, the
// delegate 3h on their behalf, and the teammate 2h.
func newSummaryFixture(t *testing.T) summaryFixture {
	t.Helper()

	project := projects_testing.CreateTestProject("Summaries " + uuid.NewString()[:8])
	admin := users_testing.CreateTestUserModel(users_enums.UserRoleAdmin)
	beneficiary := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	teammate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)

	projects_testing.AssignTestUser(project.ID, beneficiary.ID)
	projects_testing.AssignTestUser(project.ID, teammate.ID)
	delegation := projects_testing.DelegateTestUser(project.ID, delegate.ID, beneficiary.ID)

	now := time.Now().UTC()
	lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	worklogs_testing.CreateTestWorklog(project.ID, beneficiary.ID, nil, lastMonth, 5, "Development")
	worklogs_testing.CreateTestWorklog(project.ID, beneficiary.ID, &delegate.ID, lastMonth.AddDate(0, 0, 1), 3, "Support")
	worklogs_testing.CreateTestWorklog(project.ID, teammate.ID, nil, lastMonth.AddDate(0, 0, 2), 2, "Testing")

	return summaryFixture{
		projectID:    project.ID,
		admin:        admin,
		beneficiary:  beneficiary,
		teammate:     teammate,
		delegate:     delegate,
		delegationID: delegation.ID,
		year:         lastMonth.Year(),
		month:        int(lastMonth.Month()),
	}
}

func summaryOf(summaries []*MonthlySummary, userID uuid.UUID) *MonthlySummary {
	for _, summary := range summaries {
		if summary.UserID == userID {
			return summary
		}
	}

	return nil
}

func Test_Generate_WithShadowWork_SummarizesEveryBeneficiary(t *testing.T) {
	f := newSummaryFixture(t)

	summaries, err := GetSummaryService().Generate(context.Background(), f.projectID, f.year, f.month, true, f.admin)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	beneficiarySummary := summaryOf(summaries, f.beneficiary.ID)
	require.NotNil(t, beneficiarySummary)
	assert.Equal(t, 8.0, beneficiarySummary.TotalHours)
	assert.True(t, beneficiarySummary.IncludesShadowWork)
	assert.Contains(t, beneficiarySummary.SummaryText, "Shadow resource work: 3 hours")

	teammateSummary := summaryOf(summaries, f.teammate.ID)
	require.NotNil(t, teammateSummary)
	assert.Equal(t, 2.0, teammateSummary.TotalHours)

	assert.Nil(t, summaryOf(summaries, f.delegate.ID))
}

func Test_Generate_WithoutShadowWork_CountsDirectHoursOnly(t *testing.T) {
	f := newSummaryFixture(t)

	summaries, err := GetSummaryService().Generate(context.Background(), f.projectID, f.year, f.month, false, f.admin)
	require.NoError(t, err)

	beneficiarySummary := summaryOf(summaries, f.beneficiary.ID)
	require.NotNil(t, beneficiarySummary)
	assert.Equal(t, 5.0, beneficiarySummary.TotalHours)
	assert.False(t, beneficiarySummary.IncludesShadowWork)
	assert.NotContains(t, beneficiarySummary.SummaryText, "Shadow resource work")
}

func Test_Generate_RunTwice_ReplacesPreviousSet(t *testing.T) {
	f := newSummaryFixture(t)
	service := GetSummaryService()

	first, err := service.Generate(context.Background(), f.projectID, f.year, f.month, true, f.admin)
	require.NoError(t, err)

	second, err := service.Generate(context.Background(), f.projectID, f.year, f.month, true, f.admin)
	require.NoError(t, err)

	stored, err := summaryRepository.GetForPeriod(f.projectID, f.year, f.month)
	require.NoError(t, err)
	require.Len(t, stored, len(first))

	for _, summary := range stored {
		previous := summaryOf(first, summary.UserID)
		require.NotNil(t, previous)
		assert.Equal(t, previous.TotalHours, summary.TotalHours)
		assert.Equal(t, previous.SummaryText, summary.SummaryText)
		assert.NotEqual(t, previous.ID, summary.ID)
		assert.NotNil(t, summaryOf(second, summary.UserID))
	}
}

func Test_Generate_AfterDelegationRemoved_KeepsDelegatedHours(t *testing.T) {
	f := newSummaryFixture(t)

	err := projects_services.GetDelegationService().RemoveDelegation(f.delegationID, f.admin)
	require.NoError(t, err)

	summaries, err := GetSummaryService().Generate(context.Background(), f.projectID, f.year, f.month, true, f.admin)
	require.NoError(t, err)

	beneficiarySummary := summaryOf(summaries, f.beneficiary.ID)
	require.NotNil(t, beneficiarySummary)
	assert.Equal(t, 8.0, beneficiarySummary.TotalHours)
}

// failSummaryInserts makes every insert of summaries for projectID fail
// until the test ends.
func failSummaryInserts(t *testing.T, projectID uuid.UUID) {
	t.Helper()

	name := "summaries_test:fail_insert:" + projectID.String()
	err := storage.GetDb().Callback().Create().Before("gorm:create").Register(name, func(db *gorm.DB) {
		rows, ok := db.Statement.Dest.([]*MonthlySummary)
		if ok && len(rows) > 0 && rows[0].ProjectID == projectID {
			_ = db.AddError(errors.New("insert rejected"))
		}
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = storage.GetDb().Callback().Create().Remove(name)
	})
}

func Test_Generate_WhenStoringFails_KeepsPreviousSet(t *testing.T) {
	f := newSummaryFixture(t)
	service := GetSummaryService()

	first, err := service.Generate(context.Background(), f.projectID, f.year, f.month, true, f.admin)
	require.NoError(t, err)

	lastMonth := time.Date(f.year, time.Month(f.month), 10, 0, 0, 0, 0, time.UTC)
	worklogs_testing.CreateTestWorklog(f.projectID, f.teammate.ID, nil, lastMonth, 4, "Testing")

	failSummaryInserts(t, f.projectID)

	_, err = service.Generate(context.Background(), f.projectID, f.year, f.month, true, f.admin)
	require.Error(t, err)
	assert.False(t, errors_utils.IsConflict(err))

	stored, err := summaryRepository.GetForPeriod(f.projectID, f.year, f.month)
	require.NoError(t, err)
	require.Len(t, stored, len(first))

	for _, summary := range stored {
		previous := summaryOf(first, summary.UserID)
		require.NotNil(t, previous)
		assert.Equal(t, previous.ID, summary.ID)
		assert.Equal(t, previous.TotalHours, summary.TotalHours)
		assert.Equal(t, previous.SummaryText, summary.SummaryText)
	}
}

func Test_Generate_WhilePeriodLocked_ReturnsConflict(t *testing.T) {
	f := newSummaryFixture(t)

	locker := locks.NewLocalLocker()
	release, err := locker.TryLock(context.Background(), periodKey(f.projectID, f.year, f.month), time.Minute)
	require.NoError(t, err)
	defer release()

	service := *summaryService
	service.locker = locker
	service.maxTries = 2
	service.initialDelay = time.Millisecond

	_, err = service.Generate(context.Background(), f.projectID, f.year, f.month, true, f.admin)
	assert.True(t, errors_utils.IsConflict(err), "got %v", err)

	stored, err := summaryRepository.GetForPeriod(f.projectID, f.year, f.month)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func Test_Generate_AsMember_IsAllowed(t *testing.T) {
	f := newSummaryFixture(t)

	_, err := GetSummaryService().Generate(context.Background(), f.projectID, f.year, f.month, true, f.teammate)
	assert.NoError(t, err)
}

func Test_Generate_AsOutsider_IsForbidden(t *testing.T) {
	f := newSummaryFixture(t)
	outsider := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)

	_, err := GetSummaryService().Generate(context.Background(), f.projectID, f.year, f.month, true, outsider)
	assert.True(t, errors_utils.IsForbidden(err))
}

func Test_Generate_WithInvalidPeriod_ReturnsValidationError(t *testing.T) {
	f := newSummaryFixture(t)

	for _, month := range []int{0, 13} {
		_, err := GetSummaryService().Generate(context.Background(), f.projectID, 2025, month, true, f.admin)
		assert.True(t, errors_utils.IsValidation(err), "month %d", month)
	}
}

func Test_Generate_ForUnknownProject_ReturnsNotFound(t *testing.T) {
	admin := users_testing.CreateTestUserModel(users_enums.UserRoleAdmin)

	_, err := GetSummaryService().Generate(context.Background(), uuid.New(), 2025, 1, true, admin)
	assert.True(t, errors_utils.IsNotFound(err))
}

func Test_List_AsDelegate_ReturnsStoredSummaries(t *testing.T) {
	f := newSummaryFixture(t)

	_, err := GetSummaryService().Generate(context.Background(), f.projectID, f.year, f.month, true, f.admin)
	require.NoError(t, err)

	summaries, err := GetSummaryService().List(f.projectID, f.delegate)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.NotEmpty(t, summaries[0].UserEmail)
}
