package summaries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pmtrack/internal/features/audit_logs"
	projects_services "pmtrack/internal/features/projects/services"
	users_models "pmtrack/internal/features/users/models"
	worklogs_models "pmtrack/internal/features/worklogs/models"
	worklogs_services "pmtrack/internal/features/worklogs/services"
	"pmtrack/internal/storage"
	errors_utils "pmtrack/internal/util/errors"
	"pmtrack/internal/util/locks"
	time_utils "pmtrack/internal/util/time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minYear = 2000
	maxYear = 2100
)

type SummaryService struct {
	summaryRepository  *SummaryRepository
	projectService     *projects_services.ProjectService
	delegationResolver *projects_services.DelegationResolver
	worklogService     *worklogs_services.WorklogService
	auditLogService    *audit_logs.AuditLogService
	locker             locks.KeyedLocker
	logger             *slog.Logger

	lockTTL      time.Duration
	maxTries     uint
	initialDelay time.Duration
}

// Generate rebuilds every summary of a project month. The new set is built
// in memory first and then swapped in with one transaction. Runs for the
// same period never overlap; a run that finds the period locked backs off
// and starts over.
func (s *SummaryService) Generate(
	ctx context.Context,
	projectID uuid.UUID,
	year, month int,
	includeShadow bool,
	caller *users_models.User,
) ([]*MonthlySummary, error) {
	if month < 1 || month > 12 || year < minYear || year > maxYear {
		return nil, errors_utils.NewValidationError("INVALID_PERIOD", "year or month is out of range", "month")
	}

	if err := s.ensureCanAccess(projectID, caller); err != nil {
		return nil, err
	}

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.InitialInterval = s.initialDelay

	summaries, err := backoff.Retry(ctx, func() ([]*MonthlySummary, error) {
		summaries, err := s.generateOnce(ctx, projectID, year, month, includeShadow)
		if err != nil && !errors_utils.IsConflict(err) {
			return nil, backoff.Permanent(err)
		}

		return summaries, err
	}, backoff.WithBackOff(retryPolicy), backoff.WithMaxTries(s.maxTries))
	if err != nil {
		if errors_utils.IsConflict(err) {
			s.logger.Warn("summary generation gave up on a locked period",
				"projectId", projectID, "year", year, "month", month)
		}

		return nil, err
	}

	s.logger.Info("monthly summaries generated",
		"projectId", projectID, "year", year, "month", month, "count", len(summaries))

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Generated %d monthly summaries for %04d-%02d", len(summaries), year, month),
		&caller.ID,
		&projectID,
	)

	return summaries, nil
}

func (s *SummaryService) List(projectID uuid.UUID, caller *users_models.User) ([]*MonthlySummaryDTO, error) {
	if err := s.ensureCanAccess(projectID, caller); err != nil {
		return nil, err
	}

	summaries, err := s.summaryRepository.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}

	return summaries, nil
}

func (s *SummaryService) generateOnce(
	ctx context.Context,
	projectID uuid.UUID,
	year, month int,
	includeShadow bool,
) ([]*MonthlySummary, error) {
	release, err := s.locker.TryLock(ctx, periodKey(projectID, year, month), s.lockTTL)
	if err != nil {
		if errors.Is(err, locks.ErrLockHeld) {
			return nil, errors_utils.NewConflictError("summaries for this period are being generated")
		}

		return nil, fmt.Errorf("failed to lock period: %w", err)
	}
	defer release()

	summaries, err := s.compute(projectID, year, month, includeShadow)
	if err != nil {
		return nil, err
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		return s.summaryRepository.ReplacePeriod(tx, projectID, year, month, summaries)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store summaries: %w", err)
	}

	return summaries, nil
}

// compute builds the full set for the period without touching storage
func (s *SummaryService) compute(
	projectID uuid.UUID,
	year, month int,
	includeShadow bool,
) ([]*MonthlySummary, error) {
	start, end := time_utils.MonthRange(year, month)

	beneficiaries, err := s.delegationResolver.Beneficiaries(projectID, includeShadow)
	if err != nil {
		return nil, err
	}

	worklogs, err := s.worklogService.GetWorklogsForPeriod(nil, projectID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get worklogs: %w", err)
	}

	direct := make(map[uuid.UUID][]*worklogs_models.Worklog)
	delegated := make(map[uuid.UUID][]*worklogs_models.Worklog)
	for _, worklog := range worklogs {
		if worklog.Attribution().IsDelegated() {
			delegated[worklog.UserID] = append(delegated[worklog.UserID], worklog)
		} else {
			direct[worklog.UserID] = append(direct[worklog.UserID], worklog)
		}
	}

	generatedAt := time.Now().UTC()
	summaries := make([]*MonthlySummary, 0, len(beneficiaries))

	for _, beneficiaryID := range beneficiaries {
		directWorklogs := direct[beneficiaryID]

		var delegatedWorklogs []*worklogs_models.Worklog
		if includeShadow {
			delegatedWorklogs = delegated[beneficiaryID]
		}

		if len(directWorklogs) == 0 && len(delegatedWorklogs) == 0 {
			continue
		}

		text, totalHours := BuildSummaryText(directWorklogs, delegatedWorklogs)

		summaries = append(summaries, &MonthlySummary{
			ID:                 uuid.New(),
			ProjectID:          projectID,
			UserID:             beneficiaryID,
			Year:               year,
			Month:              month,
			TotalHours:         totalHours,
			SummaryText:        text,
			GeneratedAt:        generatedAt,
			IncludesShadowWork: includeShadow,
		})
	}

	return summaries, nil
}

func (s *SummaryService) ensureCanAccess(projectID uuid.UUID, caller *users_models.User) error {
	if _, err := s.projectService.GetProjectWithCache(projectID); err != nil {
		return err
	}

	return s.projectService.EnsureCanViewProject(projectID, caller)
}

func periodKey(projectID uuid.UUID, year, month int) string {
	return fmt.Sprintf("summary:%s:%04d-%02d", projectID, year, month)
}
