package summaries

import (
	"time"

	"pmtrack/internal/cache"
	"pmtrack/internal/config"
	"pmtrack/internal/features/audit_logs"
	projects_services "pmtrack/internal/features/projects/services"
	worklogs_services "pmtrack/internal/features/worklogs/services"
	"pmtrack/internal/util/locks"
	"pmtrack/internal/util/logger"
)

var summaryRepository = &SummaryRepository{}

var summaryService = &SummaryService{
	summaryRepository:  summaryRepository,
	projectService:     projects_services.GetProjectService(),
	delegationResolver: projects_services.GetDelegationResolver(),
	worklogService:     worklogs_services.GetWorklogService(),
	auditLogService:    audit_logs.GetAuditLogService(),
	locker:             locks.NewLocker(cache.GetCache()),
	logger:             logger.GetLogger(),
	lockTTL:            time.Duration(config.GetEnv().SummaryLockTTLSeconds) * time.Second,
	maxTries:           config.GetEnv().SummaryRetryMaxTries,
	initialDelay:       200 * time.Millisecond,
}

var summaryController = &SummaryController{
	summaryService: summaryService,
}

func GetSummaryService() *SummaryService {
	return summaryService
}

func GetSummaryController() *SummaryController {
	return summaryController
}
