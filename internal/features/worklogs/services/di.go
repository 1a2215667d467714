package worklogs_services

import (
	"pmtrack/internal/features/audit_logs"
	projects_services "pmtrack/internal/features/projects/services"
	users_services "pmtrack/internal/features/users/services"
	worklogs_repositories "pmtrack/internal/features/worklogs/repositories"
	"pmtrack/internal/util/logger"
)

var worklogRepository = &worklogs_repositories.WorklogRepository{}

var worklogService = &WorklogService{
	worklogRepository,
	projects_services.GetProjectService(),
	users_services.GetUserService(),
	projects_services.GetDelegationResolver(),
	audit_logs.GetAuditLogService(),
	logger.GetLogger(),
}

func GetWorklogService() *WorklogService {
	return worklogService
}
