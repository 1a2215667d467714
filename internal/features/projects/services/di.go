package projects_services

import (
	"pmtrack/internal/cache"
	"pmtrack/internal/features/audit_logs"
	projects_models "pmtrack/internal/features/projects/models"
	projects_repositories "pmtrack/internal/features/projects/repositories"
	users_services "pmtrack/internal/features/users/services"
	cache_utils "pmtrack/internal/util/cache"
	"pmtrack/internal/util/logger"

	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var assignmentRepository = &projects_repositories.AssignmentRepository{}
var delegationRepository = &projects_repositories.DelegationRepository{}

var delegationResolver = &DelegationResolver{
	assignmentRepository,
	delegationRepository,
	users_services.GetUserService(),
}

var projectService = &ProjectService{
	projectRepository,
	delegationResolver,
	audit_logs.GetAuditLogService(),
	logger.GetLogger(),
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "pm_project:"),
	singleflight.Group{},
}

var assignmentService = &AssignmentService{
	assignmentRepository,
	projectService,
	users_services.GetUserService(),
	delegationResolver,
	audit_logs.GetAuditLogService(),
	logger.GetLogger(),
}

var delegationService = &DelegationService{
	delegationRepository,
	projectService,
	users_services.GetUserService(),
	delegationResolver,
	audit_logs.GetAuditLogService(),
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetDelegationResolver() *DelegationResolver {
	return delegationResolver
}

func GetAssignmentService() *AssignmentService {
	return assignmentService
}

func GetDelegationService() *DelegationService {
	return delegationService
}
