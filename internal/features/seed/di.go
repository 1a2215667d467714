package seed

import (
	projects_services "pmtrack/internal/features/projects/services"
	users_services "pmtrack/internal/features/users/services"
	"pmtrack/internal/util/logger"
)

var seedService = &SeedService{
	users_services.GetUserService(),
	users_services.GetManagementService(),
	projects_services.GetProjectService(),
	projects_services.GetAssignmentService(),
	projects_services.GetDelegationService(),
	logger.GetLogger(),
}

func GetSeedService() *SeedService {
	return seedService
}
