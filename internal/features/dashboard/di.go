package dashboard

import (
	projects_services "pmtrack/internal/features/projects/services"
	users_services "pmtrack/internal/features/users/services"
	worklogs_services "pmtrack/internal/features/worklogs/services"
)

var dashboardService = &DashboardService{
	projects_services.GetProjectService(),
	users_services.GetUserService(),
	worklogs_services.GetWorklogService(),
}
var dashboardController = &DashboardController{
	dashboardService,
}

func GetDashboardController() *DashboardController {
	return dashboardController
}
