package projects_controllers

import (
	projects_services "pmtrack/internal/features/projects/services"
)

var projectController = &ProjectController{
	projects_services.GetProjectService(),
}

var teamController = &TeamController{
	projects_services.GetAssignmentService(),
	projects_services.GetDelegationService(),
	projects_services.GetDelegationResolver(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetTeamController() *TeamController {
	return teamController
}
