package worklogs_controllers

import (
	worklogs_services "pmtrack/internal/features/worklogs/services"
)

var worklogController = &WorklogController{
	worklogs_services.GetWorklogService(),
}

func GetWorklogController() *WorklogController {
	return worklogController
}
