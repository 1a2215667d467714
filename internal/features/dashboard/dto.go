package dashboard

import (
	projects_dto "pmtrack/internal/features/projects/dto"
	worklogs_dto "pmtrack/internal/features/worklogs/dto"
)

type AdminDashboardDTO struct {
	TotalProjects  int                               `json:"totalProjects"`
	ActiveProjects int                               `json:"activeProjects"`
	TotalEmployees int64                             `json:"totalEmployees"`
	TotalWorklogs  int64                             `json:"totalWorklogs"`
	RecentProjects []projects_dto.ProjectResponseDTO `json:"recentProjects"`
	RecentWorklogs []worklogs_dto.WorklogResponseDTO `json:"recentWorklogs"`
}

type EmployeeDashboardDTO struct {
	Projects          []projects_dto.ProjectResponseDTO `json:"projects"`
	TotalProjects     int                               `json:"totalProjects"`
	ActiveProjects    int                               `json:"activeProjects"`
	TotalWorklogs     int64                             `json:"totalWorklogs"`
	HoursThisMonth    float64                           `json:"hoursThisMonth"`
	DelegatedProjects int                               `json:"delegatedProjects"`
}

// DashboardResponseDTO carries exactly one of the two views
type DashboardResponseDTO struct {
	Admin    *AdminDashboardDTO    `json:"admin,omitempty"`
	Employee *EmployeeDashboardDTO `json:"employee,omitempty"`
}
