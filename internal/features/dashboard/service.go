package dashboard

import (
	"fmt"
	"sort"
	"time"

	projects_dto "pmtrack/internal/features/projects/dto"
	projects_services "pmtrack/internal/features/projects/services"
	users_models "pmtrack/internal/features/users/models"
	users_services "pmtrack/internal/features/users/services"
	worklogs_services "pmtrack/internal/features/worklogs/services"
	time_utils "pmtrack/internal/util/time"

	"golang.org/x/sync/errgroup"
)

const recentItemsLimit = 5

type DashboardService struct {
	projectService *projects_services.ProjectService
	userService    *users_services.UserService
	worklogService *worklogs_services.WorklogService
}

func (s *DashboardService) GetDashboard(user *users_models.User) (*DashboardResponseDTO, error) {
	if user.IsAdmin() {
		admin, err := s.getAdminDashboard(user)
		if err != nil {
			return nil, err
		}

		return &DashboardResponseDTO{Admin: admin}, nil
	}

	employee, err := s.getEmployeeDashboard(user, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &DashboardResponseDTO{Employee: employee}, nil
}

func (s *DashboardService) getAdminDashboard(user *users_models.User) (*AdminDashboardDTO, error) {
	dashboard := &AdminDashboardDTO{}

	var group errgroup.Group

	group.Go(func() error {
		projects, err := s.projectService.GetUserProjects(user)
		if err != nil {
			return err
		}

		dashboard.TotalProjects = len(projects.Projects)
		dashboard.ActiveProjects = countActive(projects.Projects)
		dashboard.RecentProjects = mostRecent(projects.Projects)

		return nil
	})

	group.Go(func() error {
		count, err := s.userService.CountEmployees()
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}

		dashboard.TotalEmployees = count
		return nil
	})

	group.Go(func() error {
		count, err := s.worklogService.CountAllWorklogs()
		if err != nil {
			return fmt.Errorf("failed to count worklogs: %w", err)
		}

		dashboard.TotalWorklogs = count
		return nil
	})

	group.Go(func() error {
		worklogs, err := s.worklogService.GetRecentWorklogs(recentItemsLimit)
		if err != nil {
			return fmt.Errorf("failed to get recent worklogs: %w", err)
		}

		dashboard.RecentWorklogs = worklogs
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return dashboard, nil
}

// Hours this month include entries the user wrote as a delegate
func (s *DashboardService) getEmployeeDashboard(user *users_models.User, now time.Time) (*EmployeeDashboardDTO, error) {
	dashboard := &EmployeeDashboardDTO{}

	var group errgroup.Group

	group.Go(func() error {
		projects, err := s.projectService.GetUserProjects(user)
		if err != nil {
			return err
		}

		dashboard.Projects = projects.Projects
		dashboard.TotalProjects = len(projects.Projects)
		dashboard.ActiveProjects = countActive(projects.Projects)

		for _, project := range projects.Projects {
			if project.Relation == projects_dto.ProjectRelationDelegate {
				dashboard.DelegatedProjects++
			}
		}

		return nil
	})

	group.Go(func() error {
		count, err := s.worklogService.CountUserWorklogs(user.ID)
		if err != nil {
			return fmt.Errorf("failed to count worklogs: %w", err)
		}

		dashboard.TotalWorklogs = count
		return nil
	})

	group.Go(func() error {
		start, end := time_utils.MonthRange(now.Year(), int(now.Month()))

		hours, err := s.worklogService.SumUserHours(user.ID, start, end)
		if err != nil {
			return fmt.Errorf("failed to sum hours: %w", err)
		}

		dashboard.HoursThisMonth = hours
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return dashboard, nil
}

func countActive(projects []projects_dto.ProjectResponseDTO) int {
	active := 0
	for _, project := range projects {
		if project.Status.IsActive() {
			active++
		}
	}

	return active
}

func mostRecent(projects []projects_dto.ProjectResponseDTO) []projects_dto.ProjectResponseDTO {
	recent := append([]projects_dto.ProjectResponseDTO{}, projects...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	if len(recent) > recentItemsLimit {
		recent = recent[:recentItemsLimit]
	}

	return recent
}
