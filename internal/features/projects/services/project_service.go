package projects_services

import (
	"fmt"
	"log/slog"
	"time"

	"pmtrack/internal/features/audit_logs"
	"pmtrack/internal/features/cascade"
	projects_dto "pmtrack/internal/features/projects/dto"
	projects_enums "pmtrack/internal/features/projects/enums"
	projects_models "pmtrack/internal/features/projects/models"
	projects_repositories "pmtrack/internal/features/projects/repositories"
	users_models "pmtrack/internal/features/users/models"
	"pmtrack/internal/storage"
	cache_utils "pmtrack/internal/util/cache"
	errors_utils "pmtrack/internal/util/errors"
	time_utils "pmtrack/internal/util/time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepository  *projects_repositories.ProjectRepository
	delegationResolver *DelegationResolver
	auditLogService    *audit_logs.AuditLogService
	logger             *slog.Logger

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_models.Project, error) {
	if !creator.IsAdmin() {
		return nil, errors_utils.NewForbiddenError("only administrators can create projects")
	}

	project := &projects_models.Project{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		Status:      projects_enums.ProjectStatusNew,
		CreatedAt:   time.Now().UTC(),
	}

	if err := applyProjectFields(project, &projects_dto.UpdateProjectRequestDTO{
		StartDate: &request.StartDate,
		EndDate:   request.EndDate,
		Status:    statusOrNil(request.Status),
	}); err != nil {
		return nil, err
	}

	if err := s.projectRepository.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCacheUtil.Set(project.ID.String(), project)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&creator.ID,
		&project.ID,
	)

	return project, nil
}

// GetProject is open to admins, members and delegates of the project
func (s *ProjectService) GetProject(projectID uuid.UUID, user *users_models.User) (*projects_models.Project, error) {
	project, err := s.GetProjectWithCache(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.EnsureCanViewProject(projectID, user); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) GetUserProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	var projects []projects_dto.ProjectResponseDTO
	var err error

	if user.IsAdmin() {
		projects, err = s.projectRepository.GetAllProjectDTOs()
	} else {
		projects, err = s.projectRepository.GetProjectsForUser(user.ID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	return &projects_dto.ListProjectsResponseDTO{
		Projects: projects,
	}, nil
}

func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_models.Project, error) {
	if !user.IsAdmin() {
		return nil, errors_utils.NewForbiddenError("only administrators can update projects")
	}

	project, err := s.projectRepository.GetActiveProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, errors_utils.NewNotFoundError("project")
	}

	if request.Name != nil {
		project.Name = *request.Name
	}
	if request.Description != nil {
		project.Description = *request.Description
	}

	if err := applyProjectFields(project, request); err != nil {
		return nil, err
	}

	if err := s.projectRepository.UpdateProject(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project updated: %s", project.Name),
		&user.ID,
		&projectID,
	)

	return project, nil
}

// DeleteProject soft-deletes the project with its assignments, delegations
// and worklogs in one transaction.
func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	if !user.IsAdmin() {
		return errors_utils.NewForbiddenError("only administrators can delete projects")
	}

	project, err := s.projectRepository.GetActiveProjectByID(projectID)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return errors_utils.NewNotFoundError("project")
	}

	var result *cascade.Result
	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		result, err = cascade.SoftDelete(tx, cascade.EntityProject, cascade.Keys{cascade.KeyID: projectID})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.logger.Info(
		"project soft-deleted",
		"projectId", projectID,
		"assignments", result.Affected["project_assignments"],
		"delegations", result.Affected["shadow_delegations"],
		"worklogs", result.Affected["worklogs"],
	)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		&projectID,
	)

	return nil
}

// EnsureCanViewProject passes for admins, active members and active delegates
func (s *ProjectService) EnsureCanViewProject(projectID uuid.UUID, user *users_models.User) error {
	if user.IsAdmin() {
		return nil
	}

	relationship, err := s.delegationResolver.Relate(projectID, user.ID)
	if err != nil {
		return err
	}

	if !relationship.CallerIsMember && !relationship.IsDelegate() {
		return errors_utils.NewForbiddenError("insufficient permissions to view project")
	}

	return nil
}

func (s *ProjectService) GetProjectAuditLogs(
	projectID uuid.UUID,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	if _, err := s.GetProjectWithCache(projectID); err != nil {
		return nil, err
	}

	if err := s.EnsureCanViewProject(projectID, user); err != nil {
		return nil, err
	}

	return s.auditLogService.GetProjectAuditLogs(projectID, request)
}

// GetProjectWithCache returns NotFound for missing and soft-deleted projects
func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	projectIDStr := projectID.String()

	// Tier 1: Check cache
	if cachedProject := s.projectCacheUtil.Get(projectIDStr); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, errors_utils.NewNotFoundError("project")
		}

		return cachedProject, nil
	}

	// Tier 2: Database lookup with singleflight protection (prevents thundering herd)
	result, err, _ := s.singleflight.Do(projectIDStr, func() (any, error) {
		return s.projectRepository.GetActiveProjectByID(projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project, ok := result.(*projects_models.Project)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Project")
	}

	if project == nil {
		// Cache the missing project to prevent future DB hits
		s.projectCacheUtil.Set(projectIDStr, &projects_models.Project{ID: projectID, IsNotExists: true})
		return nil, errors_utils.NewNotFoundError("project")
	}

	s.projectCacheUtil.Set(projectIDStr, project)

	return project, nil
}

func (s *ProjectService) GetAllProjects() ([]*projects_models.Project, error) {
	return s.projectRepository.GetAllProjects()
}

func applyProjectFields(project *projects_models.Project, request *projects_dto.UpdateProjectRequestDTO) error {
	if request.StartDate != nil {
		startDate, err := time_utils.ParseDate(*request.StartDate)
		if err != nil {
			return errors_utils.NewValidationError("INVALID_DATE", "invalid start date", "startDate")
		}
		project.StartDate = startDate
	}

	if request.EndDate != nil {
		if *request.EndDate == "" {
			project.EndDate = nil
		} else {
			endDate, err := time_utils.ParseDate(*request.EndDate)
			if err != nil {
				return errors_utils.NewValidationError("INVALID_DATE", "invalid end date", "endDate")
			}
			project.EndDate = &endDate
		}
	}

	if project.EndDate != nil && project.EndDate.Before(project.StartDate) {
		return errors_utils.NewValidationError("INVALID_DATE_RANGE", "end date is before start date", "endDate")
	}

	if request.Status != nil {
		if !request.Status.IsValid() {
			return errors_utils.NewValidationError("INVALID_STATUS", "invalid project status", "status")
		}
		project.Status = *request.Status
	}

	return nil
}

func statusOrNil(status projects_enums.ProjectStatus) *projects_enums.ProjectStatus {
	if status == "" {
		return nil
	}

	return &status
}
