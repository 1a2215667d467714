package seed

import (
	"fmt"
	"log/slog"
	"strings"

	projects_dto "pmtrack/internal/features/projects/dto"
	projects_models "pmtrack/internal/features/projects/models"
	projects_services "pmtrack/internal/features/projects/services"
	users_dto "pmtrack/internal/features/users/dto"
	users_models "pmtrack/internal/features/users/models"
	users_services "pmtrack/internal/features/users/services"
	errors_utils "pmtrack/internal/util/errors"

	"github.com/google/uuid"
)

type Report struct {
	UsersCreated       int
	ProjectsCreated    int
	AssignmentsCreated int
	DelegationsCreated int
	Skipped            int
}

// SeedService applies a seed file through the regular services, so every
// record passes the same checks as an API request. Records that already
// exist are skipped which makes a second run a no-op.
type SeedService struct {
	userService       *users_services.UserService
	managementService *users_services.UserManagementService
	projectService    *projects_services.ProjectService
	assignmentService *projects_services.AssignmentService
	delegationService *projects_services.DelegationService
	logger            *slog.Logger
}

func (s *SeedService) Apply(file *File, actor *users_models.User) (*Report, error) {
	report := &Report{}

	if err := s.applyUsers(file.Users, actor, report); err != nil {
		return report, err
	}

	existing, err := s.projectService.GetAllProjects()
	if err != nil {
		return report, fmt.Errorf("failed to list projects: %w", err)
	}

	projectsByName := make(map[string]*projects_models.Project, len(existing))
	for _, project := range existing {
		projectsByName[project.Name] = project
	}

	for _, seeded := range file.Projects {
		project, err := s.applyProject(seeded, projectsByName, actor, report)
		if err != nil {
			return report, fmt.Errorf("project %s: %w", seeded.Name, err)
		}

		if err := s.applyTeam(project.ID, seeded, actor, report); err != nil {
			return report, fmt.Errorf("project %s: %w", seeded.Name, err)
		}
	}

	s.logger.Info("seed applied",
		"usersCreated", report.UsersCreated,
		"projectsCreated", report.ProjectsCreated,
		"assignmentsCreated", report.AssignmentsCreated,
		"delegationsCreated", report.DelegationsCreated,
		"skipped", report.Skipped,
	)

	return report, nil
}

func (s *SeedService) applyUsers(users []User, actor *users_models.User, report *Report) error {
	for _, user := range users {
		_, err := s.managementService.CreateEmployee(&users_dto.CreateEmployeeRequestDTO{
			Email:      user.Email,
			FullName:   user.FullName,
			Department: user.Department,
			Position:   user.Position,
			Password:   user.Password,
			Role:       user.Role,
		}, actor)

		if errors_utils.HasCode(err, "EMAIL_TAKEN") {
			report.Skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("user %s: %w", user.Email, err)
		}

		report.UsersCreated++
	}

	return nil
}

func (s *SeedService) applyProject(
	seeded Project,
	projectsByName map[string]*projects_models.Project,
	actor *users_models.User,
	report *Report,
) (*projects_models.Project, error) {
	name := strings.TrimSpace(seeded.Name)
	if project, ok := projectsByName[name]; ok {
		report.Skipped++
		return project, nil
	}

	request := &projects_dto.CreateProjectRequestDTO{
		Name:        name,
		Description: seeded.Description,
		StartDate:   seeded.StartDate,
		Status:      seeded.Status,
	}
	if seeded.EndDate != "" {
		request.EndDate = &seeded.EndDate
	}

	project, err := s.projectService.CreateProject(request, actor)
	if err != nil {
		return nil, err
	}

	projectsByName[name] = project
	report.ProjectsCreated++

	return project, nil
}

func (s *SeedService) applyTeam(projectID uuid.UUID, seeded Project, actor *users_models.User, report *Report) error {
	for _, member := range seeded.Members {
		userID, err := s.userIDByEmail(member.Email)
		if err != nil {
			return err
		}

		_, err = s.assignmentService.AssignUser(projectID, &projects_dto.CreateAssignmentRequestDTO{
			UserID: userID,
			Role:   member.Role,
		}, actor)

		if errors_utils.HasCode(err, "DUPLICATE_ASSIGNMENT") {
			report.Skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("member %s: %w", member.Email, err)
		}

		report.AssignmentsCreated++
	}

	for _, delegation := range seeded.Delegations {
		delegateID, err := s.userIDByEmail(delegation.Delegate)
		if err != nil {
			return err
		}

		beneficiaryID, err := s.userIDByEmail(delegation.Beneficiary)
		if err != nil {
			return err
		}

		_, err = s.delegationService.CreateDelegation(projectID, &projects_dto.CreateDelegationRequestDTO{
			ShadowResourceID: delegateID,
			BeneficiaryID:    &beneficiaryID,
			Role:             delegation.Role,
		}, actor)

		if errors_utils.HasCode(err, "DUPLICATE_DELEGATION") {
			report.Skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("delegation %s for %s: %w", delegation.Delegate, delegation.Beneficiary, err)
		}

		report.DelegationsCreated++
	}

	return nil
}

func (s *SeedService) userIDByEmail(email string) (uuid.UUID, error) {
	user, err := s.userService.GetUserByEmail(normalizeEmail(email))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get user %s: %w", email, err)
	}

	if user == nil || user.IsDeleted {
		return uuid.Nil, errors_utils.NewNotFoundError("user " + email)
	}

	return user.ID, nil
}
