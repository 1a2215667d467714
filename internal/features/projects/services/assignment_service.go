package projects_services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pmtrack/internal/features/access"
	"pmtrack/internal/features/audit_logs"
	"pmtrack/internal/features/cascade"
	projects_dto "pmtrack/internal/features/projects/dto"
	projects_models "pmtrack/internal/features/projects/models"
	projects_repositories "pmtrack/internal/features/projects/repositories"
	users_models "pmtrack/internal/features/users/models"
	users_services "pmtrack/internal/features/users/services"
	"pmtrack/internal/storage"
	errors_utils "pmtrack/internal/util/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentService struct {
	assignmentRepository *projects_repositories.AssignmentRepository
	projectService       *ProjectService
	userService          *users_services.UserService
	delegationResolver   *DelegationResolver
	auditLogService      *audit_logs.AuditLogService
	logger               *slog.Logger
}

func (s *AssignmentService) AssignUser(
	projectID uuid.UUID,
	request *projects_dto.CreateAssignmentRequestDTO,
	caller *users_models.User,
) (*projects_models.ProjectAssignment, error) {
	assignment := &projects_models.ProjectAssignment{
		ID:           uuid.New(),
		ProjectID:    projectID,
		UserID:       request.UserID,
		Role:         strings.TrimSpace(request.Role),
		AssignedDate: time.Now().UTC(),
	}

	decision := access.Authorize(access.OperationCreate, assignment.Subject(), caller.Caller(), access.Relationship{})
	if !decision.Allowed {
		return nil, errors_utils.NewForbiddenError("only administrators can assign users to projects")
	}

	project, err := s.projectService.GetProjectWithCache(projectID)
	if err != nil {
		return nil, err
	}

	user, err := s.userService.GetActiveUser(request.UserID)
	if err != nil {
		return nil, err
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		resolver := s.delegationResolver.WithTx(tx)

		isMember, err := resolver.IsActiveMember(projectID, request.UserID)
		if err != nil {
			return err
		}
		if isMember {
			return errors_utils.NewValidationError(
				"DUPLICATE_ASSIGNMENT",
				"user already has an active assignment on this project",
				"userId",
			)
		}

		actsFor, err := resolver.ActiveBeneficiaryOf(projectID, request.UserID)
		if err != nil {
			return err
		}
		if actsFor != nil {
			return errors_utils.NewValidationError(
				"USER_IS_DELEGATE",
				"user is an active delegate on this project, remove the delegation first",
				"userId",
			)
		}

		return s.assignmentRepository.WithTx(tx).CreateAssignment(assignment)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors_utils.NewValidationError(
				"DUPLICATE_ASSIGNMENT",
				"user already has an active assignment on this project",
				"userId",
			)
		}
		if errors_utils.IsValidation(err) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to assign user: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User %s assigned to project %s", user.Email, project.Name),
		&caller.ID,
		&projectID,
	)

	return assignment, nil
}

// RemoveAssignment soft-deletes the assignment and the delegations the
// member granted on the same project.
func (s *AssignmentService) RemoveAssignment(assignmentID uuid.UUID, caller *users_models.User) error {
	assignment, err := s.assignmentRepository.GetActiveAssignmentByID(assignmentID)
	if err != nil {
		return fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return errors_utils.NewNotFoundError("assignment")
	}

	decision := access.Authorize(access.OperationDelete, assignment.Subject(), caller.Caller(), access.Relationship{})
	if !decision.Allowed {
		return errors_utils.NewForbiddenError("only administrators can remove project assignments")
	}

	var result *cascade.Result
	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		result, err = cascade.SoftDelete(tx, cascade.EntityAssignment, cascade.Keys{
			cascade.KeyID:        assignment.ID,
			cascade.KeyProjectID: assignment.ProjectID,
			cascade.KeyUserID:    assignment.UserID,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to remove assignment: %w", err)
	}

	s.logger.Info(
		"assignment removed",
		"assignmentId", assignment.ID,
		"projectId", assignment.ProjectID,
		"delegations", result.Affected["shadow_delegations"],
	)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User %s removed from project", assignment.UserID),
		&caller.ID,
		&assignment.ProjectID,
	)

	return nil
}
