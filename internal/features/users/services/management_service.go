package users_services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pmtrack/internal/features/cascade"
	users_dto "pmtrack/internal/features/users/dto"
	users_enums "pmtrack/internal/features/users/enums"
	users_interfaces "pmtrack/internal/features/users/interfaces"
	users_models "pmtrack/internal/features/users/models"
	users_repositories "pmtrack/internal/features/users/repositories"
	"pmtrack/internal/storage"
	errors_utils "pmtrack/internal/util/errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserManagementService struct {
	userRepository *users_repositories.UserRepository
	auditLogWriter users_interfaces.AuditLogWriter
	logger         *slog.Logger
}

func (s *UserManagementService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserManagementService) CreateEmployee(
	request *users_dto.CreateEmployeeRequestDTO,
	createdBy *users_models.User,
) (*users_models.User, error) {
	if !createdBy.CanManageUsers() {
		return nil, errors_utils.NewForbiddenError("insufficient permissions to create users")
	}

	role := request.Role
	if role == "" {
		role = users_enums.UserRoleEmployee
	}
	if !role.IsValid() {
		return nil, errors_utils.NewValidationError("INVALID_ROLE", "invalid user role", "role")
	}

	email := strings.TrimSpace(strings.ToLower(request.Email))

	existingUser, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, errors_utils.NewValidationError("EMAIL_TAKEN", "user with this email already exists", "email")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashedPasswordStr := string(hashedPassword)

	user := &users_models.User{
		ID:                   uuid.New(),
		Email:                email,
		FullName:             strings.TrimSpace(request.FullName),
		Department:           request.Department,
		Position:             request.Position,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 role,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.writeAuditLog(
		fmt.Sprintf("User created: %s as %s", user.Email, user.Role),
		&createdBy.ID,
		nil,
	)

	return user, nil
}

func (s *UserManagementService) GetUsers(
	currentUser *users_models.User,
	request *users_dto.ListUsersRequestDTO,
) ([]*users_models.User, int64, error) {
	if !currentUser.CanManageUsers() {
		return nil, 0, errors_utils.NewForbiddenError("insufficient permissions to list users")
	}

	return s.userRepository.GetUsers(request.Limit, request.Offset, request.BeforeDate, request.IncludeDeleted)
}

func (s *UserManagementService) GetUserProfile(
	userID uuid.UUID,
	requestedBy *users_models.User,
) (*users_models.User, error) {
	// users can view their own profile, admins can view any profile
	if userID != requestedBy.ID && !requestedBy.CanManageUsers() {
		return nil, errors_utils.NewForbiddenError("insufficient permissions to view user profile")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors_utils.NewNotFoundError("user")
		}
		return nil, err
	}

	return user, nil
}

// DeleteUser soft-deletes the user and, in the same transaction, every
// assignment and delegation the user takes part in. Worklogs stay.
func (s *UserManagementService) DeleteUser(userID uuid.UUID, deletedBy *users_models.User) error {
	if !deletedBy.CanManageUsers() {
		return errors_utils.NewForbiddenError("insufficient permissions to delete users")
	}

	if userID == deletedBy.ID {
		return errors_utils.NewValidationError("SELF_DELETE", "cannot delete your own account", "")
	}

	user, err := s.userRepository.GetActiveUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return errors_utils.NewNotFoundError("user")
	}

	if user.Email == users_repositories.RootAdminEmail {
		return errors_utils.NewValidationError("ROOT_ADMIN", "root admin cannot be deleted", "")
	}

	var result *cascade.Result
	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		result, err = cascade.SoftDelete(tx, cascade.EntityUser, cascade.Keys{cascade.KeyID: userID})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info(
		"user soft-deleted",
		"userId", userID,
		"assignments", result.Affected["project_assignments"],
		"delegations", result.Affected["shadow_delegations"],
	)

	s.writeAuditLog(
		fmt.Sprintf("User deleted: %s", user.Email),
		&deletedBy.ID,
		nil,
	)

	return nil
}

func (s *UserManagementService) ChangeUserRole(
	userID uuid.UUID,
	newRole users_enums.UserRole,
	changedBy *users_models.User,
) error {
	if !changedBy.CanManageUsers() {
		return errors_utils.NewForbiddenError("insufficient permissions to change user roles")
	}

	if !newRole.IsValid() {
		return errors_utils.NewValidationError("INVALID_ROLE", "invalid user role", "role")
	}

	if userID == changedBy.ID {
		return errors_utils.NewValidationError("SELF_ROLE", "cannot change your own role", "")
	}

	user, err := s.userRepository.GetActiveUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return errors_utils.NewNotFoundError("user")
	}

	if err := s.userRepository.UpdateUserRole(userID, newRole); err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	s.writeAuditLog(
		fmt.Sprintf("User role changed: %s from %s to %s", user.Email, user.Role, newRole),
		&changedBy.ID,
		nil,
	)

	return nil
}

func (s *UserManagementService) writeAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID) {
	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(message, userID, projectID)
	}
}
