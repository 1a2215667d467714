package projects_services

import (
	"errors"
	"fmt"
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

type DelegationService struct {
	delegationRepository *projects_repositories.DelegationRepository
	projectService       *ProjectService
	userService          *users_services.UserService
	delegationResolver   *DelegationResolver
	auditLogService      *audit_logs.AuditLogService
}

// CreateDelegation registers request.ShadowResourceID as delegate of the
// beneficiary. The beneficiary is the caller unless an admin names one.
func (s *DelegationService) CreateDelegation(
	projectID uuid.UUID,
	request *projects_dto.CreateDelegationRequestDTO,
	caller *users_models.User,
) (*projects_models.ShadowDelegation, error) {
	beneficiaryID := caller.ID
	if request.BeneficiaryID != nil {
		beneficiaryID = *request.BeneficiaryID
	}

	if _, err := s.projectService.GetProjectWithCache(projectID); err != nil {
		return nil, err
	}

	beneficiary, err := s.userService.GetActiveUser(beneficiaryID)
	if err != nil {
		return nil, err
	}

	delegate, err := s.userService.GetActiveUser(request.ShadowResourceID)
	if err != nil {
		return nil, err
	}

	if delegate.ID == beneficiary.ID {
		return nil, errors_utils.NewValidationError(
			"SELF_DELEGATION",
			"delegate and beneficiary must be different users",
			"shadowResourceId",
		)
	}

	delegation := &projects_models.ShadowDelegation{
		ID:                   uuid.New(),
		ProjectID:            projectID,
		ShadowResourceID:     delegate.ID,
		ProjectOnBoardUserID: beneficiary.ID,
		Role:                 strings.TrimSpace(request.Role),
		AssignedDate:         time.Now().UTC(),
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		resolver := s.delegationResolver.WithTx(tx)

		relationship, err := resolver.Relate(projectID, caller.ID)
		if err != nil {
			return err
		}

		decision := access.Authorize(access.OperationCreate, delegation.Subject(), caller.Caller(), relationship)
		if !decision.Allowed {
			return errors_utils.NewForbiddenError(decision.Reason)
		}

		isBeneficiaryMember, err := resolver.IsActiveMember(projectID, beneficiary.ID)
		if err != nil {
			return err
		}
		if !isBeneficiaryMember {
			return errors_utils.NewValidationError(
				"BENEFICIARY_NOT_MEMBER",
				"beneficiary is not an active member of the project",
				"beneficiaryId",
			)
		}

		isDelegateMember, err := resolver.IsActiveMember(projectID, delegate.ID)
		if err != nil {
			return err
		}
		if isDelegateMember {
			return errors_utils.NewValidationError(
				"DELEGATE_IS_MEMBER",
				"user is a direct member of the project and cannot be a delegate",
				"shadowResourceId",
			)
		}

		actsFor, err := resolver.ActiveBeneficiaryOf(projectID, delegate.ID)
		if err != nil {
			return err
		}
		if actsFor != nil {
			return errors_utils.NewValidationError(
				"DUPLICATE_DELEGATION",
				"user is already an active delegate on this project",
				"shadowResourceId",
			)
		}

		return s.delegationRepository.WithTx(tx).CreateDelegation(delegation)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors_utils.NewValidationError(
				"DUPLICATE_DELEGATION",
				"user is already an active delegate on this project",
				"shadowResourceId",
			)
		}
		if errors_utils.IsValidation(err) || errors_utils.IsForbidden(err) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to create delegation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("%s now acts as shadow resource for %s", delegate.Email, beneficiary.Email),
		&caller.ID,
		&projectID,
	)

	return delegation, nil
}

// RemoveDelegation is allowed to the beneficiary and admins. The delegate
// can never drop the delegation they serve.
func (s *DelegationService) RemoveDelegation(delegationID uuid.UUID, caller *users_models.User) error {
	var delegation *projects_models.ShadowDelegation

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		var err error
		delegation, err = s.delegationRepository.WithTx(tx).GetActiveDelegationByID(delegationID)
		if err != nil {
			return err
		}
		if delegation == nil {
			return errors_utils.NewNotFoundError("delegation")
		}

		relationship, err := s.delegationResolver.WithTx(tx).Relate(delegation.ProjectID, caller.ID)
		if err != nil {
			return err
		}

		decision := access.Authorize(access.OperationDelete, delegation.Subject(), caller.Caller(), relationship)
		if !decision.Allowed {
			return errors_utils.NewForbiddenError(decision.Reason)
		}

		_, err = cascade.SoftDelete(tx, cascade.EntityDelegation, cascade.Keys{cascade.KeyID: delegation.ID})
		return err
	})
	if err != nil {
		if errors_utils.IsNotFound(err) || errors_utils.IsForbidden(err) {
			return err
		}

		return fmt.Errorf("failed to remove delegation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Shadow delegation removed: %s no longer acts for %s",
			delegation.ShadowResourceID, delegation.ProjectOnBoardUserID),
		&caller.ID,
		&delegation.ProjectID,
	)

	return nil
}
