package projects_services

import (
	"fmt"

	"pmtrack/internal/features/access"
	projects_dto "pmtrack/internal/features/projects/dto"
	projects_repositories "pmtrack/internal/features/projects/repositories"
	users_models "pmtrack/internal/features/users/models"
	users_services "pmtrack/internal/features/users/services"
	errors_utils "pmtrack/internal/util/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DelegationResolver answers who is a member, who acts for whom and who is
// on the team. Every answer is read from storage on each call.
type DelegationResolver struct {
	assignmentRepository *projects_repositories.AssignmentRepository
	delegationRepository *projects_repositories.DelegationRepository
	userService          *users_services.UserService
}

// WithTx returns a resolver whose reads run inside tx, so a mutation can
// re-check relationships at write time.
func (r *DelegationResolver) WithTx(tx *gorm.DB) *DelegationResolver {
	return &DelegationResolver{
		assignmentRepository: r.assignmentRepository.WithTx(tx),
		delegationRepository: r.delegationRepository.WithTx(tx),
		userService:          r.userService,
	}
}

func (r *DelegationResolver) IsActiveMember(projectID, userID uuid.UUID) (bool, error) {
	assignment, err := r.assignmentRepository.GetActiveAssignment(projectID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get assignment: %w", err)
	}

	return assignment != nil, nil
}

// ActiveBeneficiaryOf returns the beneficiary the user currently acts for
// on the project, or nil if the user is not a delegate there.
func (r *DelegationResolver) ActiveBeneficiaryOf(projectID, userID uuid.UUID) (*uuid.UUID, error) {
	delegation, err := r.delegationRepository.GetActiveDelegationOf(projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get delegation: %w", err)
	}

	if delegation == nil {
		return nil, nil
	}

	return &delegation.ProjectOnBoardUserID, nil
}

func (r *DelegationResolver) DelegatesOf(projectID, beneficiaryID uuid.UUID) ([]uuid.UUID, error) {
	delegations, err := r.delegationRepository.GetActiveDelegationsFor(projectID, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get delegations: %w", err)
	}

	delegates := make([]uuid.UUID, 0, len(delegations))
	for _, delegation := range delegations {
		delegates = append(delegates, delegation.ShadowResourceID)
	}

	return delegates, nil
}

// Beneficiaries lists active members in assignment order. With
// includeDelegated it also adds users who granted an active delegation.
func (r *DelegationResolver) Beneficiaries(projectID uuid.UUID, includeDelegated bool) ([]uuid.UUID, error) {
	assignments, err := r.assignmentRepository.GetActiveAssignments(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	seen := make(map[uuid.UUID]bool, len(assignments))
	beneficiaries := make([]uuid.UUID, 0, len(assignments))
	for _, assignment := range assignments {
		if !seen[assignment.UserID] {
			seen[assignment.UserID] = true
			beneficiaries = append(beneficiaries, assignment.UserID)
		}
	}

	if !includeDelegated {
		return beneficiaries, nil
	}

	delegations, err := r.delegationRepository.GetActiveDelegations(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get delegations: %w", err)
	}

	for _, delegation := range delegations {
		if !seen[delegation.ProjectOnBoardUserID] {
			seen[delegation.ProjectOnBoardUserID] = true
			beneficiaries = append(beneficiaries, delegation.ProjectOnBoardUserID)
		}
	}

	return beneficiaries, nil
}

func (r *DelegationResolver) Relate(projectID, callerID uuid.UUID) (access.Relationship, error) {
	isMember, err := r.IsActiveMember(projectID, callerID)
	if err != nil {
		return access.Relationship{}, err
	}

	actsFor, err := r.ActiveBeneficiaryOf(projectID, callerID)
	if err != nil {
		return access.Relationship{}, err
	}

	return access.Relationship{CallerIsMember: isMember, CallerActsFor: actsFor}, nil
}

// UnifiedTeam lists direct members first, then delegates. A user appears at
// most once and a direct membership hides any delegation of the same user.
// Each entry is shown only if the caller may read it.
func (r *DelegationResolver) UnifiedTeam(
	projectID uuid.UUID,
	caller *users_models.User,
) ([]projects_dto.TeamMemberDTO, error) {
	relationship := access.Relationship{}
	if !caller.IsAdmin() {
		var err error
		relationship, err = r.Relate(projectID, caller.ID)
		if err != nil {
			return nil, err
		}

		if !relationship.CallerIsMember && !relationship.IsDelegate() {
			return nil, errors_utils.NewForbiddenError("insufficient permissions to view project team")
		}
	}

	assignments, err := r.assignmentRepository.GetActiveAssignments(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	delegations, err := r.delegationRepository.GetActiveDelegations(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get delegations: %w", err)
	}

	userIDs := make([]uuid.UUID, 0, len(assignments)+len(delegations))
	for _, assignment := range assignments {
		userIDs = append(userIDs, assignment.UserID)
	}
	for _, delegation := range delegations {
		userIDs = append(userIDs, delegation.ShadowResourceID)
	}

	users, err := r.userService.GetUsersByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get team users: %w", err)
	}

	callerIdentity := caller.Caller()
	seen := make(map[uuid.UUID]bool, len(userIDs))
	team := make([]projects_dto.TeamMemberDTO, 0, len(userIDs))

	for _, assignment := range assignments {
		user, ok := users[assignment.UserID]
		if !ok || user.IsDeleted || seen[assignment.UserID] {
			continue
		}

		if !access.Authorize(access.OperationRead, assignment.Subject(), callerIdentity, relationship).Allowed {
			continue
		}

		seen[assignment.UserID] = true
		assignmentID := assignment.ID
		team = append(team, projects_dto.TeamMemberDTO{
			UserID:       user.ID,
			Email:        user.Email,
			FullName:     user.FullName,
			Role:         assignment.Role,
			IsShadow:     false,
			AssignmentID: &assignmentID,
			AssignedDate: assignment.AssignedDate,
		})
	}

	for _, delegation := range delegations {
		user, ok := users[delegation.ShadowResourceID]
		if !ok || user.IsDeleted || seen[delegation.ShadowResourceID] {
			continue
		}

		if !access.Authorize(access.OperationRead, delegation.Subject(), callerIdentity, relationship).Allowed {
			continue
		}

		seen[delegation.ShadowResourceID] = true
		delegationID := delegation.ID
		addedBy := delegation.ProjectOnBoardUserID
		team = append(team, projects_dto.TeamMemberDTO{
			UserID:        user.ID,
			Email:         user.Email,
			FullName:      user.FullName,
			Role:          delegation.Role,
			IsShadow:      true,
			AddedByUserID: &addedBy,
			DelegationID:  &delegationID,
			AssignedDate:  delegation.AssignedDate,
		})
	}

	return team, nil
}
