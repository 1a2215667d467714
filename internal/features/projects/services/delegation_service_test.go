package projects_services

import (
	"testing"

	projects_dto "pmtrack/internal/features/projects/dto"
	projects_testing "pmtrack/internal/features/projects/testing"
	users_enums "pmtrack/internal/features/users/enums"
	users_testing "pmtrack/internal/features/users/testing"
	errors_utils "pmtrack/internal/util/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateDelegation_ByMemberForOutsider_DelegationCreated(t *testing.T) {
	project := projects_testing.CreateTestProject("Delegation")
	beneficiary := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	projects_testing.AssignTestUser(project.ID, beneficiary.ID)

	delegation, err := GetDelegationService().CreateDelegation(
		project.ID,
		&projects_dto.CreateDelegationRequestDTO{ShadowResourceID: delegate.ID, Role: "Backup"},
		beneficiary,
	)
	require.NoError(t, err)

	assert.Equal(t, beneficiary.ID, delegation.ProjectOnBoardUserID)
	assert.Equal(t, delegate.ID, delegation.ShadowResourceID)

	actsFor, err := GetDelegationResolver().ActiveBeneficiaryOf(project.ID, delegate.ID)
	require.NoError(t, err)
	require.NotNil(t, actsFor)
	assert.Equal(t, beneficiary.ID, *actsFor)
}

func Test_CreateDelegation_ForSelf_ReturnsValidationError(t *testing.T) {
	project := projects_testing.CreateTestProject("Delegation")
	beneficiary := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	projects_testing.AssignTestUser(project.ID, beneficiary.ID)

	_, err := GetDelegationService().CreateDelegation(
		project.ID,
		&projects_dto.CreateDelegationRequestDTO{ShadowResourceID: beneficiary.ID},
		beneficiary,
	)

	assert.True(t, errors_utils.IsValidation(err))
}

func Test_CreateDelegation_WhenDelegateIsDirectMember_ReturnsValidationError(t *testing.T) {
	project := projects_testing.CreateTestProject("Delegation")
	beneficiary := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	teammate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	projects_testing.AssignTestUser(project.ID, beneficiary.ID)
	projects_testing.AssignTestUser(project.ID, teammate.ID)

	_, err := GetDelegationService().CreateDelegation(
		project.ID,
		&projects_dto.CreateDelegationRequestDTO{ShadowResourceID: teammate.ID},
		beneficiary,
	)

	var validationErr *errors_utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "DELEGATE_IS_MEMBER", validationErr.Code)
}

func Test_CreateDelegation_WhenDelegateAlreadyServesSomeone_ReturnsValidationError(t *testing.T) {
	project := projects_testing.CreateTestProject("Delegation")
	first := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	second := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	projects_testing.AssignTestUser(project.ID, first.ID)
	projects_testing.AssignTestUser(project.ID, second.ID)
	projects_testing.DelegateTestUser(project.ID, delegate.ID, first.ID)

	_, err := GetDelegationService().CreateDelegation(
		project.ID,
		&projects_dto.CreateDelegationRequestDTO{ShadowResourceID: delegate.ID},
		second,
	)

	var validationErr *errors_utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "DUPLICATE_DELEGATION", validationErr.Code)
}

func Test_CreateDelegation_ByNonMember_ReturnsForbidden(t *testing.T) {
	project := projects_testing.CreateTestProject("Delegation")
	outsider := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)

	_, err := GetDelegationService().CreateDelegation(
		project.ID,
		&projects_dto.CreateDelegationRequestDTO{ShadowResourceID: delegate.ID},
		outsider,
	)

	assert.True(t, errors_utils.IsForbidden(err))
}

func Test_CreateDelegation_ByEmployeeForSomeoneElse_ReturnsForbidden(t *testing.T) {
	project := projects_testing.CreateTestProject("Delegation")
	caller := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	beneficiary := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	projects_testing.AssignTestUser(project.ID, caller.ID)
	projects_testing.AssignTestUser(project.ID, beneficiary.ID)

	_, err := GetDelegationService().CreateDelegation(
		project.ID,
		&projects_dto.CreateDelegationRequestDTO{ShadowResourceID: delegate.ID, BeneficiaryID: &beneficiary.ID},
		caller,
	)

	assert.True(t, errors_utils.IsForbidden(err))
}

func Test_CreateDelegation_ByAdminForNonMemberBeneficiary_ReturnsValidationError(t *testing.T) {
	project := projects_testing.CreateTestProject("Delegation")
	admin := users_testing.CreateTestUserModel(users_enums.UserRoleAdmin)
	beneficiary := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)

	_, err := GetDelegationService().CreateDelegation(
		project.ID,
		&projects_dto.CreateDelegationRequestDTO{ShadowResourceID: delegate.ID, BeneficiaryID: &beneficiary.ID},
		admin,
	)

	var validationErr *errors_utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "BENEFICIARY_NOT_MEMBER", validationErr.Code)
}

func Test_CreateDelegation_WithUnknownProject_ReturnsNotFound(t *testing.T) {
	caller := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)

	_, err := GetDelegationService().CreateDelegation(
		uuid.New(),
		&projects_dto.CreateDelegationRequestDTO{ShadowResourceID: delegate.ID},
		caller,
	)

	assert.True(t, errors_utils.IsNotFound(err))
}

func Test_RemoveDelegation_ByDelegate_ReturnsForbidden(t *testing.T) {
	project := projects_testing.CreateTestProject("Delegation")
	beneficiary := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	projects_testing.AssignTestUser(project.ID, beneficiary.ID)
	delegation := projects_testing.DelegateTestUser(project.ID, delegate.ID, beneficiary.ID)

	err := GetDelegationService().RemoveDelegation(delegation.ID, delegate)
	assert.True(t, errors_utils.IsForbidden(err))

	stillActive, err := delegationRepository.GetActiveDelegationByID(delegation.ID)
	require.NoError(t, err)
	assert.NotNil(t, stillActive)
}

func Test_RemoveDelegation_ByAdmin_DelegationRemoved(t *testing.T) {
	project := projects_testing.CreateTestProject("Delegation")
	admin := users_testing.CreateTestUserModel(users_enums.UserRoleAdmin)
	beneficiary := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	projects_testing.AssignTestUser(project.ID, beneficiary.ID)
	delegation := projects_testing.DelegateTestUser(project.ID, delegate.ID, beneficiary.ID)

	require.NoError(t, GetDelegationService().RemoveDelegation(delegation.ID, admin))

	err := GetDelegationService().RemoveDelegation(delegation.ID, admin)
	assert.True(t, errors_utils.IsNotFound(err))
}
