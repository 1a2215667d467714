package cascade_test

import (
	"testing"

	"pmtrack/internal/features/cascade"
	projects_models "pmtrack/internal/features/projects/models"
	projects_testing "pmtrack/internal/features/projects/testing"
	users_enums "pmtrack/internal/features/users/enums"
	users_models "pmtrack/internal/features/users/models"
	users_testing "pmtrack/internal/features/users/testing"
	"pmtrack/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isDeleted(t *testing.T, model any, id uuid.UUID) bool {
	t.Helper()

	var deleted bool
	err := storage.GetDb().Model(model).Select("is_deleted").Where("id = ?", id).Scan(&deleted).Error
	require.NoError(t, err)

	return deleted
}

func Test_SoftDelete_Project_RetiresAssignmentsAndDelegations(t *testing.T) {
	project := projects_testing.CreateTestProject("Cascade project")
	member := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	assignment := projects_testing.AssignTestUser(project.ID, member.ID)
	delegation := projects_testing.DelegateTestUser(project.ID, delegate.ID, member.ID)

	result, err := cascade.SoftDelete(storage.GetDb(), cascade.EntityProject, cascade.Keys{cascade.KeyID: project.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Root)
	assert.Equal(t, int64(1), result.Affected["project_assignments"])
	assert.Equal(t, int64(1), result.Affected["shadow_delegations"])

	assert.True(t, isDeleted(t, &projects_models.Project{}, project.ID))
	assert.True(t, isDeleted(t, &projects_models.ProjectAssignment{}, assignment.ID))
	assert.True(t, isDeleted(t, &projects_models.ShadowDelegation{}, delegation.ID))
	assert.False(t, isDeleted(t, &users_models.User{}, member.ID))
}

func Test_SoftDelete_User_RetiresDelegationsOnBothSides(t *testing.T) {
	project := projects_testing.CreateTestProject("Cascade user")
	member := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	teammate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	assignment := projects_testing.AssignTestUser(project.ID, member.ID)
	projects_testing.AssignTestUser(project.ID, teammate.ID)
	grantedByMember := projects_testing.DelegateTestUser(project.ID, delegate.ID, member.ID)

	otherProject := projects_testing.CreateTestProject("Cascade user other")
	projects_testing.AssignTestUser(otherProject.ID, teammate.ID)
	servedByMember := projects_testing.DelegateTestUser(otherProject.ID, member.ID, teammate.ID)

	result, err := cascade.SoftDelete(storage.GetDb(), cascade.EntityUser, cascade.Keys{cascade.KeyID: member.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Root)
	assert.Equal(t, int64(2), result.Affected["shadow_delegations"])
	assert.True(t, isDeleted(t, &projects_models.ProjectAssignment{}, assignment.ID))
	assert.True(t, isDeleted(t, &projects_models.ShadowDelegation{}, grantedByMember.ID))
	assert.True(t, isDeleted(t, &projects_models.ShadowDelegation{}, servedByMember.ID))
	assert.False(t, isDeleted(t, &projects_models.Project{}, project.ID))
}

func Test_SoftDelete_Assignment_OnlyRetiresDelegationsOfThatMember(t *testing.T) {
	project := projects_testing.CreateTestProject("Cascade assignment")
	member := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	teammate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	otherDelegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	assignment := projects_testing.AssignTestUser(project.ID, member.ID)
	projects_testing.AssignTestUser(project.ID, teammate.ID)
	memberDelegation := projects_testing.DelegateTestUser(project.ID, delegate.ID, member.ID)
	teammateDelegation := projects_testing.DelegateTestUser(project.ID, otherDelegate.ID, teammate.ID)

	_, err := cascade.SoftDelete(storage.GetDb(), cascade.EntityAssignment, cascade.Keys{
		cascade.KeyID:        assignment.ID,
		cascade.KeyProjectID: project.ID,
		cascade.KeyUserID:    member.ID,
	})
	require.NoError(t, err)

	assert.True(t, isDeleted(t, &projects_models.ShadowDelegation{}, memberDelegation.ID))
	assert.False(t, isDeleted(t, &projects_models.ShadowDelegation{}, teammateDelegation.ID))
}

func Test_SoftDelete_AlreadyDeletedRoot_AffectsNothing(t *testing.T) {
	project := projects_testing.CreateTestProject("Cascade twice")
	member := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	projects_testing.AssignTestUser(project.ID, member.ID)
	delegation := projects_testing.DelegateTestUser(project.ID, delegate.ID, member.ID)

	keys := cascade.Keys{cascade.KeyID: delegation.ID}

	first, err := cascade.SoftDelete(storage.GetDb(), cascade.EntityDelegation, keys)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Root)

	second, err := cascade.SoftDelete(storage.GetDb(), cascade.EntityDelegation, keys)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.Root)
}

func Test_SoftDelete_WithMissingKey_ReturnsError(t *testing.T) {
	_, err := cascade.SoftDelete(storage.GetDb(), cascade.EntityAssignment, cascade.Keys{cascade.KeyID: uuid.New()})
	assert.Error(t, err)

	_, err = cascade.SoftDelete(storage.GetDb(), cascade.Entity("invoice"), cascade.Keys{cascade.KeyID: uuid.New()})
	assert.Error(t, err)
}
