package projects_controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	projects_dto "pmtrack/internal/features/projects/dto"
	projects_models "pmtrack/internal/features/projects/models"
	projects_testing "pmtrack/internal/features/projects/testing"
	users_enums "pmtrack/internal/features/users/enums"
	users_testing "pmtrack/internal/features/users/testing"
	test_utils "pmtrack/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AssignUser_Twice_SecondReturnsBadRequest(t *testing.T) {
	router := createProjectsTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	employee := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	project := projects_testing.CreateTestProject("Assign twice")

	url := fmt.Sprintf("/api/v1/projects/%s/assignments", project.ID)
	request := projects_dto.CreateAssignmentRequestDTO{UserID: employee.ID, Role: "Developer"}

	var first projects_models.ProjectAssignment
	test_utils.MakePostRequestAndUnmarshal(t, router, url, "Bearer "+admin.Token, request, http.StatusCreated, &first)

	resp := test_utils.MakePostRequest(t, router, url, "Bearer "+admin.Token, request, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "DUPLICATE_ASSIGNMENT")

	team := getTeam(t, project.ID, admin.Token)
	require.Len(t, team.Members, 1)
	require.NotNil(t, team.Members[0].AssignmentID)
	assert.Equal(t, first.ID, *team.Members[0].AssignmentID)
}

func Test_AssignUser_ByEmployee_ReturnsForbidden(t *testing.T) {
	router := createProjectsTestRouter()
	employee := users_testing.CreateTestUser(users_enums.UserRoleEmployee)
	project := projects_testing.CreateTestProject("Self assign")

	test_utils.MakePostRequest(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s/assignments", project.ID),
		"Bearer "+employee.Token,
		projects_dto.CreateAssignmentRequestDTO{UserID: employee.UserID},
		http.StatusForbidden,
	)
}

func Test_RemoveAssignment_ByAdmin_DropsMemberAndDelegates(t *testing.T) {
	router := createProjectsTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	beneficiary := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	project := projects_testing.CreateTestProject("Remove member")
	assignment := projects_testing.AssignTestUser(project.ID, beneficiary.ID)
	projects_testing.DelegateTestUser(project.ID, delegate.ID, beneficiary.ID)

	test_utils.MakeDeleteRequest(
		t, router,
		"/api/v1/projects/assignments/"+assignment.ID.String(),
		"Bearer "+admin.Token,
		http.StatusOK,
	)

	team := getTeam(t, project.ID, admin.Token)
	assert.Empty(t, team.Members)
}

func Test_CreateDelegation_ByMember_DelegateAppearsInTeam(t *testing.T) {
	router := createProjectsTestRouter()
	beneficiary := users_testing.CreateTestUser(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	project := projects_testing.CreateTestProject("Shadowed")
	projects_testing.AssignTestUser(project.ID, beneficiary.UserID)

	test_utils.MakePostRequest(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s/delegations", project.ID),
		"Bearer "+beneficiary.Token,
		projects_dto.CreateDelegationRequestDTO{ShadowResourceID: delegate.ID, Role: "Backup"},
		http.StatusCreated,
	)

	team := getTeam(t, project.ID, beneficiary.Token)
	require.Len(t, team.Members, 2)
	assert.Equal(t, beneficiary.UserID, team.Members[0].UserID)
	assert.False(t, team.Members[0].IsShadow)
	assert.Equal(t, delegate.ID, team.Members[1].UserID)
	assert.True(t, team.Members[1].IsShadow)
	require.NotNil(t, team.Members[1].AddedByUserID)
	assert.Equal(t, beneficiary.UserID, *team.Members[1].AddedByUserID)
}

func Test_CreateDelegation_ForDirectMember_ReturnsBadRequest(t *testing.T) {
	router := createProjectsTestRouter()
	beneficiary := users_testing.CreateTestUser(users_enums.UserRoleEmployee)
	teammate := users_testing.CreateTestUserModel(users_enums.UserRoleEmployee)
	project := projects_testing.CreateTestProject("Member shadow")
	projects_testing.AssignTestUser(project.ID, beneficiary.UserID)
	projects_testing.AssignTestUser(project.ID, teammate.ID)

	resp := test_utils.MakePostRequest(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s/delegations", project.ID),
		"Bearer "+beneficiary.Token,
		projects_dto.CreateDelegationRequestDTO{ShadowResourceID: teammate.ID},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "DELEGATE_IS_MEMBER")
}

func Test_RemoveDelegation_ByDelegate_ReturnsForbidden(t *testing.T) {
	router := createProjectsTestRouter()
	beneficiary := users_testing.CreateTestUser(users_enums.UserRoleEmployee)
	delegate := users_testing.CreateTestUser(users_enums.UserRoleEmployee)
	project := projects_testing.CreateTestProject("Sticky")
	projects_testing.AssignTestUser(project.ID, beneficiary.UserID)
	delegation := projects_testing.DelegateTestUser(project.ID, delegate.UserID, beneficiary.UserID)

	url := "/api/v1/projects/delegations/" + delegation.ID.String()

	test_utils.MakeDeleteRequest(t, router, url, "Bearer "+delegate.Token, http.StatusForbidden)
	test_utils.MakeDeleteRequest(t, router, url, "Bearer "+beneficiary.Token, http.StatusOK)

	team := getTeam(t, project.ID, beneficiary.Token)
	require.Len(t, team.Members, 1)
	assert.Equal(t, beneficiary.UserID, team.Members[0].UserID)
}

func Test_GetTeam_ByOutsider_ReturnsForbidden(t *testing.T) {
	router := createProjectsTestRouter()
	outsider := users_testing.CreateTestUser(users_enums.UserRoleEmployee)
	project := projects_testing.CreateTestProject("Closed team")

	test_utils.MakeGetRequest(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s/team", project.ID),
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
}

func Test_GetTeam_WithInvalidProjectID_ReturnsBadRequest(t *testing.T) {
	router := createProjectsTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	test_utils.MakeGetRequest(t, router, "/api/v1/projects/not-a-uuid/team", "Bearer "+admin.Token, http.StatusBadRequest)
}

func getTeam(t *testing.T, projectID uuid.UUID, token string) projects_dto.GetTeamResponseDTO {
	t.Helper()

	resp := test_utils.MakeGetRequest(
		t, createProjectsTestRouter(),
		fmt.Sprintf("/api/v1/projects/%s/team", projectID),
		"Bearer "+token,
		http.StatusOK,
	)

	var team projects_dto.GetTeamResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body, &team))

	return team
}
