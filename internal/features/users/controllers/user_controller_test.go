package users_controllers

import (
	"net/http"
	"testing"

	users_dto "pmtrack/internal/features/users/dto"
	users_enums "pmtrack/internal/features/users/enums"
	users_testing "pmtrack/internal/features/users/testing"
	test_utils "pmtrack/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_SignInUser_WithValidCredentials_ReturnsToken(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUserWithPassword(users_enums.UserRoleEmployee, "testpassword123")

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: user.Email, Password: "testpassword123"},
		http.StatusOK,
		&response,
	)

	assert.NotEmpty(t, response.Token)
	assert.Equal(t, user.ID, response.UserID)
	assert.Equal(t, user.Email, response.Email)
}

func Test_SignInUser_WithWrongPassword_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUserWithPassword(users_enums.UserRoleEmployee, "testpassword123")

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: user.Email, Password: "wrongpassword"},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "password is incorrect")
}

func Test_SignInUser_WithNonExistentUser_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "nobody" + uuid.New().String() + "@example.com", Password: "password123"},
		http.StatusBadRequest,
	)
}

func Test_SignInUser_WithInvalidJSON_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/signin", "", "{invalid json", http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func Test_CheckAdminHasPassword_WhenAdminHasNoPassword_ReturnsFalse(t *testing.T) {
	router := createUserTestRouter()
	users_testing.RecreateInitialAdmin()

	var response users_dto.IsAdminHasPasswordResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/users/admin/has-password", "", http.StatusOK, &response)

	assert.False(t, response.HasPassword)
}

func Test_SetAdminPassword_WhenAlreadySet_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()
	users_testing.RecreateInitialAdmin()

	request := users_dto.SetAdminPasswordRequestDTO{Password: "adminpassword123"}
	test_utils.MakePostRequest(t, router, "/api/v1/users/admin/set-password", "", request, http.StatusOK)

	var response users_dto.IsAdminHasPasswordResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/users/admin/has-password", "", http.StatusOK, &response)
	assert.True(t, response.HasPassword)

	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/admin/set-password", "", request, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "already set")
}

func Test_SetAdminPassword_WithShortPassword_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()
	users_testing.RecreateInitialAdmin()

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/admin/set-password",
		"",
		users_dto.SetAdminPasswordRequestDTO{Password: "short"},
		http.StatusBadRequest,
	)
}

func Test_ChangeUserPassword_WithValidData_PasswordChanged(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUserWithPassword(users_enums.UserRoleEmployee, "oldpassword123")

	var signinResponse users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: user.Email, Password: "oldpassword123"},
		http.StatusOK,
		&signinResponse,
	)

	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/change-password",
		"Bearer "+signinResponse.Token,
		users_dto.ChangePasswordRequestDTO{NewPassword: "newpassword123"},
		http.StatusOK,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: user.Email, Password: "oldpassword123"},
		http.StatusBadRequest,
	)
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: user.Email, Password: "newpassword123"},
		http.StatusOK,
	)
}

func Test_ChangeUserPassword_WithoutAuth_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/change-password",
		"",
		users_dto.ChangePasswordRequestDTO{NewPassword: "newpassword123"},
		http.StatusUnauthorized,
	)
}

func Test_ChangeUserPassword_WithShortPassword_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()
	testUser := users_testing.CreateTestUser(users_enums.UserRoleEmployee)

	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/change-password",
		"Bearer "+testUser.Token,
		users_dto.ChangePasswordRequestDTO{NewPassword: "short"},
		http.StatusBadRequest,
	)
}

func Test_GetCurrentUser_WithValidToken_ReturnsProfile(t *testing.T) {
	router := createUserTestRouter()
	testUser := users_testing.CreateTestUser(users_enums.UserRoleEmployee)

	var profile users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/users/me", "Bearer "+testUser.Token, http.StatusOK, &profile)

	assert.Equal(t, testUser.UserID, profile.ID)
	assert.Equal(t, testUser.Email, profile.Email)
	assert.Equal(t, users_enums.UserRoleEmployee, profile.Role)
	assert.True(t, profile.IsActive)
}

func Test_GetCurrentUser_WithInvalidToken_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "Bearer not-a-token", http.StatusUnauthorized)
}
