package users_controllers

import (
	"net/http"
	"testing"

	users_dto "pmtrack/internal/features/users/dto"
	users_enums "pmtrack/internal/features/users/enums"
	users_middleware "pmtrack/internal/features/users/middleware"
	users_services "pmtrack/internal/features/users/services"
	users_testing "pmtrack/internal/features/users/testing"
	test_utils "pmtrack/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func Test_AdminLifecycleE2E_CompletesSuccessfully(t *testing.T) {
	router := createE2ETestRouter()

	users_testing.RecreateInitialAdmin()

	// 1. Set initial admin password
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/admin/set-password",
		"",
		users_dto.SetAdminPasswordRequestDTO{Password: "adminpassword123"},
		http.StatusOK,
	)

	// 2. Admin signs in
	var adminSigninResponse users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "admin", Password: "adminpassword123"},
		http.StatusOK,
		&adminSigninResponse,
	)

	// 3. Admin creates an employee
	employeeEmail := "employee" + uuid.New().String()[:8] + "@example.com"
	var createdProfile users_dto.UserProfileResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/management",
		"Bearer "+adminSigninResponse.Token,
		users_dto.CreateEmployeeRequestDTO{
			Email:      employeeEmail,
			FullName:   "Jane Developer",
			Department: "Engineering",
			Position:   "Backend developer",
			Password:   "userpassword123",
		},
		http.StatusCreated,
		&createdProfile,
	)
	assert.Equal(t, users_enums.UserRoleEmployee, createdProfile.Role)

	// 4. Employee signs in and sees own profile
	var employeeSigninResponse users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: employeeEmail, Password: "userpassword123"},
		http.StatusOK,
		&employeeSigninResponse,
	)

	var profile users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+employeeSigninResponse.Token,
		http.StatusOK,
		&profile,
	)
	assert.Equal(t, createdProfile.ID, profile.ID)
	assert.Equal(t, "Jane Developer", profile.FullName)

	// 5. Admin deletes the employee, the employee token stops working
	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/users/management/"+createdProfile.ID.String(),
		"Bearer "+adminSigninResponse.Token,
		http.StatusOK,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+employeeSigninResponse.Token,
		http.StatusUnauthorized,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: employeeEmail, Password: "userpassword123"},
		http.StatusBadRequest,
	)
}

func createUserTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	GetUserController().RegisterRoutes(v1)

	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetUserController().RegisterProtectedRoutes(protected.(*gin.RouterGroup))
	GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(100), 100))

	users_services.GetUserService().SetAuditLogWriter(&AuditLogWriterStub{})

	return router
}

func createManagementTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")

	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetManagementController().RegisterRoutes(protected.(*gin.RouterGroup))

	users_services.GetUserService().SetAuditLogWriter(&AuditLogWriterStub{})
	users_services.GetManagementService().SetAuditLogWriter(&AuditLogWriterStub{})

	return router
}

func createE2ETestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	GetUserController().RegisterRoutes(v1)

	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetUserController().RegisterProtectedRoutes(protected.(*gin.RouterGroup))
	GetManagementController().RegisterRoutes(protected.(*gin.RouterGroup))
	GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(100), 100))

	users_services.GetUserService().SetAuditLogWriter(&AuditLogWriterStub{})
	users_services.GetManagementService().SetAuditLogWriter(&AuditLogWriterStub{})

	return router
}

type AuditLogWriterStub struct{}

func (a *AuditLogWriterStub) WriteAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID) {
	// do nothing
}
