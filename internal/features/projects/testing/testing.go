package projects_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"pmtrack/internal/features/audit_logs"
	projects_dto "pmtrack/internal/features/projects/dto"
	projects_enums "pmtrack/internal/features/projects/enums"
	projects_models "pmtrack/internal/features/projects/models"
	projects_repositories "pmtrack/internal/features/projects/repositories"
	users_dto "pmtrack/internal/features/users/dto"
	users_middleware "pmtrack/internal/features/users/middleware"
	users_services "pmtrack/internal/features/users/services"
	time_utils "pmtrack/internal/util/time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if routerGroup, ok := protected.(*gin.RouterGroup); ok {
			controller.RegisterRoutes(routerGroup)
		}
	}

	audit_logs.SetupDependencies()

	return router
}

// CreateTestProject stores an in-progress project directly in the database
func CreateTestProject(name string) *projects_models.Project {
	project := &projects_models.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: "test project",
		StartDate:   time_utils.TruncateToDay(time.Now().UTC().AddDate(0, -6, 0)),
		Status:      projects_enums.ProjectStatusInProgress,
		CreatedAt:   time.Now().UTC(),
	}

	if err := (&projects_repositories.ProjectRepository{}).CreateProject(project); err != nil {
		panic(err)
	}

	return project
}

func CreateTestProjectViaAPI(name string, admin *users_dto.SignInResponseDTO, router *gin.Engine) *projects_models.Project {
	request := projects_dto.CreateProjectRequestDTO{
		Name:      name,
		StartDate: "2025-01-01",
		Status:    projects_enums.ProjectStatusInProgress,
	}

	w := MakeAPIRequest(router, "POST", "/api/v1/projects", "Bearer "+admin.Token, request)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("Failed to create project. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var project projects_models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &project); err != nil {
		panic(err)
	}

	return &project
}

func AssignTestUser(projectID, userID uuid.UUID) *projects_models.ProjectAssignment {
	assignment := &projects_models.ProjectAssignment{
		ProjectID: projectID,
		UserID:    userID,
		Role:      "Developer",
	}

	if err := (&projects_repositories.AssignmentRepository{}).CreateAssignment(assignment); err != nil {
		panic(err)
	}

	return assignment
}

// DelegateTestUser stores a delegation without the service checks, callers
// are expected to pass a consistent graph.
func DelegateTestUser(projectID, delegateID, beneficiaryID uuid.UUID) *projects_models.ShadowDelegation {
	delegation := &projects_models.ShadowDelegation{
		ProjectID:            projectID,
		ShadowResourceID:     delegateID,
		ProjectOnBoardUserID: beneficiaryID,
		Role:                 "Shadow",
	}

	if err := (&projects_repositories.DelegationRepository{}).CreateDelegation(delegation); err != nil {
		panic(err)
	}

	return delegation
}

func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	requestBody := bytes.NewBuffer(nil)
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
