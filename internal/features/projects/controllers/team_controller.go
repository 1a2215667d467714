package projects_controllers

import (
	"net/http"

	projects_dto "pmtrack/internal/features/projects/dto"
	projects_services "pmtrack/internal/features/projects/services"
	users_middleware "pmtrack/internal/features/users/middleware"
	errors_utils "pmtrack/internal/util/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TeamController serves assignments, shadow delegations and the unified team
type TeamController struct {
	assignmentService  *projects_services.AssignmentService
	delegationService  *projects_services.DelegationService
	delegationResolver *projects_services.DelegationResolver
}

func (c *TeamController) RegisterRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/projects")

	projectRoutes.POST("/:id/assignments", c.AssignUser)
	projectRoutes.DELETE("/assignments/:assignmentId", c.RemoveAssignment)
	projectRoutes.POST("/:id/delegations", c.CreateDelegation)
	projectRoutes.DELETE("/delegations/:delegationId", c.RemoveDelegation)
	projectRoutes.GET("/:id/team", c.GetTeam)
}

// AssignUser
// @Summary Assign a user to a project
// @Description Create a direct project membership (admin only)
// @Tags project-team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.CreateAssignmentRequestDTO true "Assignment data"
// @Success 201 {object} projects_models.ProjectAssignment
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/assignments [post]
func (c *TeamController) AssignUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request projects_dto.CreateAssignmentRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	assignment, err := c.assignmentService.AssignUser(projectID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, assignment)
}

// RemoveAssignment
// @Summary Remove a project assignment
// @Description Soft-delete an assignment and the delegations that member granted (admin only)
// @Tags project-team
// @Security BearerAuth
// @Param assignmentId path string true "Assignment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/assignments/{assignmentId} [delete]
func (c *TeamController) RemoveAssignment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignmentID, err := uuid.Parse(ctx.Param("assignmentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	if err := c.assignmentService.RemoveAssignment(assignmentID, user); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Assignment removed successfully"})
}

// CreateDelegation
// @Summary Register a shadow resource
// @Description Let another user log work on behalf of the beneficiary on this project
// @Tags project-team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.CreateDelegationRequestDTO true "Delegation data"
// @Success 201 {object} projects_models.ShadowDelegation
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/delegations [post]
func (c *TeamController) CreateDelegation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request projects_dto.CreateDelegationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	delegation, err := c.delegationService.CreateDelegation(projectID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, delegation)
}

// RemoveDelegation
// @Summary Remove a shadow resource
// @Description Beneficiary or admin removes a delegation, the delegate cannot
// @Tags project-team
// @Security BearerAuth
// @Param delegationId path string true "Delegation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/delegations/{delegationId} [delete]
func (c *TeamController) RemoveDelegation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	delegationID, err := uuid.Parse(ctx.Param("delegationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delegation ID"})
		return
	}

	if err := c.delegationService.RemoveDelegation(delegationID, user); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Delegation removed successfully"})
}

// GetTeam
// @Summary Get the unified project team
// @Description Direct members followed by shadow resources, filtered by what the caller may see
// @Tags project-team
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.GetTeamResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/team [get]
func (c *TeamController) GetTeam(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	members, err := c.delegationResolver.UnifiedTeam(projectID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects_dto.GetTeamResponseDTO{Members: members})
}
