package worklogs_controllers

import (
	"net/http"

	users_middleware "pmtrack/internal/features/users/middleware"
	worklogs_dto "pmtrack/internal/features/worklogs/dto"
	worklogs_services "pmtrack/internal/features/worklogs/services"
	errors_utils "pmtrack/internal/util/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorklogController struct {
	worklogService *worklogs_services.WorklogService
}

func (c *WorklogController) RegisterRoutes(router *gin.RouterGroup) {
	worklogRoutes := router.Group("/worklogs")

	worklogRoutes.POST("", c.CreateWorklog)
	worklogRoutes.POST("/bulk", c.BulkCreateWorklogs)
	worklogRoutes.GET("/my", c.GetMyWorklogs)
	worklogRoutes.GET("/:id", c.GetWorklog)
	worklogRoutes.PUT("/:id", c.UpdateWorklog)
	worklogRoutes.DELETE("/:id", c.DeleteWorklog)

	router.GET("/projects/:id/worklogs", c.GetProjectWorklogs)
}

// CreateWorklog
// @Summary Log work
// @Description Log hours for yourself, or for the beneficiary you currently act for as shadow resource
// @Tags worklogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body worklogs_dto.CreateWorklogRequestDTO true "Worklog data"
// @Success 201 {object} worklogs_models.Worklog
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /worklogs [post]
func (c *WorklogController) CreateWorklog(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request worklogs_dto.CreateWorklogRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	worklog, err := c.worklogService.CreateWorklog(&request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, worklog)
}

// BulkCreateWorklogs
// @Summary Log several entries for one day
// @Description All rows are written or none; the first invalid row aborts the batch
// @Tags worklogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body worklogs_dto.BulkCreateWorklogsRequestDTO true "Worklog rows"
// @Success 201 {object} worklogs_dto.BulkCreateWorklogsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /worklogs/bulk [post]
func (c *WorklogController) BulkCreateWorklogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request worklogs_dto.BulkCreateWorklogsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	worklogs, err := c.worklogService.BulkCreateWorklogs(&request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, worklogs_dto.BulkCreateWorklogsResponseDTO{Worklogs: worklogs})
}

// GetMyWorklogs
// @Summary List my worklogs
// @Tags worklogs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} worklogs_dto.ListWorklogsResponseDTO
// @Router /worklogs/my [get]
func (c *WorklogController) GetMyWorklogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.worklogService.ListMyWorklogs(user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetWorklog
// @Summary Get worklog
// @Tags worklogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Worklog ID"
// @Success 200 {object} worklogs_dto.WorklogResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /worklogs/{id} [get]
func (c *WorklogController) GetWorklog(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	worklogID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worklog ID"})
		return
	}

	worklog, err := c.worklogService.GetWorklog(worklogID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, worklog)
}

// UpdateWorklog
// @Summary Update worklog
// @Description Omitted fields stay unchanged. Delegates may edit only while their delegation is active.
// @Tags worklogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Worklog ID"
// @Param request body worklogs_dto.UpdateWorklogRequestDTO true "Worklog fields"
// @Success 200 {object} worklogs_models.Worklog
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /worklogs/{id} [put]
func (c *WorklogController) UpdateWorklog(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	worklogID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worklog ID"})
		return
	}

	var request worklogs_dto.UpdateWorklogRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	worklog, err := c.worklogService.UpdateWorklog(worklogID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, worklog)
}

// DeleteWorklog
// @Summary Delete worklog
// @Tags worklogs
// @Security BearerAuth
// @Param id path string true "Worklog ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /worklogs/{id} [delete]
func (c *WorklogController) DeleteWorklog(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	worklogID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid worklog ID"})
		return
	}

	if err := c.worklogService.DeleteWorklog(worklogID, user); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Worklog deleted successfully"})
}

// GetProjectWorklogs
// @Summary List project worklogs
// @Tags worklogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param userId query string false "Beneficiary filter"
// @Param startDate query string false "First day (YYYY-MM-DD)"
// @Param endDate query string false "Last day (YYYY-MM-DD)"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} worklogs_dto.ListWorklogsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/worklogs [get]
func (c *WorklogController) GetProjectWorklogs(ctx *gin.Context) {
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

	request := &worklogs_dto.ListWorklogsRequestDTO{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.worklogService.ListProjectWorklogs(projectID, request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
