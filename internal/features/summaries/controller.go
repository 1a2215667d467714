package summaries

import (
	"net/http"

	users_middleware "pmtrack/internal/features/users/middleware"
	errors_utils "pmtrack/internal/util/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SummaryController struct {
	summaryService *SummaryService
}

func (c *SummaryController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/projects/:id/summaries/generate", c.GenerateSummaries)
	router.GET("/projects/:id/summaries", c.GetSummaries)
}

// GenerateSummaries
// @Summary Generate monthly summaries
// @Description Rebuilds the summaries of every beneficiary for one month, replacing any previous run
// @Tags summaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body GenerateSummariesRequest true "Period"
// @Success 200 {object} GenerateSummariesResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /projects/{id}/summaries/generate [post]
func (c *SummaryController) GenerateSummaries(ctx *gin.Context) {
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

	var request GenerateSummariesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	summaries, err := c.summaryService.Generate(
		ctx.Request.Context(),
		projectID,
		request.Year,
		request.Month,
		request.IncludeShadow,
		user,
	)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, GenerateSummariesResponse{Summaries: summaries})
}

// GetSummaries
// @Summary List monthly summaries
// @Tags summaries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} ListSummariesResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/summaries [get]
func (c *SummaryController) GetSummaries(ctx *gin.Context) {
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

	summaries, err := c.summaryService.List(projectID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ListSummariesResponse{Summaries: summaries})
}
