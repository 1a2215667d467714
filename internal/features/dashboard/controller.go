package dashboard

import (
	"net/http"

	users_middleware "pmtrack/internal/features/users/middleware"
	errors_utils "pmtrack/internal/util/errors"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboardService *DashboardService
}

func (c *DashboardController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", c.GetDashboard)
}

// GetDashboard
// @Summary Get dashboard statistics
// @Description Admins get global counters; employees get their projects and hours this month
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponseDTO
// @Failure 401 {object} map[string]string
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.dashboardService.GetDashboard(user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
