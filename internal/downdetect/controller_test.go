package downdetect

import (
	"net/http"
	"testing"

	test_utils "pmtrack/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func Test_IsAvailable_WithEmbeddedDatabase_ReturnsOk(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	GetDowndetectController().RegisterRoutes(router.Group("/api/v1"))

	response := test_utils.MakeGetRequest(t, router, "/api/v1/downdetect/is-available", "", http.StatusOK)

	assert.Contains(t, string(response.Body), "Service is available")
}
