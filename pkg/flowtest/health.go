package flowtest

import (
	"net/http"

	"github.com/afawcett/flowextensions"
	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Service: flowextensions.Name,
		Version: flowextensions.Version,
		Status:  "healthy",
	})
}
