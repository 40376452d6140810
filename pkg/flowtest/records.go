package flowtest

import (
	"net/http"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleListRecords(c *gin.Context) {
	recs, err := s.engine.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusInternalServerError,
		})
		return
	}
	c.JSON(http.StatusOK, recordsResponse(recs))
}

func (s *Server) handleQueryRecords(c *gin.Context) {
	recs, err := s.engine.Query(
		c.Request.Context(), api.Name(c.Param("name")),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusInternalServerError,
		})
		return
	}
	c.JSON(http.StatusOK, recordsResponse(recs))
}

// A query with no matches is a valid result, not an error, so both
// record endpoints always answer 200 with a possibly empty list
func recordsResponse(recs []*api.ConfigRecord) api.RecordsListResponse {
	if recs == nil {
		recs = []*api.ConfigRecord{}
	}
	return api.RecordsListResponse{
		Records: recs,
		Count:   len(recs),
	}
}
