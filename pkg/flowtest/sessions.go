package flowtest

import (
	"errors"
	"net/http"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreateSession(c *gin.Context) {
	var req api.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  "Invalid request body: " + err.Error(),
			Status: http.StatusBadRequest,
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusBadRequest,
		})
		return
	}

	sess, err := s.engine.CreateSession(
		c.Request.Context(), req.Flow, req.Inputs,
	)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrFlowNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, api.ErrorResponse{
			Error:  err.Error(),
			Status: status,
		})
		return
	}

	c.JSON(http.StatusCreated, api.SessionCreatedResponse{
		SessionID: sess.ID(),
		Flow:      req.Flow,
	})
}

func (s *Server) handleStartSession(c *gin.Context) {
	id := api.SessionID(c.Param("sessionID"))
	sess, ok := s.engine.Session(id)
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  ErrSessionNotFound.Error(),
			Status: http.StatusNotFound,
		})
		return
	}

	if err := sess.Start(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{
		Message: "Session started",
	})
}

func (s *Server) handleGetVariable(c *gin.Context) {
	id := api.SessionID(c.Param("sessionID"))
	sess, ok := s.engine.Session(id)
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  ErrSessionNotFound.Error(),
			Status: http.StatusNotFound,
		})
		return
	}

	name := api.Name(c.Param("name"))
	val, ok, err := sess.Variable(c.Request.Context(), name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNotStarted) {
			status = http.StatusConflict
		}
		c.JSON(status, api.ErrorResponse{
			Error:  err.Error(),
			Status: status,
		})
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, api.VariableResponse{
		Name:  name,
		Value: val,
	})
}
