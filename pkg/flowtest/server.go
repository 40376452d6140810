package flowtest

import (
	"log/slog"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"
)

// Server exposes an Engine over the hosted engine's HTTP API, so client
// code can be exercised against real wire traffic
type Server struct {
	engine *Engine
}

// NewServer creates a Server for the given Engine
func NewServer(engine *Engine) *Server {
	return &Server{engine: engine}
}

// SetupRoutes configures the HTTP routes
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(
			func(_ *gin.Context, _ *slog.Logger) *slog.Logger {
				return slog.Default()
			},
		),
	))

	router.GET("/health", s.handleHealth)

	engine := router.Group("/engine")
	{
		engine.POST("/session", s.handleCreateSession)
		engine.POST("/session/:sessionID/start", s.handleStartSession)
		engine.GET(
			"/session/:sessionID/variable/:name", s.handleGetVariable,
		)
		engine.GET("/record", s.handleListRecords)
		engine.GET("/record/:name", s.handleQueryRecords)
	}

	return router
}
