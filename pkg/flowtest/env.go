package flowtest

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/afawcett/flowextensions/pkg/flow"
)

// Env wires an Engine, an HTTP server speaking the hosted API, and a
// Client connected to it. The server is torn down when the test ends
type Env struct {
	Engine *Engine
	Server *httptest.Server
	Client *flow.Client
}

// NewEnv creates a ready-to-use end-to-end test environment
func NewEnv(t *testing.T) *Env {
	t.Helper()

	engine := NewEngine()
	server := httptest.NewServer(NewServer(engine).SetupRoutes())
	t.Cleanup(server.Close)

	client := flow.NewClient(server.URL,
		flow.WithTimeout(5*time.Second))

	return &Env{
		Engine: engine,
		Server: server,
		Client: client,
	}
}
