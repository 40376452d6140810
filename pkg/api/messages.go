package api

// Request and response bodies for the engine's HTTP API
type (
	// CreateSessionRequest asks the engine to create an interpreter
	// session for a named flow
	CreateSessionRequest struct {
		Inputs Args     `json:"inputs,omitempty"`
		Flow   FlowName `json:"flow"`
	}

	// SessionCreatedResponse is returned when a session is created
	SessionCreatedResponse struct {
		SessionID SessionID `json:"session_id"`
		Flow      FlowName  `json:"flow"`
	}

	// VariableResponse carries the value of a single session variable
	VariableResponse struct {
		Value any  `json:"value"`
		Name  Name `json:"name"`
	}

	// RecordsListResponse lists configuration records matching a query
	RecordsListResponse struct {
		Records []*ConfigRecord `json:"records"`
		Count   int             `json:"count"`
	}

	// MessageResponse contains a simple confirmation message
	MessageResponse struct {
		Message string `json:"message"`
	}

	// ErrorResponse contains error details for a failed request
	ErrorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status,omitempty"`
	}

	// HealthResponse provides service health information
	HealthResponse struct {
		Service string `json:"service"`
		Version string `json:"version"`
		Status  string `json:"status"`
	}
)

// Validate checks that a session request names a flow
func (r *CreateSessionRequest) Validate() error {
	return r.Flow.Validate()
}
