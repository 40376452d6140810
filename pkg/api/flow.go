package api

import "errors"

type (
	// FlowName identifies a flow definition hosted by the engine
	FlowName string

	// SessionID identifies a single interpreter session
	SessionID string
)

// Timeout and interval values are expressed in milliseconds
const (
	Second = int64(1000)
	Minute = 60 * Second
	Hour   = 60 * Minute
)

// ErrFlowNameEmpty indicates a flow name was empty
var ErrFlowNameEmpty = errors.New("flow name cannot be empty")

// Validate checks that the flow name is well-formed
func (n FlowName) Validate() error {
	if n == "" {
		return ErrFlowNameEmpty
	}
	return nil
}
