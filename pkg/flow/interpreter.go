package flow

import (
	"context"

	"github.com/afawcett/flowextensions/pkg/api"
)

type (
	// Interpreter creates sessions for named flows. It is the narrow
	// seam to the hosted engine: Client implements it over HTTP, and
	// flowtest.Engine implements it in-process for tests
	Interpreter interface {
		CreateSession(
			context.Context, api.FlowName, api.Args,
		) (Session, error)
	}

	// Session is a single run of a flow inside the interpreter.
	// Variables become readable once the session has started
	Session interface {
		// ID returns the interpreter's identifier for this session
		ID() api.SessionID

		// Start runs the flow to completion
		Start(context.Context) error

		// Variable reads a session variable by name. The boolean
		// reports whether the interpreter produced a value for it
		Variable(context.Context, api.Name) (any, bool, error)
	}
)
