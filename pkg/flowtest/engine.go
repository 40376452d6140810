package flowtest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/afawcett/flowextensions/pkg/flow"
	"github.com/afawcett/flowextensions/pkg/store"
	"github.com/google/uuid"
)

type (
	// FlowFunc computes the outputs of a scripted flow from the session
	// inputs
	FlowFunc func(context.Context, api.Args) (api.Args, error)

	// Engine is an in-process fake of the hosted platform: scripted
	// flows, an interpreter session table, and a configuration record
	// store. It implements flow.Interpreter and store.Store directly
	Engine struct {
		flows    map[api.FlowName]FlowFunc
		sessions map[api.SessionID]*Session
		records  *store.Memory
		mu       sync.Mutex
	}

	// Session is one run of a scripted flow
	Session struct {
		engine  *Engine
		inputs  api.Args
		outputs api.Args
		flow    api.FlowName
		id      api.SessionID
		started bool
	}
)

// Error messages
var (
	ErrFlowNotFound    = errors.New("flow not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotStarted      = errors.New("session not started")
)

var (
	_ flow.Interpreter = (*Engine)(nil)
	_ store.Store      = (*Engine)(nil)
	_ flow.Session     = (*Session)(nil)
)

// NewEngine creates a fake engine with no flows or records
func NewEngine() *Engine {
	return &Engine{
		flows:    map[api.FlowName]FlowFunc{},
		sessions: map[api.SessionID]*Session{},
		records:  store.NewMemory(),
	}
}

// RegisterFlow scripts a flow that always produces the given outputs
func (e *Engine) RegisterFlow(name api.FlowName, outputs api.Args) {
	e.RegisterFlowFunc(name,
		func(context.Context, api.Args) (api.Args, error) {
			return outputs.Clone(), nil
		})
}

// RegisterFlowFunc scripts a flow that computes its outputs from the
// session inputs
func (e *Engine) RegisterFlowFunc(name api.FlowName, fn FlowFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flows[name] = fn
}

// FailFlow scripts a flow that always fails with the given message
func (e *Engine) FailFlow(name api.FlowName, msg string) {
	e.RegisterFlowFunc(name,
		func(context.Context, api.Args) (api.Args, error) {
			return nil, errors.New(msg)
		})
}

// PutRecord seeds a configuration record, replacing any records with
// the same name
func (e *Engine) PutRecord(rec *api.ConfigRecord) {
	e.records.Put(rec)
}

// AddRecord seeds a configuration record without replacing existing
// ones, letting tests stage ambiguous lookups
func (e *Engine) AddRecord(rec *api.ConfigRecord) {
	e.records.Add(rec)
}

// CreateSession creates a session for a scripted flow
func (e *Engine) CreateSession(
	_ context.Context, name api.FlowName, inputs api.Args,
) (flow.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.flows[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, name)
	}

	sess := &Session{
		engine: e,
		flow:   name,
		id:     api.SessionID(uuid.New().String()),
		inputs: inputs.Clone(),
	}
	e.sessions[sess.id] = sess
	return sess, nil
}

// Session retrieves a previously created session by ID
func (e *Engine) Session(id api.SessionID) (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sess, ok := e.sessions[id]
	return sess, ok
}

// SessionCount returns how many sessions have been created
func (e *Engine) SessionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

// Query returns seeded records with the given name
func (e *Engine) Query(
	ctx context.Context, name api.Name,
) ([]*api.ConfigRecord, error) {
	return e.records.Query(ctx, name)
}

// List returns every seeded record
func (e *Engine) List(ctx context.Context) ([]*api.ConfigRecord, error) {
	return e.records.List(ctx)
}

// ID returns the session identifier
func (s *Session) ID() api.SessionID {
	return s.id
}

// Flow returns the name of the flow this session runs
func (s *Session) Flow() api.FlowName {
	return s.flow
}

// Inputs returns a copy of the inputs the session was created with
func (s *Session) Inputs() api.Args {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()
	return s.inputs.Clone()
}

// Start runs the scripted flow. The flow function runs outside the
// engine lock so it may use the engine itself
func (s *Session) Start(ctx context.Context) error {
	s.engine.mu.Lock()
	fn := s.engine.flows[s.flow]
	inputs := s.inputs.Clone()
	s.engine.mu.Unlock()

	outputs, err := fn(ctx, inputs)
	if err != nil {
		return err
	}

	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()
	s.outputs = outputs.Clone()
	s.started = true
	return nil
}

// Variable reads an output produced by the flow. It fails until the
// session has started
func (s *Session) Variable(
	_ context.Context, name api.Name,
) (any, bool, error) {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()
	if !s.started {
		return nil, false, fmt.Errorf("%w: %s", ErrNotStarted, s.id)
	}
	val, ok := s.outputs[name]
	return val, ok, nil
}
