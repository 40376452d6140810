package flowtest

import (
	"context"
	"slices"
	"sync"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/afawcett/flowextensions/pkg/flow"
)

type (
	// MockExecutor is a scripted flow.Executor that records the calls
	// made to it
	MockExecutor struct {
		result api.Args
		err    error
		calls  []ExecutorCall
		mu     sync.Mutex
	}

	// ExecutorCall captures the arguments of one Execute call
	ExecutorCall struct {
		Inputs  api.Args
		Outputs api.OutputSpecs
		Flow    api.FlowName
	}
)

var _ flow.Executor = (*MockExecutor)(nil)

// NewMockExecutor creates a MockExecutor that returns empty outputs
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// SetResult scripts the outputs returned by Execute
func (m *MockExecutor) SetResult(result api.Args) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = result
}

// SetError scripts Execute to fail with the given error
func (m *MockExecutor) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Execute records the call and returns the scripted result
func (m *MockExecutor) Execute(
	_ context.Context, name api.FlowName, inputs api.Args,
	outputs api.OutputSpecs,
) (api.Args, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, ExecutorCall{
		Flow:    name,
		Inputs:  inputs,
		Outputs: outputs,
	})
	if m.err != nil {
		return nil, m.err
	}
	return m.result.Clone(), nil
}

// Calls returns the recorded calls in order
func (m *MockExecutor) Calls() []ExecutorCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// LastCall returns the most recent recorded call, or nil when Execute
// has not been called
func (m *MockExecutor) LastCall() *ExecutorCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}
