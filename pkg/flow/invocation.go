package flow

import (
	"context"
	"fmt"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/afawcett/flowextensions/pkg/store"
)

// Invocation accumulates the configuration for a single flow run: how
// the flow name is resolved, the inputs passed in, and the outputs
// expected back. Configuration methods mutate and return the same
// Invocation so calls chain. Run snapshots the configuration first, so
// changes made while a run is in flight do not affect it
type Invocation struct {
	resolver Resolver
	executor Executor
	store    store.Store
	inputs   api.Args
	outputs  api.OutputSpecs
}

// NewInvocation creates an Invocation that executes through exec and
// resolves record lookups against st, which may be nil when lookups are
// not used. Callers holding a Client usually prefer Client.NewInvocation
func NewInvocation(exec Executor, st store.Store) *Invocation {
	return &Invocation{
		executor: exec,
		store:    st,
		inputs:   api.Args{},
		outputs:  api.OutputSpecs{},
	}
}

// Named selects the flow to run by its literal name
func (i *Invocation) Named(name api.FlowName) *Invocation {
	return i.WithResolver(ByName(name))
}

// Lookup selects the flow to run by reading the named field of a
// configuration record
func (i *Invocation) Lookup(record, field api.Name) *Invocation {
	return i.WithResolver(ByLookup(i.store, record, field))
}

// WithResolver selects the flow using a custom resolution strategy. The
// most recent selection wins
func (i *Invocation) WithResolver(r Resolver) *Invocation {
	i.resolver = r
	return i
}

// With adds a named input value. Setting the same name again replaces
// the earlier value
func (i *Invocation) With(name api.Name, value any) *Invocation {
	i.inputs[name] = value
	return i
}

// WithInputs merges the given arguments into the configured inputs
func (i *Invocation) WithInputs(args api.Args) *Invocation {
	for name, value := range args {
		i.inputs[name] = value
	}
	return i
}

// Output declares outputs the caller wants back if the flow produces
// them
func (i *Invocation) Output(names ...api.Name) *Invocation {
	for _, name := range names {
		i.outputs.Add(name, false)
	}
	return i
}

// Required declares outputs the flow must produce. A name already
// declared optional is upgraded
func (i *Invocation) Required(names ...api.Name) *Invocation {
	for _, name := range names {
		i.outputs.Add(name, true)
	}
	return i
}

// Inputs returns a copy of the configured inputs
func (i *Invocation) Inputs() api.Args {
	return i.inputs.Clone()
}

// Outputs returns a copy of the declared outputs
func (i *Invocation) Outputs() api.OutputSpecs {
	return i.outputs.Clone()
}

// Run resolves the flow name and executes the flow, returning the
// outputs it produced for the declared names. Run fails with
// ErrNoResolver when no flow has been selected, ErrResolveFlow when
// resolution fails, and ErrMissingOutput when the flow does not produce
// a required output
func (i *Invocation) Run(ctx context.Context) (api.Args, error) {
	if i.resolver == nil {
		return nil, ErrNoResolver
	}

	inputs := i.inputs.Clone()
	outputs := i.outputs.Clone()
	if err := outputs.Validate(); err != nil {
		return nil, err
	}

	name, err := i.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: %s", ErrResolveFlow,
			api.ErrFlowNameEmpty)
	}

	return i.executor.Execute(ctx, name, inputs, outputs)
}

// Returning runs the flow and extracts a single output, marking it
// required first
func (i *Invocation) Returning(
	ctx context.Context, name api.Name,
) (any, error) {
	res, err := i.Required(name).Run(ctx)
	if err != nil {
		return nil, err
	}
	return res[name], nil
}
