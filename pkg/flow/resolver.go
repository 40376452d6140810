package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/afawcett/flowextensions/pkg/store"
)

// Resolver determines the name of the flow an invocation will run
type Resolver interface {
	Resolve(context.Context) (api.FlowName, error)
}

// Error messages for flow resolution
var (
	ErrNoResolver  = errors.New("no flow resolver configured")
	ErrResolveFlow = errors.New("failed to resolve flow name")
)

type (
	nameResolver api.FlowName

	lookupResolver struct {
		store  store.Store
		record api.Name
		field  api.Name
	}
)

// ByName returns a Resolver that yields the given flow name unchanged
func ByName(name api.FlowName) Resolver {
	return nameResolver(name)
}

func (r nameResolver) Resolve(context.Context) (api.FlowName, error) {
	return api.FlowName(r), nil
}

// ByLookup returns a Resolver that reads the flow name from a field of a
// configuration record. Resolution fails unless the query matches
// exactly one record and that record carries the field
func ByLookup(s store.Store, record, field api.Name) Resolver {
	return &lookupResolver{store: s, record: record, field: field}
}

func (r *lookupResolver) Resolve(
	ctx context.Context,
) (api.FlowName, error) {
	if r.store == nil {
		return "", fmt.Errorf("%w: no record store configured",
			ErrResolveFlow)
	}

	recs, err := r.store.Query(ctx, r.record)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrResolveFlow, err)
	}
	if len(recs) == 0 {
		return "", fmt.Errorf("%w: no record named %q",
			ErrResolveFlow, r.record)
	}
	if len(recs) > 1 {
		return "", fmt.Errorf("%w: %d records named %q",
			ErrResolveFlow, len(recs), r.record)
	}

	val, ok := recs[0].Field(r.field)
	if !ok {
		return "", fmt.Errorf("%w: record %q has no field %q",
			ErrResolveFlow, r.record, r.field)
	}
	return api.FlowName(val), nil
}
