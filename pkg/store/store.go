// Package store provides backends for configuration records. The Memory
// store backs tests and in-process fakes; the Redis and SQLite stores let
// deployments resolve records from local infrastructure instead of the
// hosted engine.
//
// Record names are admin-managed and normally unique, but none of the
// backends promise uniqueness, so Query returns a slice. Callers that
// need exactly one match enforce that themselves
package store

import (
	"context"
	"errors"

	"github.com/afawcett/flowextensions/pkg/api"
)

// Store is the read interface over configuration records
type Store interface {
	// Query returns every record with the given name
	Query(context.Context, api.Name) ([]*api.ConfigRecord, error)

	// List returns every record in the store
	List(context.Context) ([]*api.ConfigRecord, error)
}

// ErrRecordNotFound indicates a delete targeted a name with no records
var ErrRecordNotFound = errors.New("record not found")
