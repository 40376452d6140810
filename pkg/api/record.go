package api

import (
	"errors"
	"maps"
)

// ConfigRecord is an admin-managed configuration entry. Records are keyed
// by name, but uniqueness is not enforced at the storage level, so a query
// by name can yield zero, one, or several records
type ConfigRecord struct {
	Fields map[Name]string `json:"fields"`
	Name   Name            `json:"name"`
}

// Error messages for record validation
var (
	ErrRecordNameEmpty = errors.New("record name cannot be empty")
	ErrFieldNameEmpty  = errors.New("record field name cannot be empty")
)

// Field retrieves the value of a named field
func (r *ConfigRecord) Field(name Name) (string, bool) {
	val, ok := r.Fields[name]
	return val, ok
}

// Clone returns a copy of the record that can be mutated without
// affecting the receiver
func (r *ConfigRecord) Clone() *ConfigRecord {
	res := *r
	res.Fields = maps.Clone(r.Fields)
	return &res
}

// Equal returns whether two records have the same name and fields
func (r *ConfigRecord) Equal(other *ConfigRecord) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Name == other.Name && maps.Equal(r.Fields, other.Fields)
}

// Validate checks that the record is well-formed
func (r *ConfigRecord) Validate() error {
	if r.Name == "" {
		return ErrRecordNameEmpty
	}
	for name := range r.Fields {
		if name == "" {
			return ErrFieldNameEmpty
		}
	}
	return nil
}
