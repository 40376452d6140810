package api

import (
	"errors"
	"fmt"
	"slices"
)

type (
	// OutputSpec describes a single output declared on an invocation
	OutputSpec struct {
		Required bool `json:"required"`
	}

	// OutputSpecs maps declared output names to their specifications
	OutputSpecs map[Name]*OutputSpec
)

// Error messages for output validation
var (
	ErrOutputNameEmpty = errors.New("output name cannot be empty")
	ErrOutputSpecNil   = errors.New("output spec cannot be nil")
)

// Add declares an output. Declaring a name as required upgrades an
// earlier optional declaration; declaring it as optional never downgrades
// a required one
func (o OutputSpecs) Add(name Name, required bool) {
	if spec, ok := o[name]; ok {
		if required {
			spec.Required = true
		}
		return
	}
	o[name] = &OutputSpec{Required: required}
}

// Required returns whether the named output has been declared required
func (o OutputSpecs) Required(name Name) bool {
	spec, ok := o[name]
	return ok && spec.Required
}

// Names returns the declared output names in sorted order
func (o OutputSpecs) Names() []Name {
	res := make([]Name, 0, len(o))
	for name := range o {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// Clone returns a deep copy of the OutputSpecs
func (o OutputSpecs) Clone() OutputSpecs {
	res := make(OutputSpecs, len(o))
	for name, spec := range o {
		s := *spec
		res[name] = &s
	}
	return res
}

// Validate checks that all output declarations are well-formed
func (o OutputSpecs) Validate() error {
	for name, spec := range o {
		if name == "" {
			return ErrOutputNameEmpty
		}
		if spec == nil {
			return fmt.Errorf("%w: %s", ErrOutputSpecNil, name)
		}
	}
	return nil
}
