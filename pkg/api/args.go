package api

import "maps"

type (
	// Name identifies an input, output, variable, or record field
	Name string

	// Args is a map of argument names to their values
	Args map[Name]any
)

// Set returns a new Args with the specified key set to the given value.
// The receiver is not modified
func (a Args) Set(key Name, value any) Args {
	res := maps.Clone(a)
	if res == nil {
		res = Args{}
	}
	res[key] = value
	return res
}

// Clone returns a copy of the Args that can be mutated without affecting
// the receiver
func (a Args) Clone() Args {
	if a == nil {
		return Args{}
	}
	return maps.Clone(a)
}

// GetString retrieves a string value from Args with a default
func (a Args) GetString(key Name, defaultValue string) string {
	if val, ok := a[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean value from Args with a default
func (a Args) GetBool(key Name, defaultValue bool) bool {
	if val, ok := a[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return defaultValue
}

// GetInt retrieves an integer value from Args with a default. JSON
// decoding produces float64 for numbers, so those are converted
func (a Args) GetInt(key Name, defaultValue int) int {
	if val, ok := a[key]; ok {
		switch num := val.(type) {
		case int:
			return num
		case int64:
			return int(num)
		case float64:
			return int(num)
		}
	}
	return defaultValue
}
