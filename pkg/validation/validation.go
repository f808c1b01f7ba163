package validation

import (
	"errors"
	"strings"
)

// ValidationError reports the required fields that were missing or invalid on a save.
// It is the only error kind a create or update can fail with before touching a store.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required field(s): " + strings.Join(e.Fields, ", ")
}

// Fields collects invalid fields while a record is checked.
type Fields []string

// Require records name when ok is false.
func (f *Fields) Require(name string, ok bool) {
	if !ok {
		*f = append(*f, name)
	}
}

// Err returns a *ValidationError when any field was recorded, nil otherwise.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: append([]string(nil), f...)}
}

// As extracts a *ValidationError from err.
func As(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
