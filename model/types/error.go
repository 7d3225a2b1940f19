package types

import "fmt"

// NewMissingParameterError describes a required executor parameter absent
// from the action's parameters bag.
func NewMissingParameterError(name string) error {
	return fmt.Errorf("missing required parameter: %v", name)
}

// NewInvalidInputError reports an executor input of an unexpected shape.
func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("invalid input %T", in)
}
