package idgen

import "github.com/google/uuid"

// NewFunc produces a globally unique identifier. It is a variable so tests
// can stub it with a predictable sequence.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new identifier.
func New() string { return NewFunc() }
