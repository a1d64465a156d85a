package input

import "errors"

// ErrMalformedInput is returned when the problem JSON is missing a
// required field or has a structurally invalid value.
var ErrMalformedInput = errors.New("input: malformed problem JSON")
