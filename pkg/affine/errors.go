package affine

import (
	"errors"
	"fmt"
)

// Parameter errors.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnsupportedScale = errors.New("scaling with 3 values is not implemented yet")
	ErrDegenerateAxis   = errors.New("rotation axis has zero length")
)

// ParamError records which user parameter was rejected.
type ParamError struct {
	Param string // pivot, scale, translation, rotation, round
	Value string // raw user input
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Param, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}
