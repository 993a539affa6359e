package column

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("column: invalid argument")
	ErrOutOfRange      = errors.New("column: out of range")
	ErrUnsupported     = errors.New("column: unsupported operation")
	ErrMalformedWire   = errors.New("column: malformed wire data")
)

func errAppendType(v any, t *Type) error {
	return fmt.Errorf("%w: cannot append %T to %s column", ErrInvalidArgument, v, t.Name())
}
