package novaclick

import (
	"fmt"

	"github.com/tuannm99/novaclick/internal/wire"
)

// ServerError is an exception the server sent in place of a result.
type ServerError struct {
	Code       int32
	Name       string
	Message    string
	StackTrace string
	Nested     *ServerError
}

func (e *ServerError) Error() string {
	if e.Nested != nil {
		return fmt.Sprintf("%s (code %d): %s: %v", e.Name, e.Code, e.Message, e.Nested)
	}
	return fmt.Sprintf("%s (code %d): %s", e.Name, e.Code, e.Message)
}

func (e *ServerError) Unwrap() error {
	if e.Nested == nil {
		return nil
	}
	return e.Nested
}

func readException(r *wire.Reader) (*ServerError, error) {
	e := &ServerError{}
	var err error
	if e.Code, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if e.Name, err = r.ReadString(); err != nil {
		return nil, err
	}
	if e.Message, err = r.ReadString(); err != nil {
		return nil, err
	}
	if e.StackTrace, err = r.ReadString(); err != nil {
		return nil, err
	}
	hasNested, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if hasNested != 0 {
		if e.Nested, err = readException(r); err != nil {
			return nil, err
		}
	}
	return e, nil
}
