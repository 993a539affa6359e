package column

import (
	"fmt"

	"github.com/tuannm99/novaclick/internal/wire"
)

// ColumnEnum is Enum8 or Enum16: a contiguous buffer of the integer code
// type with the descriptor's name map for string accessors. The byte
// layout on the wire is identical to the matching integer vector.
type ColumnEnum[T int8 | int16] struct {
	typ  *Type
	base *ColumnVector[T]
}

type (
	ColumnEnum8  = ColumnEnum[int8]
	ColumnEnum16 = ColumnEnum[int16]
)

func NewColumnEnum8(t *Type) (*ColumnEnum8, error) {
	if t == nil || t.Code() != Enum8 {
		return nil, fmt.Errorf("%w: enum8 column needs an Enum8 type", ErrInvalidArgument)
	}
	c := NewColumnInt8()
	return &ColumnEnum[int8]{typ: t, base: c}, nil
}

func NewColumnEnum16(t *Type) (*ColumnEnum16, error) {
	if t == nil || t.Code() != Enum16 {
		return nil, fmt.Errorf("%w: enum16 column needs an Enum16 type", ErrInvalidArgument)
	}
	c := NewColumnInt16()
	return &ColumnEnum[int16]{typ: t, base: c}, nil
}

func (c *ColumnEnum[T]) Type() *Type { return c.typ }

func (c *ColumnEnum[T]) Size() int { return c.base.Size() }

// AppendValue appends one code without membership validation.
func (c *ColumnEnum[T]) AppendValue(v T) {
	c.base.AppendValue(v)
}

// AppendChecked appends one code, validating it against the descriptor's
// value set.
func (c *ColumnEnum[T]) AppendChecked(v T) error {
	if !c.typ.HasEnumValue(int16(v)) {
		return fmt.Errorf("%w: enum value %d not in %s", ErrInvalidArgument, v, c.typ.Name())
	}
	c.base.AppendValue(v)
	return nil
}

// AppendName appends the code the descriptor maps the name to.
func (c *ColumnEnum[T]) AppendName(name string) error {
	v, ok := c.typ.EnumValue(name)
	if !ok {
		return fmt.Errorf("%w: enum name %q not in %s", ErrInvalidArgument, name, c.typ.Name())
	}
	c.base.AppendValue(T(v))
	return nil
}

// At returns the code at row n.
func (c *ColumnEnum[T]) At(n int) (T, error) {
	return c.base.At(n)
}

// NameAt returns the descriptor's name for the code at row n.
func (c *ColumnEnum[T]) NameAt(n int) (string, error) {
	v, err := c.base.At(n)
	if err != nil {
		return "", err
	}
	name, ok := c.typ.EnumName(int16(v))
	if !ok {
		return "", fmt.Errorf("%w: enum value %d not in %s", ErrInvalidArgument, v, c.typ.Name())
	}
	return name, nil
}

// SetAt overwrites the code at row n.
func (c *ColumnEnum[T]) SetAt(n int, v T) error {
	if n < 0 || n >= c.base.Size() {
		return fmt.Errorf("%w: row %d of %d", ErrOutOfRange, n, c.base.Size())
	}
	c.base.data[n] = v
	return nil
}

// SetNameAt overwrites row n with the code the descriptor maps name to.
func (c *ColumnEnum[T]) SetNameAt(n int, name string) error {
	v, ok := c.typ.EnumValue(name)
	if !ok {
		return fmt.Errorf("%w: enum name %q not in %s", ErrInvalidArgument, name, c.typ.Name())
	}
	return c.SetAt(n, T(v))
}

// Data returns the backing code buffer.
func (c *ColumnEnum[T]) Data() []T { return c.base.Data() }

func (c *ColumnEnum[T]) Append(other Column) {
	o, ok := other.(*ColumnEnum[T])
	if !ok || !c.typ.Equal(other.Type()) {
		return
	}
	c.base.data = append(c.base.data, o.base.data...)
}

func (c *ColumnEnum[T]) Load(r *wire.Reader, rows int) error {
	return c.base.Load(r, rows)
}

func (c *ColumnEnum[T]) Save(w *wire.Writer) error {
	return c.base.Save(w)
}

func (c *ColumnEnum[T]) Slice(begin, n int) (Column, error) {
	inner, err := c.base.Slice(begin, n)
	if err != nil {
		return nil, err
	}
	return &ColumnEnum[T]{typ: c.typ, base: inner.(*ColumnVector[T])}, nil
}

func (c *ColumnEnum[T]) Clear() { c.base.Clear() }

func (c *ColumnEnum[T]) ReserveRows(rows int) { c.base.ReserveRows(rows) }

func (c *ColumnEnum[T]) ElementCount(n int) int { return 1 }

func (c *ColumnEnum[T]) appendAny(v any) error {
	switch x := v.(type) {
	case T:
		c.AppendValue(x)
	case string:
		return c.AppendName(x)
	default:
		return errAppendType(v, c.typ)
	}
	return nil
}

func (c *ColumnEnum[T]) appendZero() {
	var zero T
	c.base.AppendValue(zero)
}
