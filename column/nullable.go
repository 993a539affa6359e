package column

import (
	"fmt"

	"github.com/tuannm99/novaclick/internal/wire"
)

// ColumnNullable is Nullable(T): an inner typed column plus a parallel
// UInt8 column of null flags (1 = null). Both always have the same
// length.
type ColumnNullable struct {
	typ    *Type
	nested Column
	nulls  *ColumnUInt8
}

func NewColumnNullable(nested Column) *ColumnNullable {
	t, _ := NewNullableType(nested.Type())
	return &ColumnNullable{
		typ:    t,
		nested: nested,
		nulls:  NewColumnUInt8(),
	}
}

func (c *ColumnNullable) Type() *Type { return c.typ }

func (c *ColumnNullable) Size() int { return c.nulls.Size() }

// AppendValue appends one non-null row. The value must match the nested
// column's element type.
func (c *ColumnNullable) AppendValue(v any) error {
	a, ok := c.nested.(valueAppender)
	if !ok {
		return fmt.Errorf("%w: nested %s column has no element append", ErrUnsupported, c.nested.Type().Name())
	}
	if err := a.appendAny(v); err != nil {
		return err
	}
	c.nulls.AppendValue(0)
	return nil
}

// AppendNull appends one null row. The nested column stores its default
// element to keep both columns the same length.
func (c *ColumnNullable) AppendNull() {
	if a, ok := c.nested.(valueAppender); ok {
		a.appendZero()
	}
	c.nulls.AppendValue(1)
}

// IsNull reports whether row n is null.
func (c *ColumnNullable) IsNull(n int) (bool, error) {
	f, err := c.nulls.At(n)
	if err != nil {
		return false, err
	}
	return f != 0, nil
}

// Nested returns the inner value column.
func (c *ColumnNullable) Nested() Column { return c.nested }

// Nulls returns the null-flag column.
func (c *ColumnNullable) Nulls() *ColumnUInt8 { return c.nulls }

func (c *ColumnNullable) Append(other Column) {
	o, ok := other.(*ColumnNullable)
	if !ok || !c.typ.Equal(other.Type()) {
		return
	}
	c.nested.Append(o.nested)
	c.nulls.Append(o.nulls)
}

func (c *ColumnNullable) Load(r *wire.Reader, rows int) error {
	if err := c.nulls.Load(r, rows); err != nil {
		// No nested rows were read: drop the partial flags.
		c.nulls.data = c.nulls.data[:c.nested.Size()]
		return err
	}
	if err := c.nested.Load(r, rows); err != nil {
		// Keep both columns the same length on a short stream.
		if c.nested.Size() < c.nulls.Size() {
			c.nulls.data = c.nulls.data[:c.nested.Size()]
		}
		return err
	}
	return nil
}

func (c *ColumnNullable) Save(w *wire.Writer) error {
	if err := c.nulls.Save(w); err != nil {
		return err
	}
	return c.nested.Save(w)
}

func (c *ColumnNullable) Slice(begin, n int) (Column, error) {
	nested, err := c.nested.Slice(begin, n)
	if err != nil {
		return nil, err
	}
	nulls, err := c.nulls.Slice(begin, n)
	if err != nil {
		return nil, err
	}
	return &ColumnNullable{typ: c.typ, nested: nested, nulls: nulls.(*ColumnUInt8)}, nil
}

func (c *ColumnNullable) Clear() {
	c.nested.Clear()
	c.nulls.Clear()
}

func (c *ColumnNullable) ReserveRows(rows int) {
	c.nested.ReserveRows(rows)
	c.nulls.ReserveRows(rows)
}

func (c *ColumnNullable) ElementCount(n int) int { return 1 }

func (c *ColumnNullable) appendAny(v any) error {
	if v == nil {
		c.AppendNull()
		return nil
	}
	return c.AppendValue(v)
}

func (c *ColumnNullable) appendZero() {
	c.AppendNull()
}
