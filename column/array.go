package column

import (
	"fmt"

	"github.com/tuannm99/novaclick/internal/wire"
)

// ColumnArray is Array(T): an inner column of the element type plus a
// UInt64 column of cumulative end-offsets. Row i spans inner rows
// [offsets[i-1], offsets[i]), with offsets[-1] taken as 0.
type ColumnArray struct {
	typ     *Type
	data    Column
	offsets *ColumnUInt64
}

// NewColumnArray wraps data as the element column of a new, empty array
// column.
func NewColumnArray(data Column) *ColumnArray {
	t, _ := NewArrayType(data.Type())
	return &ColumnArray{
		typ:     t,
		data:    data,
		offsets: NewColumnUInt64(),
	}
}

func (c *ColumnArray) Type() *Type { return c.typ }

func (c *ColumnArray) Size() int { return c.offsets.Size() }

// AppendAsColumn appends one row whose content is the whole of col.
func (c *ColumnArray) AppendAsColumn(col Column) error {
	if !c.data.Type().Equal(col.Type()) {
		return fmt.Errorf("%w: can't append column of type %s to array of %s",
			ErrInvalidArgument, col.Type().Name(), c.data.Type().Name())
	}
	c.offsets.AppendValue(c.end(c.offsets.Size()) + uint64(col.Size()))
	c.data.Append(col)
	return nil
}

// GetAsColumn returns row n as a fresh column of the element type.
func (c *ColumnArray) GetAsColumn(n int) (Column, error) {
	if n < 0 || n >= c.Size() {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, n, c.Size())
	}
	return c.data.Slice(c.Offset(n), c.ElementCount(n))
}

// Offset returns the inner index of the first element of row n. Combined
// with ElementCount and the inner column's Data this gives a zero-copy
// view of the row.
func (c *ColumnArray) Offset(n int) int {
	return int(c.end(n))
}

// Inner returns the element column.
func (c *ColumnArray) Inner() Column { return c.data }

// Offsets returns the cumulative end-offsets column.
func (c *ColumnArray) Offsets() *ColumnUInt64 { return c.offsets }

func (c *ColumnArray) ElementCount(n int) int {
	return int(c.end(n+1) - c.end(n))
}

// end returns the cumulative element count before row n.
func (c *ColumnArray) end(n int) uint64 {
	if n == 0 {
		return 0
	}
	return c.offsets.data[n-1]
}

func (c *ColumnArray) Append(other Column) {
	o, ok := other.(*ColumnArray)
	if !ok || !c.typ.Equal(other.Type()) {
		return
	}
	for i := 0; i < o.Size(); i++ {
		row, err := o.GetAsColumn(i)
		if err != nil {
			return
		}
		// Types are equal by construction, AppendAsColumn cannot fail.
		_ = c.AppendAsColumn(row)
	}
}

func (c *ColumnArray) Load(r *wire.Reader, rows int) error {
	if rows == 0 {
		return nil
	}
	// Capture the offset count before reading: only offsets appended by
	// this load get rebased afterwards.
	oldCount := c.offsets.Size()
	if err := c.offsets.Load(r, rows); err != nil {
		return err
	}
	newCount := c.offsets.Size()

	// The freshly read offsets are still relative to this batch, so the
	// last one is the number of inner elements to read.
	loadSize := c.offsets.data[newCount-1]
	if err := c.data.Load(r, int(loadSize)); err != nil {
		return err
	}

	if oldCount > 0 {
		adjust := c.offsets.data[oldCount-1]
		for i := oldCount; i < newCount; i++ {
			c.offsets.data[i] += adjust
		}
	}
	return nil
}

func (c *ColumnArray) Save(w *wire.Writer) error {
	if err := c.offsets.Save(w); err != nil {
		return err
	}
	return c.data.Save(w)
}

// Slice deep-copies rows [begin, begin+n) and rebases their offsets to
// start at zero.
func (c *ColumnArray) Slice(begin, n int) (Column, error) {
	begin, n = clampSlice(begin, n, c.Size())
	base := c.end(begin)
	inner, err := c.data.Slice(int(base), int(c.end(begin+n)-base))
	if err != nil {
		return nil, err
	}
	out := NewColumnArray(inner)
	for i := begin; i < begin+n; i++ {
		out.offsets.AppendValue(c.offsets.data[i] - base)
	}
	return out, nil
}

func (c *ColumnArray) Clear() {
	c.offsets.Clear()
	c.data.Clear()
}

func (c *ColumnArray) ReserveRows(rows int) {
	// Assume two elements per array.
	c.offsets.ReserveRows(rows)
	c.data.ReserveRows(2 * rows)
}

func (c *ColumnArray) appendAny(v any) error {
	col, ok := v.(Column)
	if !ok {
		return errAppendType(v, c.typ)
	}
	return c.AppendAsColumn(col)
}

func (c *ColumnArray) appendZero() {
	c.offsets.AppendValue(c.end(c.offsets.Size()))
}
