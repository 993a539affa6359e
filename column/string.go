package column

import (
	"errors"
	"fmt"
	"io"

	"github.com/tuannm99/novaclick/internal/wire"
)

// ColumnFixedString holds byte strings of exactly Width bytes each, in
// one contiguous buffer. Short appends are right-padded with NUL, long
// ones truncated.
type ColumnFixedString struct {
	typ   *Type
	width int
	data  []byte
	rows  int
}

func NewColumnFixedString(width int) (*ColumnFixedString, error) {
	t, err := NewFixedStringType(width)
	if err != nil {
		return nil, err
	}
	return &ColumnFixedString{typ: t, width: width}, nil
}

func (c *ColumnFixedString) Type() *Type { return c.typ }

func (c *ColumnFixedString) Size() int { return c.rows }

// Width returns the fixed byte width of each row.
func (c *ColumnFixedString) Width() int { return c.width }

// AppendValue appends one row: the first Width bytes of v, right-padded
// with NUL when v is shorter.
func (c *ColumnFixedString) AppendValue(v []byte) {
	if len(v) > c.width {
		v = v[:c.width]
	}
	c.data = append(c.data, v...)
	for i := len(v); i < c.width; i++ {
		c.data = append(c.data, 0)
	}
	c.rows++
}

func (c *ColumnFixedString) AppendString(s string) {
	c.AppendValue([]byte(s))
}

// At returns the row as a view into the backing buffer: exactly Width
// bytes, including any NUL padding.
func (c *ColumnFixedString) At(n int) ([]byte, error) {
	if n < 0 || n >= c.rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, n, c.rows)
	}
	return c.data[n*c.width : (n+1)*c.width], nil
}

// Data returns the backing buffer of Size()*Width() bytes.
func (c *ColumnFixedString) Data() []byte { return c.data[:c.rows*c.width] }

func (c *ColumnFixedString) Append(other Column) {
	o, ok := other.(*ColumnFixedString)
	if !ok || !c.typ.Equal(other.Type()) {
		return
	}
	c.data = append(c.data, o.data[:o.rows*o.width]...)
	c.rows += o.rows
}

func (c *ColumnFixedString) Load(r *wire.Reader, rows int) error {
	if rows == 0 {
		return nil
	}
	// Strings are not NUL-terminated on the wire: the body is exactly
	// rows*width bytes appended to the buffer tail.
	old := len(c.data)
	c.data = append(c.data, make([]byte, rows*c.width)...)
	n, err := io.ReadFull(r, c.data[old:])
	full := n / c.width
	c.data = c.data[:old+full*c.width]
	c.rows += full
	return err
}

func (c *ColumnFixedString) Save(w *wire.Writer) error {
	_, err := w.Write(c.data[:c.rows*c.width])
	return err
}

func (c *ColumnFixedString) Slice(begin, n int) (Column, error) {
	begin, n = clampSlice(begin, n, c.rows)
	out := &ColumnFixedString{typ: c.typ, width: c.width}
	out.data = append(out.data, c.data[begin*c.width:(begin+n)*c.width]...)
	out.rows = n
	return out, nil
}

func (c *ColumnFixedString) Clear() {
	c.data = c.data[:0]
	c.rows = 0
}

func (c *ColumnFixedString) ReserveRows(rows int) {
	need := (c.rows + rows) * c.width
	if cap(c.data) < need {
		grown := make([]byte, len(c.data), need)
		copy(grown, c.data)
		c.data = grown
	}
}

func (c *ColumnFixedString) ElementCount(n int) int { return 1 }

func (c *ColumnFixedString) appendAny(v any) error {
	switch x := v.(type) {
	case []byte:
		c.AppendValue(x)
	case string:
		c.AppendString(x)
	default:
		return fmt.Errorf("%w: cannot append %T to %s column", ErrInvalidArgument, v, c.typ.Name())
	}
	return nil
}

func (c *ColumnFixedString) appendZero() {
	c.AppendValue(nil)
}

// ColumnString holds variable-length byte strings. The logical size is
// decoupled from the storage length so Clear keeps the per-row buffers
// for reuse.
type ColumnString struct {
	typ  *Type
	data [][]byte
	size int
}

func NewColumnString() *ColumnString {
	return &ColumnString{typ: TypeString}
}

func (c *ColumnString) Type() *Type { return c.typ }

func (c *ColumnString) Size() int { return c.size }

// AppendValue appends one row, copying v.
func (c *ColumnString) AppendValue(v []byte) {
	if c.size < len(c.data) {
		c.data[c.size] = append(c.data[c.size][:0], v...)
	} else {
		c.data = append(c.data, append([]byte(nil), v...))
	}
	c.size++
}

func (c *ColumnString) AppendString(s string) {
	c.AppendValue([]byte(s))
}

// At returns the row's bytes. The slice aliases column storage; copy it
// if it must outlive the next Clear.
func (c *ColumnString) At(n int) ([]byte, error) {
	if n < 0 || n >= c.size {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, n, c.size)
	}
	return c.data[n], nil
}

func (c *ColumnString) Append(other Column) {
	o, ok := other.(*ColumnString)
	if !ok || !c.typ.Equal(other.Type()) {
		return
	}
	for i := 0; i < o.size; i++ {
		c.AppendValue(o.data[i])
	}
}

func (c *ColumnString) Load(r *wire.Reader, rows int) error {
	for i := 0; i < rows; i++ {
		v, err := r.ReadBytes()
		if err != nil {
			if errors.Is(err, io.EOF) && i > 0 {
				// A row boundary was reached: report truncation, keep
				// the decoded prefix.
				return io.ErrUnexpectedEOF
			}
			return err
		}
		c.AppendValue(v)
	}
	return nil
}

func (c *ColumnString) Save(w *wire.Writer) error {
	for i := 0; i < c.size; i++ {
		if err := w.WriteBytes(c.data[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *ColumnString) Slice(begin, n int) (Column, error) {
	begin, n = clampSlice(begin, n, c.size)
	out := NewColumnString()
	for i := begin; i < begin+n; i++ {
		out.AppendValue(c.data[i])
	}
	return out, nil
}

func (c *ColumnString) Clear() {
	c.size = 0
}

func (c *ColumnString) ReserveRows(rows int) {
	if cap(c.data)-len(c.data) < rows {
		grown := make([][]byte, len(c.data), len(c.data)+rows)
		copy(grown, c.data)
		c.data = grown
	}
}

func (c *ColumnString) ElementCount(n int) int { return 1 }

func (c *ColumnString) appendAny(v any) error {
	switch x := v.(type) {
	case []byte:
		c.AppendValue(x)
	case string:
		c.AppendString(x)
	default:
		return fmt.Errorf("%w: cannot append %T to String column", ErrInvalidArgument, v)
	}
	return nil
}

func (c *ColumnString) appendZero() {
	c.AppendValue(nil)
}
