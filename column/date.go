package column

import (
	"time"

	"github.com/tuannm99/novaclick/internal/wire"
)

const secondsPerDay = 86400

// ColumnDate stores days since the Unix epoch in an inner UInt16 column.
// Conversion to absolute time happens only at the accessors; the wire
// carries the raw day counts.
type ColumnDate struct {
	typ  *Type
	data *ColumnUInt16
}

func NewColumnDate() *ColumnDate {
	return &ColumnDate{typ: TypeDate, data: NewColumnUInt16()}
}

func (c *ColumnDate) Type() *Type { return c.typ }

func (c *ColumnDate) Size() int { return c.data.Size() }

// AppendTime appends one row, truncating t to its day.
func (c *ColumnDate) AppendTime(t time.Time) {
	c.data.AppendValue(uint16(t.Unix() / secondsPerDay))
}

// AppendDays appends one row as a raw day count.
func (c *ColumnDate) AppendDays(days uint16) {
	c.data.AppendValue(days)
}

// At returns the row as midnight UTC of the stored day.
func (c *ColumnDate) At(n int) (time.Time, error) {
	d, err := c.data.At(n)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(d)*secondsPerDay, 0).UTC(), nil
}

// DaysAt returns the raw day count at row n.
func (c *ColumnDate) DaysAt(n int) (uint16, error) {
	return c.data.At(n)
}

func (c *ColumnDate) Append(other Column) {
	o, ok := other.(*ColumnDate)
	if !ok || !c.typ.Equal(other.Type()) {
		return
	}
	c.data.Append(o.data)
}

func (c *ColumnDate) Load(r *wire.Reader, rows int) error {
	return c.data.Load(r, rows)
}

func (c *ColumnDate) Save(w *wire.Writer) error {
	return c.data.Save(w)
}

func (c *ColumnDate) Slice(begin, n int) (Column, error) {
	inner, err := c.data.Slice(begin, n)
	if err != nil {
		return nil, err
	}
	return &ColumnDate{typ: c.typ, data: inner.(*ColumnUInt16)}, nil
}

func (c *ColumnDate) Clear() { c.data.Clear() }

func (c *ColumnDate) ReserveRows(rows int) { c.data.ReserveRows(rows) }

func (c *ColumnDate) ElementCount(n int) int { return 1 }

func (c *ColumnDate) appendAny(v any) error {
	switch x := v.(type) {
	case time.Time:
		c.AppendTime(x)
	case uint16:
		c.AppendDays(x)
	default:
		return errAppendType(v, c.typ)
	}
	return nil
}

func (c *ColumnDate) appendZero() { c.AppendDays(0) }

// ColumnDateTime stores seconds since the Unix epoch in an inner UInt32
// column.
type ColumnDateTime struct {
	typ  *Type
	data *ColumnUInt32
}

func NewColumnDateTime() *ColumnDateTime {
	return &ColumnDateTime{typ: TypeDateTime, data: NewColumnUInt32()}
}

func (c *ColumnDateTime) Type() *Type { return c.typ }

func (c *ColumnDateTime) Size() int { return c.data.Size() }

// AppendTime appends one row with second precision.
func (c *ColumnDateTime) AppendTime(t time.Time) {
	c.data.AppendValue(uint32(t.Unix()))
}

// AppendUnix appends one row as raw seconds since the epoch.
func (c *ColumnDateTime) AppendUnix(sec uint32) {
	c.data.AppendValue(sec)
}

func (c *ColumnDateTime) At(n int) (time.Time, error) {
	s, err := c.data.At(n)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(s), 0).UTC(), nil
}

// UnixAt returns the raw second count at row n.
func (c *ColumnDateTime) UnixAt(n int) (uint32, error) {
	return c.data.At(n)
}

func (c *ColumnDateTime) Append(other Column) {
	o, ok := other.(*ColumnDateTime)
	if !ok || !c.typ.Equal(other.Type()) {
		return
	}
	c.data.Append(o.data)
}

func (c *ColumnDateTime) Load(r *wire.Reader, rows int) error {
	return c.data.Load(r, rows)
}

func (c *ColumnDateTime) Save(w *wire.Writer) error {
	return c.data.Save(w)
}

func (c *ColumnDateTime) Slice(begin, n int) (Column, error) {
	inner, err := c.data.Slice(begin, n)
	if err != nil {
		return nil, err
	}
	return &ColumnDateTime{typ: c.typ, data: inner.(*ColumnUInt32)}, nil
}

func (c *ColumnDateTime) Clear() { c.data.Clear() }

func (c *ColumnDateTime) ReserveRows(rows int) { c.data.ReserveRows(rows) }

func (c *ColumnDateTime) ElementCount(n int) int { return 1 }

func (c *ColumnDateTime) appendAny(v any) error {
	switch x := v.(type) {
	case time.Time:
		c.AppendTime(x)
	case uint32:
		c.AppendUnix(x)
	default:
		return errAppendType(v, c.typ)
	}
	return nil
}

func (c *ColumnDateTime) appendZero() { c.AppendUnix(0) }
