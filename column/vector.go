package column

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/tuannm99/novaclick/internal/wire"
)

// ColumnVector is a numeric column: a contiguous buffer of T encoded as
// little-endian fixed-width values on the wire.
type ColumnVector[T any] struct {
	typ  *Type
	elem int
	get  func([]byte) T
	put  func([]byte, T)
	data []T
}

type (
	ColumnInt8    = ColumnVector[int8]
	ColumnInt16   = ColumnVector[int16]
	ColumnInt32   = ColumnVector[int32]
	ColumnInt64   = ColumnVector[int64]
	ColumnUInt8   = ColumnVector[uint8]
	ColumnUInt16  = ColumnVector[uint16]
	ColumnUInt32  = ColumnVector[uint32]
	ColumnUInt64  = ColumnVector[uint64]
	ColumnFloat32 = ColumnVector[float32]
	ColumnFloat64 = ColumnVector[float64]
)

func NewColumnInt8() *ColumnInt8 {
	return &ColumnVector[int8]{
		typ: TypeInt8, elem: 1,
		get: func(b []byte) int8 { return int8(b[0]) },
		put: func(b []byte, v int8) { b[0] = uint8(v) },
	}
}

func NewColumnInt16() *ColumnInt16 {
	return &ColumnVector[int16]{
		typ: TypeInt16, elem: 2,
		get: func(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) },
		put: func(b []byte, v int16) { binary.LittleEndian.PutUint16(b, uint16(v)) },
	}
}

func NewColumnInt32() *ColumnInt32 {
	return &ColumnVector[int32]{
		typ: TypeInt32, elem: 4,
		get: func(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) },
		put: func(b []byte, v int32) { binary.LittleEndian.PutUint32(b, uint32(v)) },
	}
}

func NewColumnInt64() *ColumnInt64 {
	return &ColumnVector[int64]{
		typ: TypeInt64, elem: 8,
		get: func(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) },
		put: func(b []byte, v int64) { binary.LittleEndian.PutUint64(b, uint64(v)) },
	}
}

func NewColumnUInt8() *ColumnUInt8 {
	return &ColumnVector[uint8]{
		typ: TypeUInt8, elem: 1,
		get: func(b []byte) uint8 { return b[0] },
		put: func(b []byte, v uint8) { b[0] = v },
	}
}

func NewColumnUInt16() *ColumnUInt16 {
	return &ColumnVector[uint16]{
		typ: TypeUInt16, elem: 2,
		get: binary.LittleEndian.Uint16,
		put: binary.LittleEndian.PutUint16,
	}
}

func NewColumnUInt32() *ColumnUInt32 {
	return &ColumnVector[uint32]{
		typ: TypeUInt32, elem: 4,
		get: binary.LittleEndian.Uint32,
		put: binary.LittleEndian.PutUint32,
	}
}

func NewColumnUInt64() *ColumnUInt64 {
	return &ColumnVector[uint64]{
		typ: TypeUInt64, elem: 8,
		get: binary.LittleEndian.Uint64,
		put: binary.LittleEndian.PutUint64,
	}
}

func NewColumnFloat32() *ColumnFloat32 {
	return &ColumnVector[float32]{
		typ: TypeFloat32, elem: 4,
		get: func(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) },
		put: func(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) },
	}
}

func NewColumnFloat64() *ColumnFloat64 {
	return &ColumnVector[float64]{
		typ: TypeFloat64, elem: 8,
		get: func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) },
		put: func(b []byte, v float64) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) },
	}
}

func (c *ColumnVector[T]) Type() *Type { return c.typ }

func (c *ColumnVector[T]) Size() int { return len(c.data) }

// AppendValue appends one element.
func (c *ColumnVector[T]) AppendValue(v T) {
	c.data = append(c.data, v)
}

// AppendValues appends several elements.
func (c *ColumnVector[T]) AppendValues(vs ...T) {
	c.data = append(c.data, vs...)
}

// At returns the element at row n.
func (c *ColumnVector[T]) At(n int) (T, error) {
	var zero T
	if n < 0 || n >= len(c.data) {
		return zero, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, n, len(c.data))
	}
	return c.data[n], nil
}

// Data returns the backing buffer. Rows are contiguous, so callers can
// iterate without copying.
func (c *ColumnVector[T]) Data() []T { return c.data }

func (c *ColumnVector[T]) Append(other Column) {
	o, ok := other.(*ColumnVector[T])
	if !ok || !c.typ.Equal(other.Type()) {
		return
	}
	c.data = append(c.data, o.data...)
}

func (c *ColumnVector[T]) Load(r *wire.Reader, rows int) error {
	if rows == 0 {
		return nil
	}
	buf := make([]byte, rows*c.elem)
	n, err := io.ReadFull(r, buf)
	// Keep whatever decoded completely so the size stays coherent on a
	// short stream.
	for i := 0; i+c.elem <= n; i += c.elem {
		c.data = append(c.data, c.get(buf[i:]))
	}
	return err
}

func (c *ColumnVector[T]) Save(w *wire.Writer) error {
	buf := make([]byte, len(c.data)*c.elem)
	for i, v := range c.data {
		c.put(buf[i*c.elem:], v)
	}
	_, err := w.Write(buf)
	return err
}

func (c *ColumnVector[T]) Slice(begin, n int) (Column, error) {
	begin, n = clampSlice(begin, n, len(c.data))
	out := &ColumnVector[T]{typ: c.typ, elem: c.elem, get: c.get, put: c.put}
	out.data = append(out.data, c.data[begin:begin+n]...)
	return out, nil
}

func (c *ColumnVector[T]) Clear() {
	c.data = c.data[:0]
}

func (c *ColumnVector[T]) ReserveRows(rows int) {
	if cap(c.data)-len(c.data) < rows {
		grown := make([]T, len(c.data), len(c.data)+rows)
		copy(grown, c.data)
		c.data = grown
	}
}

func (c *ColumnVector[T]) ElementCount(n int) int { return 1 }

func (c *ColumnVector[T]) appendAny(v any) error {
	x, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: cannot append %T to %s column", ErrInvalidArgument, v, c.typ.Name())
	}
	c.data = append(c.data, x)
	return nil
}

func (c *ColumnVector[T]) appendZero() {
	var zero T
	c.data = append(c.data, zero)
}

// clampSlice maps a requested [begin, begin+n) window onto the available
// rows: an out-of-range begin yields an empty window, an overshooting n
// is clamped.
func clampSlice(begin, n, size int) (int, int) {
	if begin < 0 || begin >= size {
		return 0, 0
	}
	if n < 0 {
		n = 0
	}
	if begin+n > size {
		n = size - begin
	}
	return begin, n
}

