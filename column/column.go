// Package column implements the column family of the native protocol:
// typed row containers with a uniform operation set and their binary
// wire codec.
package column

import (
	"fmt"

	"github.com/tuannm99/novaclick/internal/wire"
)

// Column is the capability set shared by every variant.
type Column interface {
	// Type returns the column's descriptor.
	Type() *Type

	// Size returns the row count.
	Size() int

	// Append appends every row of other. If other's descriptor is not
	// structurally equal to this column's, the call is a no-op: the
	// caller may be probing.
	Append(other Column)

	// Load appends rows decoded from r. On a short stream the column
	// keeps the rows that were fully decoded and the error wraps
	// io.ErrUnexpectedEOF (io.EOF if nothing was read).
	Load(r *wire.Reader, rows int) error

	// Save writes every row to w.
	Save(w *wire.Writer) error

	// Slice returns a fresh column holding rows [begin, begin+n).
	// An out-of-range begin yields an empty column; n is clamped to the
	// available rows.
	Slice(begin, n int) (Column, error)

	// Clear resets the row count to zero, keeping capacity.
	Clear()

	// ReserveRows grows capacity without changing the size.
	ReserveRows(rows int)

	// ElementCount returns the number of elements at row n: 1 for
	// scalar columns, the array length for array columns.
	ElementCount(n int) int
}

// valueAppender is the untyped element-append path used by wrapper
// columns (Nullable). appendZero appends the type's default element.
type valueAppender interface {
	appendAny(v any) error
	appendZero()
}

var (
	_ Column = (*ColumnVector[uint64])(nil)
	_ Column = (*ColumnFixedString)(nil)
	_ Column = (*ColumnString)(nil)
	_ Column = (*ColumnDate)(nil)
	_ Column = (*ColumnDateTime)(nil)
	_ Column = (*ColumnArray)(nil)
	_ Column = (*ColumnNullable)(nil)
	_ Column = (*ColumnEnum[int8])(nil)
	_ Column = (*ColumnEnum[int16])(nil)
)

// New constructs an empty column matching the descriptor. Used by the
// block codec when it materializes a server-sent schema.
func New(t *Type) (Column, error) {
	switch t.Code() {
	case Int8:
		return NewColumnInt8(), nil
	case Int16:
		return NewColumnInt16(), nil
	case Int32:
		return NewColumnInt32(), nil
	case Int64:
		return NewColumnInt64(), nil
	case UInt8:
		return NewColumnUInt8(), nil
	case UInt16:
		return NewColumnUInt16(), nil
	case UInt32:
		return NewColumnUInt32(), nil
	case UInt64:
		return NewColumnUInt64(), nil
	case Float32:
		return NewColumnFloat32(), nil
	case Float64:
		return NewColumnFloat64(), nil
	case String:
		return NewColumnString(), nil
	case FixedString:
		return NewColumnFixedString(t.FixedSize())
	case Date:
		return NewColumnDate(), nil
	case DateTime:
		return NewColumnDateTime(), nil
	case Array:
		item, err := New(t.Item())
		if err != nil {
			return nil, err
		}
		return NewColumnArray(item), nil
	case Nullable:
		item, err := New(t.Item())
		if err != nil {
			return nil, err
		}
		return NewColumnNullable(item), nil
	case Enum8:
		return NewColumnEnum8(t)
	case Enum16:
		return NewColumnEnum16(t)
	default:
		return nil, fmt.Errorf("%w: type code %d", ErrInvalidArgument, t.Code())
	}
}
