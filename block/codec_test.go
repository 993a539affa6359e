package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novaclick/column"
	"github.com/tuannm99/novaclick/internal/wire"
)

func encodeBlock(t *testing.T, b *Block) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, b.Encode(wire.NewWriter(&buf)))
	return buf.Bytes()
}

func decodeBlock(t *testing.T, b *Block, raw []byte) {
	t.Helper()
	require.NoError(t, b.Decode(wire.NewReader(bytes.NewReader(raw))))
}

func TestEmptyBlockEncoding(t *testing.T) {
	raw := encodeBlock(t, New())
	// Info terminator, zero columns, zero rows.
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, raw)

	b := New()
	decodeBlock(t, b, raw)
	assert.Equal(t, 0, b.ColumnCount())
	assert.Equal(t, 0, b.RowCount())
}

func TestSingleColumnLayout(t *testing.T) {
	b := New()
	id := column.NewColumnUInt8()
	id.AppendValues(7, 9)
	require.NoError(t, b.AppendColumn("id", id))

	raw := encodeBlock(t, b)
	assert.Equal(t, []byte{
		0x00,           // info terminator
		0x01,           // one column
		0x02,           // two rows
		0x02, 'i', 'd', // column name
		0x05, 'U', 'I', 'n', 't', '8', // type name
		0x07, 0x09, // column body
	}, raw)
}

func TestBlockRoundTrip(t *testing.T) {
	b := New()

	id := column.NewColumnUInt64()
	id.AppendValues(1, 2)
	require.NoError(t, b.AppendColumn("id", id))

	name := column.NewColumnString()
	name.AppendString("foo")
	name.AppendString("bar")
	require.NoError(t, b.AppendColumn("name", name))

	arr := column.NewColumnArray(column.NewColumnUInt64())
	row := column.NewColumnUInt64()
	row.AppendValues(10, 20)
	require.NoError(t, arr.AppendAsColumn(row))
	row2 := column.NewColumnUInt64()
	require.NoError(t, arr.AppendAsColumn(row2))
	require.NoError(t, b.AppendColumn("arr", arr))

	got := New()
	decodeBlock(t, got, encodeBlock(t, b))

	require.Equal(t, 3, got.ColumnCount())
	require.Equal(t, 2, got.RowCount())

	n, err := got.ColumnName(2)
	require.NoError(t, err)
	assert.Equal(t, "arr", n)

	col, err := got.Column(0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, col.(*column.ColumnUInt64).Data())

	col, err = got.Column(2)
	require.NoError(t, err)
	gotArr := col.(*column.ColumnArray)
	assert.Equal(t, 2, gotArr.ElementCount(0))
	assert.Equal(t, 0, gotArr.ElementCount(1))
}

func TestInfoFieldsRoundTrip(t *testing.T) {
	b := New()
	b.info = Info{IsOverflows: 1, BucketNum: 42}

	raw := encodeBlock(t, b)
	// field 1, value, field 2, value, terminator, counts.
	assert.Equal(t, []byte{
		0x01, 0x01,
		0x02, 0x2a, 0x00, 0x00, 0x00,
		0x00,
		0x00, 0x00,
	}, raw)

	got := New()
	decodeBlock(t, got, raw)
	assert.Equal(t, Info{IsOverflows: 1, BucketNum: 42}, got.Info())
}

func TestDecodeUnknownInfoField(t *testing.T) {
	b := New()
	err := b.Decode(wire.NewReader(bytes.NewReader([]byte{0x07})))
	require.ErrorIs(t, err, column.ErrMalformedWire)
}

func TestDecodeBadTypeName(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, w.WriteUvarint(0)) // info terminator
	require.NoError(t, w.WriteUvarint(1)) // one column
	require.NoError(t, w.WriteUvarint(0)) // zero rows
	require.NoError(t, w.WriteString("c"))
	require.NoError(t, w.WriteString("NotAType"))

	err := New().Decode(wire.NewReader(&buf))
	require.ErrorIs(t, err, column.ErrMalformedWire)
}

// TestDecodeReusesColumns accumulates two fragments into one block, the
// receive pattern a streaming select uses.
func TestDecodeReusesColumns(t *testing.T) {
	frag := func(vals ...uint64) []byte {
		src := New()
		id := column.NewColumnUInt64()
		id.AppendValues(vals...)
		require.NoError(t, src.AppendColumn("id", id))
		return encodeBlock(t, src)
	}

	b := New()
	decodeBlock(t, b, frag(1, 2))
	col, err := b.Column(0)
	require.NoError(t, err)
	first := col.(*column.ColumnUInt64)
	require.Equal(t, 2, b.RowCount())

	decodeBlock(t, b, frag(3))
	assert.Equal(t, 3, b.RowCount())

	col, err = b.Column(0)
	require.NoError(t, err)
	// Same column object, extended in place.
	assert.Same(t, first, col.(*column.ColumnUInt64))
	assert.Equal(t, []uint64{1, 2, 3}, first.Data())
}

// TestDecodeArrayFragments checks the offset rebase across fragments
// received into the same block.
func TestDecodeArrayFragments(t *testing.T) {
	frag := func(rows ...[]uint64) []byte {
		src := New()
		arr := column.NewColumnArray(column.NewColumnUInt64())
		for _, r := range rows {
			inner := column.NewColumnUInt64()
			inner.AppendValues(r...)
			require.NoError(t, arr.AppendAsColumn(inner))
		}
		require.NoError(t, src.AppendColumn("arr", arr))
		return encodeBlock(t, src)
	}

	b := New()
	decodeBlock(t, b, frag([]uint64{1}, []uint64{2, 3}))
	decodeBlock(t, b, frag([]uint64{4, 5, 6}))

	require.Equal(t, 3, b.RowCount())
	col, err := b.Column(0)
	require.NoError(t, err)
	arr := col.(*column.ColumnArray)
	assert.Equal(t, []uint64{1, 3, 6}, arr.Offsets().Data())
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, arr.Inner().(*column.ColumnUInt64).Data())
}

func TestDecodeReplacesMismatchedSlot(t *testing.T) {
	b := New()
	old := column.NewColumnUInt8()
	old.AppendValues(1)
	require.NoError(t, b.AppendColumn("x", old))
	b.Clear()

	src := New()
	s := column.NewColumnString()
	s.AppendString("y")
	require.NoError(t, src.AppendColumn("x", s))

	decodeBlock(t, b, encodeBlock(t, src))
	col, err := b.Column(0)
	require.NoError(t, err)
	_, ok := col.(*column.ColumnString)
	assert.True(t, ok)
	assert.Equal(t, 1, b.RowCount())
}
