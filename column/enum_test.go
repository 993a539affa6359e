package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enum8Type(t *testing.T) *Type {
	t.Helper()
	typ, err := NewEnum8Type([]EnumItem{{"One", 1}, {"Two", 2}})
	require.NoError(t, err)
	return typ
}

// TestEnum8AppendAndLookup covers append by name and by code plus the
// string accessors.
func TestEnum8AppendAndLookup(t *testing.T) {
	c, err := NewColumnEnum8(enum8Type(t))
	require.NoError(t, err)

	require.NoError(t, c.AppendName("One"))
	c.AppendValue(2)
	require.Equal(t, 2, c.Size())

	v, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, int8(1), v)
	name, err := c.NameAt(0)
	require.NoError(t, err)
	assert.Equal(t, "One", name)

	v, err = c.At(1)
	require.NoError(t, err)
	assert.Equal(t, int8(2), v)
	name, err = c.NameAt(1)
	require.NoError(t, err)
	assert.Equal(t, "Two", name)

	err = c.AppendName("Three")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 2, c.Size())
}

func TestEnum8CheckedAppend(t *testing.T) {
	c, err := NewColumnEnum8(enum8Type(t))
	require.NoError(t, err)

	require.NoError(t, c.AppendChecked(1))
	err = c.AppendChecked(5)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, c.Size())

	// The unchecked path accepts any code.
	c.AppendValue(5)
	assert.Equal(t, 2, c.Size())
	_, err = c.NameAt(1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEnum8SetAt(t *testing.T) {
	c, err := NewColumnEnum8(enum8Type(t))
	require.NoError(t, err)
	c.AppendValue(1)

	require.NoError(t, c.SetNameAt(0, "Two"))
	v, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, int8(2), v)

	require.ErrorIs(t, c.SetAt(5, 1), ErrOutOfRange)
	require.ErrorIs(t, c.SetNameAt(0, "Nine"), ErrInvalidArgument)
}

// TestEnum8WireLayout checks that the byte layout matches the plain
// Int8 vector.
func TestEnum8WireLayout(t *testing.T) {
	c, err := NewColumnEnum8(enum8Type(t))
	require.NoError(t, err)
	c.AppendValue(1)
	c.AppendValue(2)

	raw := saveColumn(t, c)
	assert.Equal(t, []byte{0x01, 0x02}, raw)

	fresh, err := NewColumnEnum8(enum8Type(t))
	require.NoError(t, err)
	loadColumn(t, fresh, raw, 2)
	require.Equal(t, 2, fresh.Size())
	name, err := fresh.NameAt(1)
	require.NoError(t, err)
	assert.Equal(t, "Two", name)
}

func TestEnum16RoundTrip(t *testing.T) {
	typ, err := NewEnum16Type([]EnumItem{{"lo", -300}, {"hi", 300}})
	require.NoError(t, err)

	c, err := NewColumnEnum16(typ)
	require.NoError(t, err)
	require.NoError(t, c.AppendName("lo"))
	require.NoError(t, c.AppendName("hi"))

	raw := saveColumn(t, c)
	// Two int16 codes, little-endian.
	assert.Equal(t, []byte{0xd4, 0xfe, 0x2c, 0x01}, raw)

	fresh, err := NewColumnEnum16(typ)
	require.NoError(t, err)
	loadColumn(t, fresh, raw, 2)
	assert.Equal(t, []int16{-300, 300}, fresh.Data())
}

func TestEnumSliceAndAppend(t *testing.T) {
	c, err := NewColumnEnum8(enum8Type(t))
	require.NoError(t, err)
	c.AppendValue(1)
	c.AppendValue(2)
	c.AppendValue(1)

	s, err := c.Slice(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int8{2, 1}, s.(*ColumnEnum8).Data())

	other, err := NewColumnEnum8(enum8Type(t))
	require.NoError(t, err)
	other.AppendValue(2)
	c.Append(other)
	assert.Equal(t, 4, c.Size())

	// A different enum descriptor is a silent no-op.
	differs, err := NewEnum8Type([]EnumItem{{"A", 1}})
	require.NoError(t, err)
	d, err := NewColumnEnum8(differs)
	require.NoError(t, err)
	d.AppendValue(1)
	c.Append(d)
	assert.Equal(t, 4, c.Size())
}
