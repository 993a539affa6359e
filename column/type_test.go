package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "UInt64", TypeUInt64.Name())
	assert.Equal(t, "Float32", TypeFloat32.Name())
	assert.Equal(t, "DateTime", TypeDateTime.Name())

	fs, err := NewFixedStringType(16)
	require.NoError(t, err)
	assert.Equal(t, "FixedString(16)", fs.Name())

	arr, err := NewArrayType(TypeUInt64)
	require.NoError(t, err)
	assert.Equal(t, "Array(UInt64)", arr.Name())

	nested, err := NewArrayType(arr)
	require.NoError(t, err)
	assert.Equal(t, "Array(Array(UInt64))", nested.Name())

	nul, err := NewNullableType(TypeDate)
	require.NoError(t, err)
	assert.Equal(t, "Nullable(Date)", nul.Name())

	e8, err := NewEnum8Type([]EnumItem{{"One", 1}, {"Two", 2}})
	require.NoError(t, err)
	assert.Equal(t, "Enum8('One'=1,'Two'=2)", e8.Name())
}

func TestEnumNameEscaping(t *testing.T) {
	e8, err := NewEnum8Type([]EnumItem{{`it's`, 1}, {`back\slash`, 2}})
	require.NoError(t, err)
	assert.Equal(t, `Enum8('it\'s'=1,'back\\slash'=2)`, e8.Name())
}

func TestTypeValidation(t *testing.T) {
	_, err := NewFixedStringType(0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewArrayType(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewNullableType(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewEnum8Type([]EnumItem{{"A", 1}, {"A", 2}})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewEnum8Type([]EnumItem{{"A", 1}, {"B", 1}})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewEnum8Type([]EnumItem{{"A", 300}})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewEnum16Type([]EnumItem{{"A", 300}})
	require.NoError(t, err)
}

func TestTypeEquality(t *testing.T) {
	assert.True(t, TypeUInt64.Equal(TypeUInt64))
	assert.False(t, TypeUInt64.Equal(TypeInt64))

	a1, _ := NewArrayType(TypeUInt64)
	a2, _ := NewArrayType(TypeUInt64)
	a3, _ := NewArrayType(TypeUInt32)
	assert.True(t, a1.Equal(a2))
	assert.False(t, a1.Equal(a3))

	f1, _ := NewFixedStringType(4)
	f2, _ := NewFixedStringType(4)
	f3, _ := NewFixedStringType(8)
	assert.True(t, f1.Equal(f2))
	assert.False(t, f1.Equal(f3))

	n1, _ := NewNullableType(TypeDate)
	n2, _ := NewNullableType(TypeDate)
	assert.True(t, n1.Equal(n2))
	assert.False(t, n1.Equal(a1))

	e1, _ := NewEnum8Type([]EnumItem{{"One", 1}, {"Two", 2}})
	e2, _ := NewEnum8Type([]EnumItem{{"One", 1}, {"Two", 2}})
	e3, _ := NewEnum8Type([]EnumItem{{"Two", 2}, {"One", 1}})
	assert.True(t, e1.Equal(e2))
	// Item order is part of the identity.
	assert.False(t, e1.Equal(e3))
}

func TestEnumLookups(t *testing.T) {
	e8, err := NewEnum8Type([]EnumItem{{"One", 1}, {"Two", 2}})
	require.NoError(t, err)

	v, ok := e8.EnumValue("Two")
	require.True(t, ok)
	assert.Equal(t, int16(2), v)

	name, ok := e8.EnumName(1)
	require.True(t, ok)
	assert.Equal(t, "One", name)

	_, ok = e8.EnumValue("Three")
	assert.False(t, ok)
	assert.False(t, e8.HasEnumValue(3))
	assert.True(t, e8.HasEnumValue(2))
}
