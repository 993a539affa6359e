package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleTypes(t *testing.T) {
	for _, name := range []string{
		"Int8", "Int16", "Int32", "Int64",
		"UInt8", "UInt16", "UInt32", "UInt64",
		"Float32", "Float64", "String", "Date", "DateTime",
	} {
		typ, err := ParseTypeName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, typ.Name())
	}
}

func TestParseComposite(t *testing.T) {
	typ, err := ParseTypeName("FixedString(16)")
	require.NoError(t, err)
	assert.Equal(t, FixedString, typ.Code())
	assert.Equal(t, 16, typ.FixedSize())

	typ, err = ParseTypeName("Array(UInt64)")
	require.NoError(t, err)
	assert.Equal(t, Array, typ.Code())
	assert.Equal(t, UInt64, typ.Item().Code())

	typ, err = ParseTypeName("Array(Array(Nullable(FixedString(8))))")
	require.NoError(t, err)
	assert.Equal(t, "Array(Array(Nullable(FixedString(8))))", typ.Name())

	typ, err = ParseTypeName("Nullable(Date)")
	require.NoError(t, err)
	assert.Equal(t, Nullable, typ.Code())
	assert.Equal(t, Date, typ.Item().Code())
}

func TestParseEnum(t *testing.T) {
	typ, err := ParseTypeName("Enum8('One'=1,'Two'=2)")
	require.NoError(t, err)
	assert.Equal(t, Enum8, typ.Code())
	assert.Equal(t, []EnumItem{{"One", 1}, {"Two", 2}}, typ.EnumItems())

	typ, err = ParseTypeName("Enum16('minus'=-300,'plus'=300)")
	require.NoError(t, err)
	assert.Equal(t, Enum16, typ.Code())
	assert.Equal(t, []EnumItem{{"minus", -300}, {"plus", 300}}, typ.EnumItems())

	// Escaped quote and backslash inside names.
	typ, err = ParseTypeName(`Enum8('it\'s'=1,'back\\slash'=2)`)
	require.NoError(t, err)
	assert.Equal(t, []EnumItem{{`it's`, 1}, {`back\slash`, 2}}, typ.EnumItems())
	// Render round-trips the escapes.
	assert.Equal(t, `Enum8('it\'s'=1,'back\\slash'=2)`, typ.Name())
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"Int9",
		"FixedString()",
		"FixedString(0)",
		"FixedString(16",
		"Array()",
		"Array(UInt64",
		"Array(UInt64))",
		"Nullable()",
		"Enum8()",
		"Enum8('One')",
		"Enum8('One'=1,'One'=2)",
		"Enum8('One'=300)",
		"Enum8('One'=1",
		"Enum8('One=1)",
		"Enum16('A'=40000)",
		"UInt64 ",
	} {
		_, err := ParseTypeName(in)
		require.ErrorIs(t, err, ErrMalformedWire, "input %q", in)
	}
}

func TestParseRoundTripsRendering(t *testing.T) {
	for _, name := range []string{
		"Array(Nullable(UInt8))",
		"Nullable(FixedString(3))",
		"Enum16('a'=1,'b'=2,'c'=3)",
	} {
		typ, err := ParseTypeName(name)
		require.NoError(t, err)
		assert.Equal(t, name, typ.Name())
	}
}
