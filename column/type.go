package column

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeCode identifies a column element kind.
type TypeCode uint8

const (
	Int8 TypeCode = iota
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	String
	FixedString
	DateTime
	Date
	Array
	Nullable
	Enum8
	Enum16
)

var typeCodeNames = map[TypeCode]string{
	Int8:        "Int8",
	Int16:       "Int16",
	Int32:       "Int32",
	Int64:       "Int64",
	UInt8:       "UInt8",
	UInt16:      "UInt16",
	UInt32:      "UInt32",
	UInt64:      "UInt64",
	Float32:     "Float32",
	Float64:     "Float64",
	String:      "String",
	FixedString: "FixedString",
	DateTime:    "DateTime",
	Date:        "Date",
	Array:       "Array",
	Nullable:    "Nullable",
	Enum8:       "Enum8",
	Enum16:      "Enum16",
}

// EnumItem is one (name, value) pair of an enum type. Items keep their
// insertion order when the type name is rendered.
type EnumItem struct {
	Name  string
	Value int16
}

// Type is an immutable descriptor of a column element type. Share freely;
// never mutate after construction.
type Type struct {
	code TypeCode

	fixedSize int         // FixedString
	item      *Type       // Array, Nullable
	items     []EnumItem  // Enum8, Enum16
	byName    map[string]int16
	byValue   map[int16]string
}

// Simple scalar descriptors. These carry no parameters and are shared by
// every column of the kind.
var (
	TypeInt8     = &Type{code: Int8}
	TypeInt16    = &Type{code: Int16}
	TypeInt32    = &Type{code: Int32}
	TypeInt64    = &Type{code: Int64}
	TypeUInt8    = &Type{code: UInt8}
	TypeUInt16   = &Type{code: UInt16}
	TypeUInt32   = &Type{code: UInt32}
	TypeUInt64   = &Type{code: UInt64}
	TypeFloat32  = &Type{code: Float32}
	TypeFloat64  = &Type{code: Float64}
	TypeString   = &Type{code: String}
	TypeDate     = &Type{code: Date}
	TypeDateTime = &Type{code: DateTime}
)

var simpleTypes = map[string]*Type{
	"Int8":     TypeInt8,
	"Int16":    TypeInt16,
	"Int32":    TypeInt32,
	"Int64":    TypeInt64,
	"UInt8":    TypeUInt8,
	"UInt16":   TypeUInt16,
	"UInt32":   TypeUInt32,
	"UInt64":   TypeUInt64,
	"Float32":  TypeFloat32,
	"Float64":  TypeFloat64,
	"String":   TypeString,
	"Date":     TypeDate,
	"DateTime": TypeDateTime,
}

// NewFixedStringType describes FixedString(n). The width must be at least 1.
func NewFixedStringType(n int) (*Type, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: fixed string width %d", ErrInvalidArgument, n)
	}
	return &Type{code: FixedString, fixedSize: n}, nil
}

// NewArrayType describes Array(item).
func NewArrayType(item *Type) (*Type, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: nil array item type", ErrInvalidArgument)
	}
	return &Type{code: Array, item: item}, nil
}

// NewNullableType describes Nullable(item).
func NewNullableType(item *Type) (*Type, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: nil nullable item type", ErrInvalidArgument)
	}
	return &Type{code: Nullable, item: item}, nil
}

// NewEnum8Type describes Enum8 over the given items. Names and values must
// be unique and every value must fit in int8.
func NewEnum8Type(items []EnumItem) (*Type, error) {
	return newEnumType(Enum8, items)
}

// NewEnum16Type describes Enum16 over the given items.
func NewEnum16Type(items []EnumItem) (*Type, error) {
	return newEnumType(Enum16, items)
}

func newEnumType(code TypeCode, items []EnumItem) (*Type, error) {
	t := &Type{
		code:    code,
		items:   make([]EnumItem, 0, len(items)),
		byName:  make(map[string]int16, len(items)),
		byValue: make(map[int16]string, len(items)),
	}
	for _, it := range items {
		if code == Enum8 && (it.Value < -128 || it.Value > 127) {
			return nil, fmt.Errorf("%w: enum8 value %d does not fit int8", ErrInvalidArgument, it.Value)
		}
		if _, ok := t.byName[it.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate enum name %q", ErrInvalidArgument, it.Name)
		}
		if _, ok := t.byValue[it.Value]; ok {
			return nil, fmt.Errorf("%w: duplicate enum value %d", ErrInvalidArgument, it.Value)
		}
		t.items = append(t.items, it)
		t.byName[it.Name] = it.Value
		t.byValue[it.Value] = it.Name
	}
	return t, nil
}

// Code returns the kind code.
func (t *Type) Code() TypeCode { return t.code }

// FixedSize returns the byte width of a FixedString type, 0 otherwise.
func (t *Type) FixedSize() int { return t.fixedSize }

// Item returns the element type of Array and Nullable, nil otherwise.
func (t *Type) Item() *Type { return t.item }

// EnumItems returns the enum pairs in insertion order.
func (t *Type) EnumItems() []EnumItem { return t.items }

// EnumValue resolves an enum name to its code.
func (t *Type) EnumValue(name string) (int16, bool) {
	v, ok := t.byName[name]
	return v, ok
}

// EnumName resolves an enum code to its name.
func (t *Type) EnumName(value int16) (string, bool) {
	s, ok := t.byValue[value]
	return s, ok
}

// HasEnumValue reports whether the code belongs to the enum's value set.
func (t *Type) HasEnumValue(value int16) bool {
	_, ok := t.byValue[value]
	return ok
}

// Name renders the canonical textual form the server recognizes,
// e.g. Array(UInt64), FixedString(16), Enum8('One'=1,'Two'=2).
func (t *Type) Name() string {
	switch t.code {
	case FixedString:
		return "FixedString(" + strconv.Itoa(t.fixedSize) + ")"
	case Array:
		return "Array(" + t.item.Name() + ")"
	case Nullable:
		return "Nullable(" + t.item.Name() + ")"
	case Enum8, Enum16:
		var b strings.Builder
		b.WriteString(typeCodeNames[t.code])
		b.WriteByte('(')
		for i, it := range t.items {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('\'')
			b.WriteString(escapeEnumName(it.Name))
			b.WriteString("'=")
			b.WriteString(strconv.Itoa(int(it.Value)))
		}
		b.WriteByte(')')
		return b.String()
	default:
		return typeCodeNames[t.code]
	}
}

// Equal reports structural equality: same kind and same kind-specific
// parameters, recursively.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || t.code != other.code {
		return false
	}
	switch t.code {
	case FixedString:
		return t.fixedSize == other.fixedSize
	case Array, Nullable:
		return t.item.Equal(other.item)
	case Enum8, Enum16:
		if len(t.items) != len(other.items) {
			return false
		}
		for i := range t.items {
			if t.items[i] != other.items[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func escapeEnumName(s string) string {
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
