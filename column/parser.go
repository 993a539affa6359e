package column

import (
	"fmt"
	"strconv"
)

// ParseTypeName parses the canonical textual form of a type sent by the
// server, e.g. "Array(Nullable(FixedString(16)))". Errors are malformed
// wire data: the string came off the connection.
func ParseTypeName(s string) (*Type, error) {
	p := &typeParser{in: s}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.in) {
		return nil, p.errorf("trailing data at %d", p.pos)
	}
	return t, nil
}

type typeParser struct {
	in  string
	pos int
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: type name %q: %s", ErrMalformedWire, p.in, fmt.Sprintf(format, args...))
}

func (p *typeParser) parseType() (*Type, error) {
	ident := p.ident()
	switch ident {
	case "FixedString":
		n, err := p.parenInt()
		if err != nil {
			return nil, err
		}
		t, err := NewFixedStringType(n)
		if err != nil {
			return nil, p.errorf("fixed string width %d", n)
		}
		return t, nil

	case "Array", "Nullable":
		if err := p.expect('('); err != nil {
			return nil, err
		}
		item, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		if ident == "Array" {
			return NewArrayType(item)
		}
		return NewNullableType(item)

	case "Enum8", "Enum16":
		items, err := p.parseEnumItems()
		if err != nil {
			return nil, err
		}
		t, err := newEnumType(map[string]TypeCode{"Enum8": Enum8, "Enum16": Enum16}[ident], items)
		if err != nil {
			return nil, fmt.Errorf("%w: type name %q: %v", ErrMalformedWire, p.in, err)
		}
		return t, nil

	default:
		if t, ok := simpleTypes[ident]; ok {
			return t, nil
		}
		return nil, p.errorf("unknown type %q", ident)
	}
}

func (p *typeParser) parseEnumItems() ([]EnumItem, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var items []EnumItem
	for {
		name, err := p.quotedName()
		if err != nil {
			return nil, err
		}
		if err := p.expect('='); err != nil {
			return nil, err
		}
		v, err := p.int()
		if err != nil {
			return nil, err
		}
		if v < -32768 || v > 32767 {
			return nil, p.errorf("enum value %d does not fit int16", v)
		}
		items = append(items, EnumItem{Name: name, Value: int16(v)})

		c, ok := p.next()
		if !ok {
			return nil, p.errorf("unterminated enum items")
		}
		if c == ')' {
			return items, nil
		}
		if c != ',' {
			return nil, p.errorf("unexpected %q in enum items", c)
		}
	}
}

// quotedName reads a single-quoted name with backslash escaping of the
// quote and the backslash itself.
func (p *typeParser) quotedName() (string, error) {
	if err := p.expect('\''); err != nil {
		return "", err
	}
	var out []byte
	for {
		c, ok := p.next()
		if !ok {
			return "", p.errorf("unterminated enum name")
		}
		switch c {
		case '\'':
			return string(out), nil
		case '\\':
			e, ok := p.next()
			if !ok {
				return "", p.errorf("dangling escape in enum name")
			}
			out = append(out, e)
		default:
			out = append(out, c)
		}
	}
}

func (p *typeParser) parenInt() (int, error) {
	if err := p.expect('('); err != nil {
		return 0, err
	}
	n, err := p.int()
	if err != nil {
		return 0, err
	}
	if err := p.expect(')'); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.in) {
		c := p.in[p.pos]
		if c == '(' || c == ')' || c == ',' {
			break
		}
		p.pos++
	}
	return p.in[start:p.pos]
}

func (p *typeParser) int() (int, error) {
	start := p.pos
	if p.pos < len(p.in) && (p.in[p.pos] == '-' || p.in[p.pos] == '+') {
		p.pos++
	}
	for p.pos < len(p.in) && p.in[p.pos] >= '0' && p.in[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.in[start:p.pos])
	if err != nil {
		return 0, p.errorf("bad integer at %d", start)
	}
	return n, nil
}

func (p *typeParser) expect(c byte) error {
	got, ok := p.next()
	if !ok {
		return p.errorf("unexpected end, want %q", c)
	}
	if got != c {
		return p.errorf("unexpected %q at %d, want %q", got, p.pos-1, c)
	}
	return nil
}

func (p *typeParser) next() (byte, bool) {
	if p.pos >= len(p.in) {
		return 0, false
	}
	c := p.in[p.pos]
	p.pos++
	return c, true
}
