package pjson

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/marmos91/pasdb/pkg/bufpool"
	"github.com/marmos91/pasdb/pkg/pas"
	"github.com/marmos91/pasdb/pkg/pcontainer"
)

// ErrSyntax is returned by Parse for any malformed input. The wrapped
// error carries the byte offset and a short description.
var ErrSyntax = errors.New("pjson: syntax error")

// Parse reads a single JSON document from input, allocating every
// string, array, and object node inside s and interning strings through
// dict. It returns the root Value.
func Parse(s *pas.Space, dict pcontainer.Dictionary, input string) (Value, error) {
	p := &parser{s: s, dict: dict, src: input}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Value{}, p.errorf("unexpected trailing data")
	}
	return v, nil
}

type parser struct {
	s    *pas.Space
	dict pcontainer.Dictionary
	src  string
	pos  int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: at byte %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) parseValue() (Value, error) {
	c, ok := p.peek()
	if !ok {
		return Value{}, p.errorf("unexpected end of input")
	}
	switch {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		str, err := p.parseStringLiteral()
		if err != nil {
			return Value{}, err
		}
		return String(p.s, p.dict, str), nil
	case c == 't' || c == 'f':
		return p.parseBool()
	case c == 'n':
		return p.parseNull()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return Value{}, p.errorf("unexpected character %q", c)
	}
}

func (p *parser) expect(lit string) error {
	if p.pos+len(lit) > len(p.src) || p.src[p.pos:p.pos+len(lit)] != lit {
		return p.errorf("expected %q", lit)
	}
	p.pos += len(lit)
	return nil
}

func (p *parser) parseBool() (Value, error) {
	if p.src[p.pos] == 't' {
		if err := p.expect("true"); err != nil {
			return Value{}, err
		}
		return Bool(true), nil
	}
	if err := p.expect("false"); err != nil {
		return Value{}, err
	}
	return Bool(false), nil
}

func (p *parser) parseNull() (Value, error) {
	if err := p.expect("null"); err != nil {
		return Value{}, err
	}
	return Null(), nil
}

func (p *parser) parseNumber() (Value, error) {
	start := p.pos
	isFloat := false
	if p.peekByte() == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.peekByte() == '.' {
		isFloat = true
		p.pos++
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	if c := p.peekByte(); c == 'e' || c == 'E' {
		isFloat = true
		p.pos++
		if c := p.peekByte(); c == '+' || c == '-' {
			p.pos++
		}
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	lit := p.src[start:p.pos]
	if lit == "" || lit == "-" {
		return Value{}, p.errorf("invalid number literal")
	}

	if !isFloat {
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int64(n), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, p.errorf("invalid number literal %q: %v", lit, err)
	}
	return Float64(f), nil
}

func (p *parser) peekByte() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// parseStringLiteral decodes a quoted string literal into a freshly
// Go-allocated string. The decode buffer is borrowed from bufpool rather
// than grown from scratch per call: an escaped string can only shrink
// relative to its source span, so the source's remaining length is always
// a safe upper bound for the pooled scratch buffer.
func (p *parser) parseStringLiteral() (string, error) {
	if p.peekByte() != '"' {
		return "", p.errorf("expected string")
	}
	p.pos++

	scratch := bufpool.Get(len(p.src) - p.pos)
	defer bufpool.Put(scratch)
	buf := scratch[:0]

	for {
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		if c == '"' {
			p.pos++
			return string(buf), nil
		}
		if c != '\\' {
			buf = append(buf, c)
			p.pos++
			continue
		}

		p.pos++
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated escape sequence")
		}
		esc := p.src[p.pos]
		switch esc {
		case '"', '\\', '/':
			buf = append(buf, esc)
			p.pos++
		case 'n':
			buf = append(buf, '\n')
			p.pos++
		case 't':
			buf = append(buf, '\t')
			p.pos++
		case 'r':
			buf = append(buf, '\r')
			p.pos++
		case 'b':
			buf = append(buf, '\b')
			p.pos++
		case 'f':
			buf = append(buf, '\f')
			p.pos++
		case 'u':
			r, err := p.parseUnicodeEscape()
			if err != nil {
				return "", err
			}
			var rb [utf8.UTFMax]byte
			n := utf8.EncodeRune(rb[:], r)
			buf = append(buf, rb[:n]...)
		default:
			return "", p.errorf("invalid escape \\%c", esc)
		}
	}
}

func (p *parser) parseUnicodeEscape() (rune, error) {
	readHex4 := func() (uint16, error) {
		if p.pos+5 > len(p.src) {
			return 0, p.errorf("truncated \\u escape")
		}
		v, err := strconv.ParseUint(p.src[p.pos+1:p.pos+5], 16, 32)
		if err != nil {
			return 0, p.errorf("invalid \\u escape")
		}
		p.pos += 5
		return uint16(v), nil
	}

	hi, err := readHex4()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(rune(hi)) {
		if p.pos+1 < len(p.src) && p.src[p.pos] == '\\' && p.src[p.pos+1] == 'u' {
			save := p.pos
			p.pos++
			lo, err := readHex4()
			if err != nil {
				p.pos = save
				return rune(hi), nil
			}
			if r := utf16.DecodeRune(rune(hi), rune(lo)); r != 0xFFFD {
				return r, nil
			}
			p.pos = save
		}
		return rune(hi), nil
	}
	return rune(hi), nil
}

func (p *parser) parseArray() (Value, error) {
	p.pos++ // consume '['
	arr := NewArray(p.s)

	p.skipSpace()
	if p.peekByte() == ']' {
		p.pos++
		return arr, nil
	}

	for {
		p.skipSpace()
		elem, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		arr.Push(p.s, elem)

		p.skipSpace()
		c := p.peekByte()
		if c == ',' {
			p.pos++
			continue
		}
		if c == ']' {
			p.pos++
			return arr, nil
		}
		return Value{}, p.errorf("expected ',' or ']' in array")
	}
}

func (p *parser) parseObject() (Value, error) {
	p.pos++ // consume '{'
	obj := NewObject(p.s)

	p.skipSpace()
	if p.peekByte() == '}' {
		p.pos++
		return obj, nil
	}

	for {
		p.skipSpace()
		if p.peekByte() != '"' {
			return Value{}, p.errorf("expected object key")
		}
		key, err := p.parseStringLiteral()
		if err != nil {
			return Value{}, err
		}

		p.skipSpace()
		if p.peekByte() != ':' {
			return Value{}, p.errorf("expected ':' after object key")
		}
		p.pos++

		p.skipSpace()
		val, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		obj.Set(p.s, p.dict, key, val)

		p.skipSpace()
		c := p.peekByte()
		if c == ',' {
			p.pos++
			continue
		}
		if c == '}' {
			p.pos++
			return obj, nil
		}
		return Value{}, p.errorf("expected ',' or '}' in object")
	}
}
