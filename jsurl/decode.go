package jsurl

import (
	"fmt"
	"strconv"
	"unicode/utf16"
)

// SyntaxError reports a malformed encoding with its byte offset.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jsurl: %s at offset %d", e.Message, e.Offset)
}

// Parse decodes an encoded value. Truncated containers decode to the
// partially built structure; anything else malformed returns a *SyntaxError.
func Parse(input string) (*Value, error) {
	v, _, err := ParsePrefix(input)
	return v, err
}

// ParsePrefix decodes a value from the start of input and reports how many
// bytes were consumed. Injectors use the consumed length to splice a
// re-encoded value over exactly the original span, leaving trailing address
// text untouched.
func ParsePrefix(input string) (*Value, int, error) {
	if input == "" {
		return nil, 0, &SyntaxError{Offset: 0, Message: "empty input"}
	}
	d := &decoder{s: input}
	v, err := d.value()
	if err != nil {
		return nil, d.pos, err
	}
	return v, d.pos, nil
}

// TryParse decodes best-effort, returning def on any failure. Used when
// probing whether address text decodes at all before committing to a scheme.
func TryParse(input string, def *Value) *Value {
	v, err := Parse(input)
	if err != nil || v == nil {
		return def
	}
	return v
}

type decoder struct {
	s   string
	pos int
}

func (d *decoder) eof() bool {
	return d.pos >= len(d.s)
}

func (d *decoder) peek() byte {
	return d.s[d.pos]
}

// value decodes one '~'-prefixed value.
func (d *decoder) value() (*Value, error) {
	if d.eof() || d.peek() != '~' {
		return nil, &SyntaxError{Offset: d.pos, Message: "expected '~'"}
	}
	d.pos++
	if d.eof() {
		// truncated right after the prefix
		return Null(), nil
	}

	switch d.peek() {
	case '\'':
		d.pos++
		s, err := d.stringBody()
		if err != nil {
			return nil, err
		}
		return String(s), nil

	case '(':
		d.pos++
		return d.container()

	default:
		return d.literal()
	}
}

// literal decodes null, booleans and numbers, which run until the next
// structural character.
func (d *decoder) literal() (*Value, error) {
	start := d.pos
	for !d.eof() && d.peek() != '~' && d.peek() != ')' {
		d.pos++
	}
	tok := d.s[start:d.pos]
	switch tok {
	case "null":
		return Null(), nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	n, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, &SyntaxError{Offset: start, Message: fmt.Sprintf("bad literal %q", tok)}
	}
	return Number(n), nil
}

// container decodes the body after '~('. The first character decides the
// shape: '~' starts an array element, ')' closes an empty object, anything
// else is an object key. Running out of input before ')' returns whatever
// was built.
func (d *decoder) container() (*Value, error) {
	if d.eof() {
		return Object(), nil
	}
	if d.peek() == ')' {
		d.pos++
		return Object(), nil
	}
	if d.peek() == '~' {
		return d.array()
	}
	return d.object()
}

func (d *decoder) array() (*Value, error) {
	arr := Array()
	for {
		if d.eof() {
			return arr, nil
		}
		if d.peek() == ')' {
			d.pos++
			return arr, nil
		}
		if d.peek() != '~' {
			return nil, &SyntaxError{Offset: d.pos, Message: "expected '~' in array"}
		}
		// '~)' is the empty-array marker
		if d.pos+1 < len(d.s) && d.s[d.pos+1] == ')' {
			d.pos += 2
			return arr, nil
		}
		if d.pos+1 >= len(d.s) {
			return arr, nil
		}
		elem, err := d.value()
		if err != nil {
			return nil, err
		}
		arr.Append(elem)
	}
}

func (d *decoder) object() (*Value, error) {
	obj := Object()
	first := true
	for {
		if d.eof() {
			return obj, nil
		}
		if d.peek() == ')' {
			d.pos++
			return obj, nil
		}
		// members after the first are separated by '~'
		if !first {
			if d.peek() != '~' {
				return nil, &SyntaxError{Offset: d.pos, Message: "expected '~' between members"}
			}
			d.pos++
			if d.eof() {
				return obj, nil
			}
			if d.peek() == ')' {
				d.pos++
				return obj, nil
			}
		}
		first = false
		key, err := d.stringBody()
		if err != nil {
			return nil, err
		}
		if d.eof() {
			// key with no value: truncated mid-member
			obj.Set(key, Null())
			return obj, nil
		}
		if d.peek() == ')' {
			d.pos++
			obj.Set(key, Null())
			return obj, nil
		}
		val, err := d.value()
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
}

// stringBody decodes an escaped string or key up to (not including) the next
// structural '~' or ')'. Truncation returns the bytes read so far. The
// decoder accepts *HH for any byte, so input escaped more aggressively than
// our own emitter still decodes.
func (d *decoder) stringBody() (string, error) {
	var out []rune
	for !d.eof() {
		c := d.peek()
		switch c {
		case '~', ')':
			return string(out), nil

		case '!':
			d.pos++
			if !d.eof() && d.peek() == '!' {
				d.pos++
				out = append(out, '!')
			} else {
				out = append(out, '\'')
			}

		case '*':
			d.pos++
			r, err := d.hexEscape()
			if err != nil {
				return "", err
			}
			out = append(out, r)

		default:
			out = append(out, rune(c))
			d.pos++
		}
	}
	return string(out), nil
}

// hexEscape decodes the remainder of a '*' escape: *HH for a single byte,
// **HHHH for a BMP code point, and a **HHHH**HHHH surrogate pair for astral
// code points.
func (d *decoder) hexEscape() (rune, error) {
	wide := false
	if !d.eof() && d.peek() == '*' {
		wide = true
		d.pos++
	}
	width := 2
	if wide {
		width = 4
	}
	if d.pos+width > len(d.s) {
		return 0, &SyntaxError{Offset: d.pos, Message: "truncated hex escape"}
	}
	n, err := strconv.ParseUint(d.s[d.pos:d.pos+width], 16, 32)
	if err != nil {
		return 0, &SyntaxError{Offset: d.pos, Message: "bad hex escape"}
	}
	d.pos += width
	r := rune(n)

	if wide && utf16.IsSurrogate(r) && d.pos+6 <= len(d.s) && d.s[d.pos] == '*' && d.s[d.pos+1] == '*' {
		lo, err := strconv.ParseUint(d.s[d.pos+2:d.pos+6], 16, 32)
		if err == nil {
			if dec := utf16.DecodeRune(r, rune(lo)); dec != 0xFFFD {
				d.pos += 6
				return dec, nil
			}
		}
	}
	return r, nil
}
