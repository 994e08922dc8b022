package bencode

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrSyntax is wrapped by every decode error caused by malformed input.
var ErrSyntax = errors.New("bencode: syntax error")

// Kind ...
type Kind byte

// The four bencoding value kinds.
const (
	Integer Kind = iota
	String
	List
	Dict
)

// Value is one decoded bencode value. Exactly one of the payload
// fields is meaningful, selected by Kind.
//
// Dict keys are raw byte strings stored as Go strings. Encode always
// emits them in ascending byte order, whatever order the source had;
// the info-hash depends on that.
type Value struct {
	Kind Kind
	Int  int64
	Str  []byte
	List []*Value
	Dict map[string]*Value
}

// NewInteger ...
func NewInteger(n int64) *Value {
	return &Value{Kind: Integer, Int: n}
}

// NewString ...
func NewString(s []byte) *Value {
	return &Value{Kind: String, Str: s}
}

// NewList ...
func NewList(items ...*Value) *Value {
	return &Value{Kind: List, List: items}
}

// NewDict ...
func NewDict(m map[string]*Value) *Value {
	if m == nil {
		m = map[string]*Value{}
	}
	return &Value{Kind: Dict, Dict: m}
}

// Get returns the dict entry for key, or nil if v is not a dict or
// the key is absent.
func (v *Value) Get(key string) *Value {
	if v == nil || v.Kind != Dict {
		return nil
	}
	return v.Dict[key]
}

// Interface projects the value onto plain Go types (int64, string,
// []interface{}, map[string]interface{}), for generic dumping.
func (v *Value) Interface() interface{} {
	switch v.Kind {
	case Integer:
		return v.Int
	case String:
		return string(v.Str)
	case List:
		l := make([]interface{}, 0, len(v.List))
		for _, item := range v.List {
			l = append(l, item.Interface())
		}
		return l
	case Dict:
		m := make(map[string]interface{}, len(v.Dict))
		for k, item := range v.Dict {
			m[k] = item.Interface()
		}
		return m
	}
	return nil
}

// Decode decodes one value from the front of b and returns it together
// with the unconsumed remainder, so callers can decode consecutive
// top-level values. Malformed input is fatal; there is no partial-input
// recovery since b is fully materialized.
func Decode(b []byte) (*Value, []byte, error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("%w: empty input", ErrSyntax)
	}

	switch c := b[0]; {
	case c == 'i':
		return decodeInteger(b)
	case c == 'l':
		return decodeList(b)
	case c == 'd':
		return decodeDict(b)
	case c >= '0' && c <= '9':
		return decodeString(b)
	default:
		return nil, nil, fmt.Errorf("%w: unexpected byte %q", ErrSyntax, c)
	}
}

func decodeInteger(b []byte) (*Value, []byte, error) {
	end := bytes.IndexByte(b, 'e')
	if end < 0 {
		return nil, nil, fmt.Errorf("%w: unterminated integer", ErrSyntax)
	}
	n, err := strconv.ParseInt(string(b[1:end]), 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad integer %q", ErrSyntax, b[1:end])
	}
	return NewInteger(n), b[end+1:], nil
}

func decodeString(b []byte) (*Value, []byte, error) {
	colon := bytes.IndexByte(b, ':')
	if colon < 0 {
		return nil, nil, fmt.Errorf("%w: string without colon", ErrSyntax)
	}
	n, err := strconv.Atoi(string(b[:colon]))
	if err != nil || n < 0 {
		return nil, nil, fmt.Errorf("%w: bad string length %q", ErrSyntax, b[:colon])
	}
	rest := b[colon+1:]
	if len(rest) < n {
		return nil, nil, fmt.Errorf("%w: string truncated: want %d bytes, have %d", ErrSyntax, n, len(rest))
	}
	s := make([]byte, n)
	copy(s, rest[:n])
	return NewString(s), rest[n:], nil
}

func decodeList(b []byte) (*Value, []byte, error) {
	rest := b[1:]
	items := []*Value{}
	for {
		if len(rest) == 0 {
			return nil, nil, fmt.Errorf("%w: unterminated list", ErrSyntax)
		}
		if rest[0] == 'e' {
			return NewList(items...), rest[1:], nil
		}
		item, remain, err := Decode(rest)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
		rest = remain
	}
}

func decodeDict(b []byte) (*Value, []byte, error) {
	rest := b[1:]
	m := map[string]*Value{}
	for {
		if len(rest) == 0 {
			return nil, nil, fmt.Errorf("%w: unterminated dict", ErrSyntax)
		}
		if rest[0] == 'e' {
			return NewDict(m), rest[1:], nil
		}
		key, remain, err := Decode(rest)
		if err != nil {
			return nil, nil, err
		}
		if key.Kind != String {
			return nil, nil, fmt.Errorf("%w: dict key is not a string", ErrSyntax)
		}
		value, remain, err := Decode(remain)
		if err != nil {
			return nil, nil, err
		}
		m[string(key.Str)] = value
		rest = remain
	}
}

// Encode is the inverse of Decode. Dict keys are emitted in ascending
// byte order unconditionally so that re-encoding is canonical.
func Encode(v *Value) []byte {
	buf := bytes.Buffer{}
	encode(&buf, v)
	return buf.Bytes()
}

func encode(buf *bytes.Buffer, v *Value) {
	switch v.Kind {
	case Integer:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatInt(v.Int, 10))
		buf.WriteByte('e')
	case String:
		buf.WriteString(strconv.Itoa(len(v.Str)))
		buf.WriteByte(':')
		buf.Write(v.Str)
	case List:
		buf.WriteByte('l')
		for _, item := range v.List {
			encode(buf, item)
		}
		buf.WriteByte('e')
	case Dict:
		keys := make([]string, 0, len(v.Dict))
		for k := range v.Dict {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('d')
		for _, k := range keys {
			buf.WriteString(strconv.Itoa(len(k)))
			buf.WriteByte(':')
			buf.WriteString(k)
			encode(buf, v.Dict[k])
		}
		buf.WriteByte('e')
	}
}
