package config

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValueKind identifies the Go type held by a Value.
type ValueKind uint8

const (
	// KindBool is a boolean leaf.
	KindBool ValueKind = iota
	// KindUint is an unsigned integer leaf.
	KindUint
	// KindString is a string leaf.
	KindString
	// KindList is an ordered list of strings.
	KindList
)

// String returns a human-readable name for the kind.
func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindUint:
		return "uint"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a typed leaf value.
type Value struct {
	kind ValueKind
	b    bool
	u    uint64
	s    string
	list []string
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Uint returns an unsigned integer Value.
func Uint(u uint) Value { return Value{kind: KindUint, u: uint64(u)} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List returns a string list Value. The slice is copied.
func List(items []string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Kind returns the kind of the value.
func (v Value) Kind() ValueKind { return v.kind }

// String returns the value encoded for the host namespace.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindString:
		return v.s
	case KindList:
		return luaList(v.list)
	default:
		return ""
	}
}

// Interface returns the value as a plain Go value:
// bool, uint64, string or []string.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindUint:
		return v.u
	case KindString:
		return v.s
	case KindList:
		cp := make([]string, len(v.list))
		copy(cp, v.list)
		return cp
	default:
		return nil
	}
}

// Equal reports whether two values have the same kind and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindUint:
		return v.u == o.u
	case KindString:
		return v.s == o.s
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	}
	return true
}

// luaList renders items as a Lua table constructor: {"a", "b"}.
func luaList(items []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(LuaQuote(item))
	}
	b.WriteByte('}')
	return b.String()
}

// LuaQuote returns s as a double-quoted Lua string literal.
//
// Lua strings are byte strings, so bytes that are not part of valid UTF-8
// are written as decimal escapes and come back unchanged.
func LuaQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\%03d`, s[i])
		case r == '\\':
			b.WriteString(`\\`)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == 0:
			b.WriteString(`\000`)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}
