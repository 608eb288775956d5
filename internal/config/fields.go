package config

import "strings"

// Field is a leaf value addressed by its dotted key.
type Field struct {
	Key   string
	Value Value
}

// Section is a named nested record.
type Section struct {
	Name   string
	Fields []Field
}

// record is implemented by every configuration record.
type record interface {
	String() string
	members() []member
}

// member is one declared field of a record. value is either a Value or a
// nested record.
type member struct {
	name  string
	value any
}

func leaf(name string, v Value) member { return member{name: name, value: v} }

func nested(name string, r record) member { return member{name: name, value: r} }

// joinKey appends name to a dotted prefix.
func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// flatten returns every leaf below r in declaration order.
func flatten(prefix string, r record) []Field {
	var out []Field
	for _, m := range r.members() {
		key := joinKey(prefix, m.name)
		switch v := m.value.(type) {
		case Value:
			out = append(out, Field{Key: key, Value: v})
		case record:
			out = append(out, flatten(key, v)...)
		}
	}
	return out
}

// toMap converts r into nested maps of plain Go values.
func toMap(r record) map[string]any {
	ms := r.members()
	out := make(map[string]any, len(ms))
	for _, m := range ms {
		switch v := m.value.(type) {
		case Value:
			out[m.name] = v.Interface()
		case record:
			out[m.name] = toMap(v)
		}
	}
	return out
}

// render formats r as "Name { field: value, nested: Other { ... } }".
func render(name string, r record) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" { ")
	for i, m := range r.members() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.name)
		b.WriteString(": ")
		switch v := m.value.(type) {
		case Value:
			if v.Kind() == KindString {
				b.WriteString(LuaQuote(v.String()))
			} else {
				b.WriteString(v.String())
			}
		case record:
			b.WriteString(v.String())
		}
	}
	b.WriteString(" }")
	return b.String()
}
