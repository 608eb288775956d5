// Package host defines the capability through which configuration is
// published into the editor's variable namespace.
//
// The publisher never touches a process-wide namespace directly. It is
// handed a Writer, so the live Lua runtime and the in-memory Memory
// namespace used by tests are interchangeable.
package host

import (
	"sort"
	"strings"
)

// Writer is the host's set-variable primitive.
//
// Keys are dotted paths (e.g. "ui.font.size"); values are always strings.
type Writer interface {
	SetVar(key, value string) error
}

// Reader is the host's get-variable primitive.
//
// GetVar returns an error wrapping errors.ErrKeyNotFound for unset keys.
type Reader interface {
	GetVar(key string) (string, error)
}

// Namespace is a readable, writable variable store.
type Namespace interface {
	Writer
	Reader

	// Keys returns every key GetVar can read, sorted. Variables holding
	// values that are not strings are left out.
	Keys() []string
}

// Entry is a single published variable.
type Entry struct {
	Key   string
	Value string
}

// Snapshot returns every variable in ns, sorted by key.
// Keys that disappear between listing and reading are skipped.
func Snapshot(ns Namespace) []Entry {
	keys := ns.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		value, err := ns.GetVar(key)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries
}

// Nest turns dotted keys into a tree of nested maps.
//
// When a key is both a leaf and a prefix of another key (e.g. "a" and
// "a.b"), the leaf wins and the deeper key is dropped.
func Nest(entries []Entry) map[string]any {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})

	root := make(map[string]any)
	for _, e := range sorted {
		parts := strings.Split(e.Key, ".")
		node := root
		ok := true
		for _, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := make(map[string]any)
				node[part] = next
				node = next
				continue
			}
			next, isMap := child.(map[string]any)
			if !isMap {
				ok = false
				break
			}
			node = next
		}
		if !ok {
			continue
		}
		leaf := parts[len(parts)-1]
		if _, exists := node[leaf]; exists {
			continue
		}
		node[leaf] = e.Value
	}
	return root
}
