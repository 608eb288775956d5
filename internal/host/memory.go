package host

import (
	"fmt"
	"sort"

	nverrors "github.com/neviraide/neviraide-core/internal/errors"
)

// Memory is an in-memory Namespace that records every write.
//
// It stands in for the editor in tests. FailOn makes SetVar fail for a
// chosen key so abort behavior can be observed.
type Memory struct {
	vars   map[string]string
	writes []Entry
	fail   map[string]error
}

// NewMemory creates an empty in-memory namespace.
func NewMemory() *Memory {
	return &Memory{
		vars: make(map[string]string),
		fail: make(map[string]error),
	}
}

// SetVar implements Writer.
func (m *Memory) SetVar(key, value string) error {
	if err, ok := m.fail[key]; ok {
		return err
	}
	m.vars[key] = value
	m.writes = append(m.writes, Entry{Key: key, Value: value})
	return nil
}

// GetVar implements Reader.
func (m *Memory) GetVar(key string) (string, error) {
	value, ok := m.vars[key]
	if !ok {
		return "", nverrors.Host(nverrors.HostAPI,
			fmt.Errorf("%w: %s", nverrors.ErrKeyNotFound, key)).WithKey("get_var", key)
	}
	return value, nil
}

// Keys implements Namespace.
func (m *Memory) Keys() []string {
	keys := make([]string, 0, len(m.vars))
	for k := range m.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FailOn makes every subsequent SetVar for key return err.
// A nil err clears the fault.
func (m *Memory) FailOn(key string, err error) {
	if err == nil {
		delete(m.fail, key)
		return
	}
	m.fail[key] = err
}

// Writes returns the successful writes in the order they happened.
func (m *Memory) Writes() []Entry {
	out := make([]Entry, len(m.writes))
	copy(out, m.writes)
	return out
}

// Entries returns the current variables sorted by key.
func (m *Memory) Entries() []Entry {
	return Snapshot(m)
}

// Len returns the number of distinct keys set.
func (m *Memory) Len() int {
	return len(m.vars)
}
