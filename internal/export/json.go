package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	nverrors "github.com/neviraide/neviraide-core/internal/errors"
	"github.com/neviraide/neviraide-core/internal/host"
)

// encodeJSON builds the document one dotted key at a time. A key whose
// parent path already holds a value is skipped, so a leaf shadows deeper
// keys the same way it does in host.Nest.
func encodeJSON(entries []host.Entry) ([]byte, error) {
	doc := []byte("{}")
	for _, e := range sortedEntries(entries) {
		if shadowed(doc, e.Key) {
			continue
		}
		next, err := sjson.SetBytes(doc, jsonPath(e.Key), e.Value)
		if err != nil {
			return nil, err
		}
		doc = next
	}
	return []byte(gjson.GetBytes(doc, "@pretty").Raw), nil
}

func sortedEntries(entries []host.Entry) []host.Entry {
	sorted := make([]host.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}

// shadowed reports whether key or one of its parents is already a
// non-object value in doc.
func shadowed(doc []byte, key string) bool {
	parts := strings.Split(key, ".")
	for i := 1; i <= len(parts); i++ {
		r := gjson.GetBytes(doc, jsonPath(strings.Join(parts[:i], ".")))
		if r.Exists() && !r.IsObject() {
			return true
		}
	}
	return false
}

// Lookup returns the value stored under a dotted key in a JSON dump.
func Lookup(doc []byte, key string) (string, error) {
	if !gjson.ValidBytes(doc) {
		return "", nverrors.Host(nverrors.HostDeserialize,
			errors.New("invalid JSON document"))
	}
	r := gjson.GetBytes(doc, jsonPath(key))
	if !r.Exists() {
		return "", nverrors.Host(nverrors.HostAPI, nverrors.ErrKeyNotFound).WithKey("lookup", key)
	}
	if r.IsObject() || r.IsArray() {
		return "", nverrors.Host(nverrors.HostConversion,
			fmt.Errorf("%s is not a leaf", key)).WithKey("lookup", key)
	}
	return r.String(), nil
}

// jsonPath escapes the gjson/sjson path syntax inside each segment of a
// dotted key. Dots stay as separators.
func jsonPath(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch r {
		case '\\', '*', '?', '|', '#', '@', '!', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
