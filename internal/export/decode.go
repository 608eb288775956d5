package export

import (
	"fmt"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	nverrors "github.com/neviraide/neviraide-core/internal/errors"
	"github.com/neviraide/neviraide-core/internal/host"
	plua "github.com/neviraide/neviraide-core/internal/plugin/lua"
)

// Decode reads a dump produced by Encode back into sorted entries.
//
// Nested tables become dotted keys. Scalars that are not strings are
// formatted the way the publisher would have written them. Lists have no
// namespace form and are rejected.
func Decode(data []byte, f Format) ([]host.Entry, error) {
	var (
		tree map[string]any
		err  error
	)
	switch f {
	case FormatTOML:
		err = toml.Unmarshal(data, &tree)
	case FormatYAML:
		err = yaml.Unmarshal(data, &tree)
	case FormatJSON:
		tree, err = decodeJSON(data)
	case FormatLua:
		return decodeLua(data)
	default:
		return nil, nverrors.Message("unknown export format %q", string(f))
	}
	if err != nil {
		return nil, nverrors.Host(nverrors.HostDeserialize,
			fmt.Errorf("decoding %s: %w", f, err))
	}

	var entries []host.Entry
	if err := flattenTree("", tree, &entries); err != nil {
		return nil, err
	}
	return sortedEntries(entries), nil
}

func decodeJSON(data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	m, ok := gjson.ParseBytes(data).Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top level is not an object")
	}
	return m, nil
}

// decodeLua runs the script in an empty host and reads back everything
// it stored in vim.g. Numbers and booleans are formatted the way the
// publisher writes them and tables are flattened like nested documents.
// Values with no Go form, such as functions, are rejected.
func decodeLua(data []byte) ([]host.Entry, error) {
	state, err := plua.NewState()
	if err != nil {
		return nil, err
	}
	defer func() { _ = state.Close() }()

	if err := state.DoString(string(data)); err != nil {
		return nil, err
	}
	values, err := state.Namespace().Values()
	if err != nil {
		return nil, err
	}
	for key, v := range values {
		if v == nil {
			return nil, nverrors.Host(nverrors.HostConversion,
				fmt.Errorf("value has no string form")).WithKey("decode", key)
		}
	}

	var entries []host.Entry
	if err := flattenTree("", values, &entries); err != nil {
		return nil, err
	}
	return sortedEntries(entries), nil
}

func flattenTree(prefix string, tree map[string]any, out *[]host.Entry) error {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			if err := flattenTree(key, sub, out); err != nil {
				return err
			}
			continue
		}
		s, err := scalarString(v)
		if err != nil {
			return nverrors.Host(nverrors.HostConversion, err).WithKey("decode", key)
		}
		*out = append(*out, host.Entry{Key: key, Value: s})
	}
	return nil
}

func scalarString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
