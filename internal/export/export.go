// Package export encodes snapshots of the host namespace into files and
// reads them back.
//
// TOML and YAML nest the dotted keys into tables. JSON is built key by key
// with sjson, so a dump can be queried with the same dotted keys through
// Lookup. The Lua format is a script of vim.g assignments that, run in a
// fresh host, reproduces the namespace.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/neviraide/neviraide-core/internal/config"
	nverrors "github.com/neviraide/neviraide-core/internal/errors"
	"github.com/neviraide/neviraide-core/internal/host"
)

// Format is an export encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatLua  Format = "lua"
)

// Formats lists every supported format.
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON, FormatLua}

// ParseFormat returns the format named by s. Case is ignored and "yml" is
// accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "lua":
		return FormatLua, nil
	}
	return "", nverrors.Message("unknown export format %q", s)
}

// Encode renders entries in format f.
//
// TOML, YAML and JSON only carry UTF-8 text, so a key or value that is not
// valid UTF-8 fails with a serialization error naming the key. The Lua
// format keeps such bytes as escapes.
func Encode(entries []host.Entry, f Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if f != FormatLua {
		if err := checkUTF8(entries); err != nil {
			return nil, err
		}
	}
	switch f {
	case FormatTOML:
		data, err = toml.Marshal(host.Nest(entries))
	case FormatYAML:
		data, err = encodeYAML(host.Nest(entries))
	case FormatJSON:
		data, err = encodeJSON(entries)
	case FormatLua:
		data = encodeLua(entries)
	default:
		return nil, nverrors.Message("unknown export format %q", string(f))
	}
	if err != nil {
		return nil, nverrors.Host(nverrors.HostSerialize,
			fmt.Errorf("encoding %s: %w", f, err))
	}
	return data, nil
}

func checkUTF8(entries []host.Entry) error {
	for _, e := range entries {
		if !utf8.ValidString(e.Key) {
			return nverrors.Host(nverrors.HostSerialize,
				fmt.Errorf("key %q is not valid UTF-8", e.Key)).WithKey("encode", e.Key)
		}
		if !utf8.ValidString(e.Value) {
			return nverrors.Host(nverrors.HostSerialize,
				fmt.Errorf("value %q is not valid UTF-8", e.Value)).WithKey("encode", e.Key)
		}
	}
	return nil
}

func encodeYAML(tree map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeLua writes one vim.g assignment per entry.
func encodeLua(entries []host.Entry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "vim.g[%s] = %s\n", config.LuaQuote(e.Key), config.LuaQuote(e.Value))
	}
	return buf.Bytes()
}
