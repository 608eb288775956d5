package export

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/neviraide/neviraide-core/internal/config"
	nverrors "github.com/neviraide/neviraide-core/internal/errors"
	"github.com/neviraide/neviraide-core/internal/host"
)

func defaultEntries(t *testing.T) []host.Entry {
	t.Helper()
	mem := host.NewMemory()
	if err := config.New().Apply(mem); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	return host.Snapshot(mem)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"toml", FormatTOML, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"lua", FormatLua, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if err != nil && !errors.Is(err, nverrors.ErrMessage) {
				t.Errorf("unknown format should be a message error, got %v", err)
			}
		})
	}
}

func TestEncode_TOML(t *testing.T) {
	data, err := Encode(defaultEntries(t), FormatTOML)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		"[basic]",
		"language = ",
		"[ui.font]",
		"family = ",
		"[git.gitsigns]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("TOML output missing %q:\n%s", want, out)
		}
	}
}

func TestEncode_YAML(t *testing.T) {
	data, err := Encode(defaultEntries(t), FormatYAML)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		"basic:\n",
		"  language: ru\n",
		"  font:\n",
		"    family: JetBrainsMono Nerd Font\n",
		`    size: "11"`,
		`  hyde: "false"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
}

func TestEncode_JSONLookup(t *testing.T) {
	entries := defaultEntries(t)
	data, err := Encode(entries, FormatJSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	for _, e := range entries {
		got, err := Lookup(data, e.Key)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", e.Key, err)
			continue
		}
		if got != e.Value {
			t.Errorf("Lookup(%q) = %q, want %q", e.Key, got, e.Value)
		}
	}
}

func TestEncode_JSONLeafShadowsDeeperKey(t *testing.T) {
	entries := []host.Entry{
		{Key: "a.b", Value: "deep"},
		{Key: "a", Value: "leaf"},
		{Key: "c", Value: "x"},
	}

	data, err := Encode(entries, FormatJSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got, _ := Lookup(data, "a"); got != "leaf" {
		t.Errorf("a = %q, want leaf", got)
	}
	if _, err := Lookup(data, "a.b"); err == nil {
		t.Error("a.b should be shadowed by the leaf a")
	}
}

func TestLookup_Errors(t *testing.T) {
	doc := []byte(`{"ui":{"font":{"size":"11"}}}`)

	if _, err := Lookup(doc, "ui.missing"); !errors.Is(err, nverrors.ErrKeyNotFound) {
		t.Errorf("missing key error = %v, want ErrKeyNotFound", err)
	}
	if _, err := Lookup(doc, "ui.font"); !errors.Is(err, nverrors.ErrConversion) {
		t.Errorf("table lookup error = %v, want conversion error", err)
	}
	if _, err := Lookup([]byte(`{"ui":`), "ui"); !errors.Is(err, nverrors.ErrDeserialize) {
		t.Errorf("invalid document error = %v, want deserialization error", err)
	}
}

func TestEncode_Lua(t *testing.T) {
	entries := []host.Entry{
		{Key: "basic.programming", Value: `{"lua", "rust"}`},
		{Key: "ui.theme", Value: "Catppuccin-Mocha"},
	}

	data, err := Encode(entries, FormatLua)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `vim.g["basic.programming"] = "{\"lua\", \"rust\"}"` + "\n" +
		`vim.g["ui.theme"] = "Catppuccin-Mocha"` + "\n"
	if string(data) != want {
		t.Errorf("Encode(lua) =\n%s\nwant\n%s", data, want)
	}
}

func TestEncode_InvalidUTF8(t *testing.T) {
	entries := []host.Entry{{Key: "a.bad", Value: "\xff\xfe"}}

	data, err := Encode(entries, FormatLua)
	if err != nil {
		t.Fatalf("Encode(lua) error = %v", err)
	}
	got, err := Decode(data, FormatLua)
	if err != nil {
		t.Fatalf("Decode(lua) error = %v", err)
	}
	if !reflect.DeepEqual(got, entries) {
		t.Errorf("lua round trip = %q, want %q", got, entries)
	}

	for _, f := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			_, err := Encode(entries, f)
			if !errors.Is(err, nverrors.ErrSerialize) {
				t.Fatalf("Encode() error = %v, want serialization error", err)
			}
			var e *nverrors.Error
			if !errors.As(err, &e) || e.Key != "a.bad" {
				t.Errorf("Encode() error should carry the key, got %v", err)
			}
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	if _, err := Encode(nil, Format("ini")); !errors.Is(err, nverrors.ErrMessage) {
		t.Errorf("Encode() error = %v, want message error", err)
	}
}

func TestDecode_ReadsEveryFormat(t *testing.T) {
	entries := defaultEntries(t)

	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(entries, f)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(data, f)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(got, entries) {
				t.Errorf("Decode(Encode()) mismatch:\ngot  %v\nwant %v", got, entries)
			}
		})
	}
}

func TestDecode_NonStringScalars(t *testing.T) {
	data := []byte("[ui]\nindents = 4\nhyde = false\n[ui.font]\nsize = 11\n")

	got, err := Decode(data, FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []host.Entry{
		{Key: "ui.font.size", Value: "11"},
		{Key: "ui.hyde", Value: "false"},
		{Key: "ui.indents", Value: "4"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode() = %v, want %v", got, want)
	}
}

func TestDecode_LuaNonStringValues(t *testing.T) {
	data := []byte(`
vim.g["ui.theme"] = "Catppuccin-Mocha"
vim.g["ui.indents"] = 4
vim.g["ui.hyde"] = false
vim.g["ratio"] = 0.5
vim.g["lsp"] = {inlay_hints = true, diagnostic = {virtual_text = "on"}}
vim.g[1] = "ignored"
`)

	got, err := Decode(data, FormatLua)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []host.Entry{
		{Key: "lsp.diagnostic.virtual_text", Value: "on"},
		{Key: "lsp.inlay_hints", Value: "true"},
		{Key: "ratio", Value: "0.5"},
		{Key: "ui.hyde", Value: "false"},
		{Key: "ui.indents", Value: "4"},
		{Key: "ui.theme", Value: "Catppuccin-Mocha"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode() = %v, want %v", got, want)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		want   error
	}{
		{"bad toml", "[ui\n", FormatTOML, nverrors.ErrDeserialize},
		{"bad yaml", "ui: [\n", FormatYAML, nverrors.ErrDeserialize},
		{"bad json", `{"ui":`, FormatJSON, nverrors.ErrDeserialize},
		{"json array", `["a"]`, FormatJSON, nverrors.ErrDeserialize},
		{"bad lua", `vim.g[ = 1`, FormatLua, nverrors.ErrDeserialize},
		{"list value", "basic:\n  programming: [lua, rust]\n", FormatYAML, nverrors.ErrConversion},
		{"lua list value", `vim.g["basic.programming"] = {"lua", "rust"}`, FormatLua, nverrors.ErrConversion},
		{"lua function value", `vim.g["hook"] = function() end`, FormatLua, nverrors.ErrConversion},
		{"unknown format", "", Format("ini"), nverrors.ErrMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}
