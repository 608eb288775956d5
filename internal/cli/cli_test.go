package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	nverrors "github.com/neviraide/neviraide-core/internal/errors"
	"github.com/neviraide/neviraide-core/internal/export"
	"github.com/neviraide/neviraide-core/internal/host"
)

// execute runs the command tree with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 24 {
		t.Fatalf("list printed %d lines, want 24:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "basic.language") || !strings.HasSuffix(lines[0], " = ru") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(out, `basic.programming`) || !strings.Contains(out, `= {"lua", "rust"}`) {
		t.Errorf("list output missing programming:\n%s", out)
	}
}

func TestList_Prefix(t *testing.T) {
	out, _, err := execute(t, "ls", "ui.font")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	want := "ui.font.family = JetBrainsMono Nerd Font\nui.font.size   = 11\n"
	if out != want {
		t.Errorf("list ui.font =\n%q\nwant\n%q", out, want)
	}
}

func TestList_UnknownPrefix(t *testing.T) {
	if _, _, err := execute(t, "list", "nope"); err == nil {
		t.Error("list with an unknown prefix should fail")
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"ui.theme", "Catppuccin-Mocha"},
		{"ui.indents", "4"},
		{"lsp.diagnostic.show_on_hover", "false"},
		{"basic.programming", `{"lua", "rust"}`},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			out, _, err := execute(t, "get", tt.key)
			if err != nil {
				t.Fatalf("get error = %v", err)
			}
			if out != tt.want+"\n" {
				t.Errorf("get %s = %q, want %q", tt.key, out, tt.want)
			}
		})
	}
}

func TestGet_Missing(t *testing.T) {
	_, _, err := execute(t, "get", "ui.missing")
	if !errors.Is(err, nverrors.ErrKeyNotFound) {
		t.Errorf("get missing error = %v, want ErrKeyNotFound", err)
	}
}

func TestDump_Formats(t *testing.T) {
	for _, f := range export.Formats {
		t.Run(string(f), func(t *testing.T) {
			out, _, err := execute(t, "dump", "--format", string(f))
			if err != nil {
				t.Fatalf("dump error = %v", err)
			}
			entries, err := export.Decode([]byte(out), f)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(entries) != 24 {
				t.Errorf("dump has %d entries, want 24", len(entries))
			}
		})
	}
}

func TestDump_UnknownFormat(t *testing.T) {
	if _, _, err := execute(t, "dump", "--format", "ini"); !errors.Is(err, nverrors.ErrMessage) {
		t.Errorf("dump error = %v, want message error", err)
	}
}

func TestDump_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.json")

	out, _, err := execute(t, "dump", "-f", "json", "-o", path)
	if err != nil {
		t.Fatalf("dump error = %v", err)
	}
	if out != "" {
		t.Errorf("dump to file wrote to stdout: %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, err := export.Lookup(data, "ui.font.size"); err != nil || got != "11" {
		t.Errorf("Lookup(ui.font.size) = %q, %v", got, err)
	}
}

func TestDiff_NoDifferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.toml")
	if _, _, err := execute(t, "dump", "-o", path); err != nil {
		t.Fatalf("dump error = %v", err)
	}

	out, _, err := execute(t, "diff", path)
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	if out != "no differences\n" {
		t.Errorf("diff output = %q", out)
	}
}

func TestDiff_ReportsChanges(t *testing.T) {
	script := strings.Join([]string{
		`vim.g["basic.language"] = "en"`,
		`vim.g["basic.removed"] = "x"`,
	}, "\n")
	path := filepath.Join(t.TempDir(), "saved.lua")
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "diff", path)
	if err == nil {
		t.Fatal("diff should fail when variables differ")
	}
	for _, want := range []string{
		"~ basic.language = en -> ru\n",
		"- basic.removed = x\n",
		"+ ui.theme = Catppuccin-Mocha\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diff output missing %q:\n%s", want, out)
		}
	}
}

func TestDiff_LuaNonStringValues(t *testing.T) {
	script := strings.Join([]string{
		`vim.g["ui.indents"] = 4`,
		`vim.g["ui.hyde"] = true`,
		`vim.g["extra"] = {count = 3}`,
	}, "\n")
	path := filepath.Join(t.TempDir(), "saved.lua")
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "diff", path)
	if err == nil {
		t.Fatal("diff should fail when variables differ")
	}
	for _, want := range []string{
		"~ ui.hyde = true -> false\n",
		"- extra.count = 3\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diff output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ui.indents") {
		t.Errorf("a numeric 4 should match the published \"4\":\n%s", out)
	}
}

func TestDiff_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "diff", path); err == nil {
		t.Error("diff without an extension or --format should fail")
	}
}

func TestDiffEntries(t *testing.T) {
	old := []host.Entry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}, {Key: "d", Value: "4"}}
	cur := []host.Entry{{Key: "b", Value: "3"}, {Key: "c", Value: "3"}, {Key: "d", Value: "4"}}

	got := diffEntries(old, cur)
	want := []change{
		{Key: "a", Old: "1", Kind: '-'},
		{Key: "b", Old: "2", New: "3", Kind: '~'},
		{Key: "c", New: "3", Kind: '+'},
	}
	if len(got) != len(want) {
		t.Fatalf("diffEntries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.lua")
	script := `
local core = require("neviraide_core")
assert(core.config.ui.font.size == 11)
print(vim.g["ui.theme"], core.get("lsp.inlay_hints"))
`
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "run", path)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if out != "Catppuccin-Mocha\ttrue\n" {
		t.Errorf("run output = %q", out)
	}
}

func TestRun_CallEntryFunction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entry.lua")
	script := `
function main()
	local core = require("neviraide_core")
	return core.get("ui.theme"), core.has("ui.hyde")
end
`
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "run", path, "--call", "main")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if out != "Catppuccin-Mocha\ttrue\n" {
		t.Errorf("run --call output = %q", out)
	}

	if _, _, err := execute(t, "run", path, "--call", "missing"); !errors.Is(err, nverrors.ErrAPI) {
		t.Errorf("run --call missing error = %v, want api error", err)
	}
}

func TestRun_ScriptError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.lua")
	if err := os.WriteFile(path, []byte(`error("bad config")`), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "run", path)
	if err == nil || !strings.Contains(err.Error(), "bad config") {
		t.Errorf("run error = %v, want the script's error", err)
	}
}

func TestShow(t *testing.T) {
	out, _, err := execute(t, "show")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.HasPrefix(out, "NeviraideConfig { basic: BasicConfig") {
		t.Errorf("show output = %q", out)
	}

	out, _, err = execute(t, "show", "git")
	if err != nil {
		t.Fatalf("show git error = %v", err)
	}
	want := "GitConfig { gitsigns: GitsignsConfig { enable_g_signs: true, enable_current_line_blame: false } }\n"
	if out != want {
		t.Errorf("show git = %q, want %q", out, want)
	}

	if _, _, err := execute(t, "show", "editor"); err == nil {
		t.Error("show with an unknown section should fail")
	}
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	if _, _, err := execute(t, "--log-level", "loud", "list"); err == nil {
		t.Error("an invalid log level should fail")
	}
}

func TestRoot_DebugLogsGoToStderr(t *testing.T) {
	out, logs, err := execute(t, "--log-level", "debug", "get", "ui.hyde")
	if err != nil {
		t.Fatalf("get error = %v", err)
	}
	if out != "false\n" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(logs, `"message":"set var"`) || !strings.Contains(logs, `"component":"cli"`) {
		t.Errorf("debug logs missing publish lines:\n%s", logs)
	}
}
