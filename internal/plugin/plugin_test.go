package plugin

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/neviraide/neviraide-core/internal/config"
	nverrors "github.com/neviraide/neviraide-core/internal/errors"
	"github.com/neviraide/neviraide-core/internal/host"
)

func TestInit_PublishesDefaults(t *testing.T) {
	mem := host.NewMemory()

	if err := Init(mem); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	want := config.New().Fields()
	if mem.Len() != len(want) {
		t.Fatalf("published %d vars, want %d", mem.Len(), len(want))
	}
	for _, f := range want {
		got, err := mem.GetVar(f.Key)
		if err != nil {
			t.Errorf("GetVar(%q) error = %v", f.Key, err)
			continue
		}
		if got != f.Value.String() {
			t.Errorf("%s = %q, want %q", f.Key, got, f.Value.String())
		}
	}
}

func TestInit_SpotValues(t *testing.T) {
	mem := host.NewMemory()
	if err := Init(mem); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"basic.language", "ru"},
		{"basic.programming", `{"lua", "rust"}`},
		{"lsp.format_before_save", "false"},
		{"lsp.diagnostic.virtual_text", "false"},
		{"ui.font.size", "11"},
		{"ui.font.family", "JetBrainsMono Nerd Font"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := mem.GetVar(tt.key)
			if err != nil {
				t.Fatalf("GetVar() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetVar(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestInit_Idempotent(t *testing.T) {
	mem := host.NewMemory()
	if err := Init(mem); err != nil {
		t.Fatal(err)
	}
	first := host.Snapshot(mem)

	if err := Init(mem); err != nil {
		t.Fatal(err)
	}
	second := host.Snapshot(mem)

	if len(first) != len(second) {
		t.Fatalf("snapshot sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d changed: %v -> %v", i, first[i], second[i])
		}
	}
}

func TestInit_HostFailure(t *testing.T) {
	mem := host.NewMemory()
	mem.FailOn("git.gitsigns.enable_current_line_blame",
		nverrors.Host(nverrors.HostAPI, errors.New("E46: read-only")))

	p := New()
	err := p.Init(mem)
	if err == nil {
		t.Fatal("Init() should fail when the host rejects a write")
	}
	if !errors.Is(err, nverrors.ErrHost) || !errors.Is(err, nverrors.ErrAPI) {
		t.Errorf("Init() error = %v, want host api error", err)
	}

	var e *nverrors.Error
	if !errors.As(err, &e) || e.Key != "git.gitsigns.enable_current_line_blame" {
		t.Errorf("error should carry the failed key, got %v", err)
	}

	if _, err := mem.GetVar("basic.language"); err != nil {
		t.Error("keys before the failure should stay set")
	}
	if _, err := mem.GetVar("lsp.format_before_save"); err == nil {
		t.Error("keys after the failure should not be written")
	}

	if p.Err() != err {
		t.Errorf("Err() = %v, want %v", p.Err(), err)
	}
	if p.Config() != nil {
		t.Error("Config() should be nil after a failed Init")
	}
}

func TestInit_RecoversAfterFailure(t *testing.T) {
	mem := host.NewMemory()
	mem.FailOn("ui.theme", errors.New("busy"))

	p := New()
	if err := p.Init(mem); err == nil {
		t.Fatal("first Init() should fail")
	}

	mem.FailOn("ui.theme", nil)
	if err := p.Init(mem); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if p.Err() != nil {
		t.Errorf("Err() = %v after success, want nil", p.Err())
	}
	if p.Config() == nil {
		t.Error("Config() should be set after a successful Init")
	}
}

func TestInit_LogsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	ids := []string{"run-1", "run-2"}
	next := 0
	p := New(WithLogger(logger), withRunIDs(func() string {
		id := ids[next]
		next++
		return id
	}))

	if err := p.Init(host.NewMemory()); err != nil {
		t.Fatal(err)
	}
	if err := p.Init(host.NewMemory()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, id := range ids {
		if !strings.Contains(out, `"run":"`+id+`"`) {
			t.Errorf("log output missing run %s", id)
		}
	}
	if !strings.Contains(out, `"plugin":"neviraide_core"`) {
		t.Error("log output missing plugin field")
	}
	if !strings.Contains(out, "configuration published") {
		t.Error("log output missing publish summary")
	}
}

func TestInit_LogsFailedKey(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	mem := host.NewMemory()
	mem.FailOn("ui.font.size", errors.New("nope"))

	if err := Init(mem, WithLogger(logger)); err == nil {
		t.Fatal("Init() should fail")
	}

	out := buf.String()
	if !strings.Contains(out, `"key":"ui.font.size"`) || !strings.Contains(out, `"value":"11"`) {
		t.Errorf("failure log should name key and value, got %s", out)
	}
}

func TestNew_DefaultRunIDsAreUnique(t *testing.T) {
	p := New()
	a, b := p.newID(), p.newID()
	if a == "" || a == b {
		t.Errorf("run IDs %q and %q should be distinct and non-empty", a, b)
	}
}
