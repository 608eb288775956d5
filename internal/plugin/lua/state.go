// Package lua provides the Lua runtime that hosts the plugin.
package lua

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	nverrors "github.com/neviraide/neviraide-core/internal/errors"
)

// Names of the globals that make up the editor's variable store.
const (
	EditorGlobal = "vim"
	VarsField    = "g"
	APIField     = "api"
)

// State wraps gopher-lua with the editor's variable store installed.
//
// gopher-lua's LState is not goroutine-safe and State adds no locking:
// a State has a single owner that drives it from one goroutine. Plugin
// loaders run inside require and call back into the same State, which
// is why there is no mutex to re-enter.
type State struct {
	L *lua.LState

	output io.Writer
	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithOutput redirects Lua's print to w.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		s.output = w
	}
}

// NewState creates a Lua state with safe libraries and an empty variable store.
func NewState(opts ...StateOption) (*State, error) {
	state := &State{}
	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // We'll open selectively
	})
	state.L = L

	if err := openSafeLibraries(L); err != nil {
		L.Close()
		return nil, hostErr(err)
	}

	if state.output != nil {
		L.SetGlobal("print", L.NewFunction(state.print))
	}

	installEditorAPI(L)
	return state, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
//
// io, os and debug are intentionally not opened, and dofile and loadfile
// are removed from the base library. package is opened so
// require can resolve preloaded modules, but its search path is cleared
// so nothing is loaded from disk.
func openSafeLibraries(L *lua.LState) error {
	libs := []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}

	for _, lib := range libs {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			return fmt.Errorf("opening %s library: %w", lib.name, err)
		}
	}

	// Base library functions that read files.
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)

	if pkg, ok := L.GetGlobal(lua.LoadLibName).(*lua.LTable); ok {
		pkg.RawSetString("path", lua.LString(""))
		pkg.RawSetString("cpath", lua.LString(""))
	}
	return nil
}

// print writes its arguments tab-separated to the configured output.
func (s *State) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, top)
	for i := 1; i <= top; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	_, _ = io.WriteString(s.output, strings.Join(parts, "\t")+"\n")
	return 0
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	if s.closed {
		return hostErr(ErrStateClosed)
	}
	return s.doWithRecovery(func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a Lua string.
func (s *State) DoString(code string) error {
	if s.closed {
		return hostErr(ErrStateClosed)
	}
	return s.doWithRecovery(func() error {
		return s.L.DoString(code)
	})
}

// doWithRecovery executes a function with panic recovery and classifies
// the resulting error.
func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = hostErr(&lua.ApiError{
				Type:   lua.ApiErrorPanic,
				Object: lua.LString(fmt.Sprintf("lua panic: %v", r)),
			})
		}
	}()
	return hostErr(fn())
}

// Call calls a global Lua function with the given arguments.
// Returns an empty slice (not nil) if the function returns no values.
func (s *State) Call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	if s.closed {
		return nil, hostErr(ErrStateClosed)
	}

	fnVal := s.L.GetGlobal(fn)
	if fnVal == lua.LNil {
		return nil, nverrors.Host(nverrors.HostAPI, fmt.Errorf("function %q not found", fn))
	}
	if fnVal.Type() != lua.LTFunction {
		return nil, nverrors.Host(nverrors.HostAPI,
			fmt.Errorf("%q is not a function (got %s)", fn, fnVal.Type()))
	}

	// Record stack top before pushing anything
	stackTop := s.L.GetTop()

	s.L.Push(fnVal)
	for _, arg := range args {
		s.L.Push(arg)
	}

	if err := s.doWithRecovery(func() error {
		return s.L.PCall(len(args), lua.MultRet, nil)
	}); err != nil {
		return nil, err
	}

	// Collect return values (only the new values added after the call)
	nRet := s.L.GetTop() - stackTop
	if nRet <= 0 {
		return []lua.LValue{}, nil
	}
	results := make([]lua.LValue, nRet)
	for i := 0; i < nRet; i++ {
		results[i] = s.L.Get(stackTop + i + 1)
	}
	s.L.Pop(nRet)

	return results, nil
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// PreloadModule makes a module available to require under name.
// The loader runs on the first require and its return value is cached.
func (s *State) PreloadModule(name string, loader lua.LGFunction) {
	if s.closed {
		return
	}
	s.L.PreloadModule(name, loader)
}

// Require loads a module the same way Lua's require does and returns it.
func (s *State) Require(name string) (lua.LValue, error) {
	if s.closed {
		return lua.LNil, hostErr(ErrStateClosed)
	}
	var mod lua.LValue = lua.LNil
	err := s.doWithRecovery(func() error {
		err := s.L.CallByParam(lua.P{
			Fn:      s.L.GetGlobal("require"),
			NRet:    1,
			Protect: true,
		}, lua.LString(name))
		if err != nil {
			return err
		}
		mod = s.L.Get(-1)
		s.L.Pop(1)
		return nil
	})
	return mod, err
}

// Namespace returns the host namespace backed by vim.g.
func (s *State) Namespace() *Namespace {
	return &Namespace{state: s}
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	return s.closed
}

// Close releases all resources associated with the Lua state.
// After Close is called, all other methods will return ErrStateClosed.
func (s *State) Close() error {
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
