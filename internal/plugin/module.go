package plugin

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	nverrors "github.com/neviraide/neviraide-core/internal/errors"
	plua "github.com/neviraide/neviraide-core/internal/plugin/lua"
)

// Register makes the plugin loadable from Lua as require("neviraide_core").
//
// Nothing is published until the module is first required. The loader
// then initializes against the state's variable store and returns a table
// with the configuration tree under "config" and the functions get, has
// and keys for reading published variables back.
func (p *Plugin) Register(state *plua.State) {
	state.PreloadModule(ModuleName, p.loader(state))
}

// Load registers the plugin in state and requires it.
//
// When initialization fails the error returned is the one Init produced,
// not the Lua error string the loader raised.
func (p *Plugin) Load(state *plua.State) (*lua.LTable, error) {
	p.Register(state)

	mod, err := state.Require(ModuleName)
	if p.lastErr != nil {
		return nil, p.lastErr
	}
	if err != nil {
		return nil, err
	}

	tbl, ok := mod.(*lua.LTable)
	if !ok {
		return nil, nverrors.Host(nverrors.HostConversion,
			fmt.Errorf("module %s returned %s, want table", ModuleName, mod.Type()))
	}
	return tbl, nil
}

func (p *Plugin) loader(state *plua.State) lua.LGFunction {
	return func(L *lua.LState) int {
		ns := state.Namespace()
		if err := p.Init(ns); err != nil {
			L.RaiseError("%s: %s", ModuleName, err.Error())
			return 0
		}

		cfg, err := plua.NewBridge(L).ToLuaValue(p.config.Map())
		if err != nil {
			p.lastErr = err
			p.logger.Error().Err(err).Msg("failed to convert configuration")
			L.RaiseError("%s: %s", ModuleName, err.Error())
			return 0
		}

		mod := L.NewTable()
		mod.RawSetString("config", cfg)
		L.SetFuncs(mod, map[string]lua.LGFunction{
			"get":  getVar(ns),
			"has":  hasVar(ns),
			"keys": p.keys,
		})
		L.Push(mod)
		return 1
	}
}

// getVar returns the published value for a key, or nil and a message.
func getVar(ns *plua.Namespace) lua.LGFunction {
	return func(L *lua.LState) int {
		key := L.CheckString(1)
		if key == "" {
			L.ArgError(1, "key cannot be empty")
			return 0
		}
		v, err := ns.GetVar(key)
		if err != nil {
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(lua.LString(v))
		return 1
	}
}

func hasVar(ns *plua.Namespace) lua.LGFunction {
	return func(L *lua.LState) int {
		key := L.CheckString(1)
		if key == "" {
			L.ArgError(1, "key cannot be empty")
			return 0
		}
		_, err := ns.GetVar(key)
		L.Push(lua.LBool(err == nil))
		return 1
	}
}

// keys lists the plugin's own keys in publish order, optionally only
// those under a dotted prefix.
func (p *Plugin) keys(L *lua.LState) int {
	prefix := L.OptString(1, "")

	tbl := L.NewTable()
	for _, f := range p.config.Fields() {
		if prefix != "" && f.Key != prefix && !strings.HasPrefix(f.Key, prefix+".") {
			continue
		}
		tbl.Append(lua.LString(f.Key))
	}
	L.Push(tbl)
	return 1
}

// Register creates a plugin and makes it loadable from state.
func Register(state *plua.State, opts ...Option) *Plugin {
	p := New(opts...)
	p.Register(state)
	return p
}
