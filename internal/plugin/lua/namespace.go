package lua

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	nverrors "github.com/neviraide/neviraide-core/internal/errors"
)

// installEditorAPI creates the vim global with the variable store (vim.g)
// and the variable functions of vim.api.
func installEditorAPI(L *lua.LState) {
	editor := L.NewTable()
	editor.RawSetString(VarsField, L.NewTable())

	api := L.NewTable()
	L.SetFuncs(api, map[string]lua.LGFunction{
		"nvim_set_var": apiSetVar,
		"nvim_get_var": apiGetVar,
		"nvim_del_var": apiDelVar,
	})
	editor.RawSetString(APIField, api)

	L.SetGlobal(EditorGlobal, editor)
}

// varTable returns the current vim.g table. Scripts may replace vim or
// vim.g, so it is looked up on every access.
func varTable(L *lua.LState) (*lua.LTable, error) {
	editor, ok := L.GetGlobal(EditorGlobal).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s is not a table", EditorGlobal)
	}
	vars, ok := editor.RawGetString(VarsField).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s.%s is not a table", EditorGlobal, VarsField)
	}
	return vars, nil
}

// nvim_set_var(key, value)
func apiSetVar(L *lua.LState) int {
	key := L.CheckString(1)
	value := L.CheckAny(2)

	vars, err := varTable(L)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.SetField(vars, key, value)
	return 0
}

// nvim_get_var(key) -> value
func apiGetVar(L *lua.LState) int {
	key := L.CheckString(1)

	vars, err := varTable(L)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	value := vars.RawGetString(key)
	if value == lua.LNil {
		L.RaiseError("Key not found: %s", key)
		return 0
	}
	L.Push(value)
	return 1
}

// nvim_del_var(key)
func apiDelVar(L *lua.LState) int {
	key := L.CheckString(1)

	vars, err := varTable(L)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	if vars.RawGetString(key) == lua.LNil {
		L.RaiseError("Key not found: %s", key)
		return 0
	}
	vars.RawSetString(key, lua.LNil)
	return 0
}

// Namespace is the editor's global variable store (vim.g) seen as a
// host.Namespace.
//
// Writes go through vim.api.nvim_set_var, so a script that wraps or
// replaces that function sees every publish.
type Namespace struct {
	state *State
}

// SetVar implements host.Writer.
func (n *Namespace) SetVar(key, value string) error {
	if n.state.IsClosed() {
		return nverrors.Host(nverrors.HostRuntime, ErrStateClosed).WithKey("set_var", key)
	}

	L := n.state.L
	editor, ok := n.state.GetGlobal(EditorGlobal).(*lua.LTable)
	if !ok {
		return nverrors.Host(nverrors.HostRuntime,
			fmt.Errorf("%s is not a table", EditorGlobal)).WithKey("set_var", key)
	}
	api, ok := editor.RawGetString(APIField).(*lua.LTable)
	if !ok {
		return nverrors.Host(nverrors.HostRuntime,
			fmt.Errorf("%s.%s is not a table", EditorGlobal, APIField)).WithKey("set_var", key)
	}

	err := n.state.doWithRecovery(func() error {
		return L.CallByParam(lua.P{
			Fn:      api.RawGetString("nvim_set_var"),
			NRet:    0,
			Protect: true,
		}, lua.LString(key), lua.LString(value))
	})
	if err != nil {
		return nverrors.SetVar(key, err)
	}
	return nil
}

// GetVar implements host.Reader. Only string variables can be read.
func (n *Namespace) GetVar(key string) (string, error) {
	if n.state.IsClosed() {
		return "", nverrors.Host(nverrors.HostRuntime, ErrStateClosed).WithKey("get_var", key)
	}

	vars, err := varTable(n.state.L)
	if err != nil {
		return "", nverrors.Host(nverrors.HostRuntime, err).WithKey("get_var", key)
	}

	switch v := vars.RawGetString(key).(type) {
	case lua.LString:
		return string(v), nil
	case *lua.LNilType:
		return "", nverrors.Host(nverrors.HostAPI,
			fmt.Errorf("%w: %s", nverrors.ErrKeyNotFound, key)).WithKey("get_var", key)
	default:
		return "", nverrors.Host(nverrors.HostConversion,
			fmt.Errorf("value is a %s, not a string", v.Type())).WithKey("get_var", key)
	}
}

// Keys implements host.Namespace. Only string keys holding string values
// are listed, so every listed key can be read with GetVar. Values sees
// the rest.
func (n *Namespace) Keys() []string {
	if n.state.IsClosed() {
		return nil
	}
	vars, err := varTable(n.state.L)
	if err != nil {
		return nil
	}

	var keys []string
	vars.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		if _, ok := v.(lua.LString); ok {
			keys = append(keys, string(ks))
		}
	})
	sort.Strings(keys)
	return keys
}

// Values returns every string-keyed variable in vim.g converted to Go
// values, whatever their Lua type. Numbers become int64 or float64 and
// tables become maps or slices.
func (n *Namespace) Values() (map[string]any, error) {
	if n.state.IsClosed() {
		return nil, nverrors.Host(nverrors.HostRuntime, ErrStateClosed)
	}
	vars, err := varTable(n.state.L)
	if err != nil {
		return nil, nverrors.Host(nverrors.HostRuntime, err)
	}

	bridge := NewBridge(n.state.L)
	values := make(map[string]any)
	vars.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			values[string(ks)] = bridge.ToGoValue(v)
		}
	})
	return values, nil
}
