// Package lua provides the Lua runtime that hosts the plugin.
//
// This package wraps the gopher-lua library to provide:
//   - A Lua state with only safe standard libraries opened
//   - The editor's variable store (vim.g) and its vim.api functions
//   - A host.Namespace over vim.g for the configuration publisher
//   - Go-Lua type conversion
//
// # State
//
//	state, err := lua.NewState()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer state.Close()
//
//	if err := state.DoString(`print(vim.g["ui.theme"])`); err != nil {
//	    log.Fatal(err)
//	}
//
// A State is not safe for concurrent use.
//
// # Variable Store
//
// Every state starts with:
//
//	vim.g                              -- table of global variables
//	vim.api.nvim_set_var(key, value)
//	vim.api.nvim_get_var(key)          -- raises "Key not found: <key>"
//	vim.api.nvim_del_var(key)
//
// Namespace publishes through vim.api.nvim_set_var and reads vim.g
// directly. Keys are stored verbatim, dots included:
//
//	ns := state.Namespace()
//	_ = ns.SetVar("ui.font.size", "11")
//	// Lua: vim.g["ui.font.size"] == "11"
//
// Keys lists only string variables. Values returns everything a script
// stored, numbers and tables included.
//
// # Errors
//
// Errors from Lua are classified into the internal/errors taxonomy.
// Syntax errors are deserialization failures and panics are runtime
// failures. Everything else, unreadable files included, is an API failure.
//
// # Bridge
//
// The Bridge converts between Go and Lua values:
//
//	bridge := lua.NewBridge(state.L)
//	tbl, err := bridge.ToLuaValue(map[string]any{"size": uint64(11)})
//	goVal := bridge.ToGoValue(tbl)
package lua
