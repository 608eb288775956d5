// Package plugin is the entry point the editor host calls to initialize
// neviraide.
//
// Initialization takes no input. It builds the default configuration tree
// and publishes every leaf into the host namespace:
//
//	if err := plugin.Init(ns, plugin.WithLogger(logger)); err != nil {
//	    return err
//	}
//
// Inside an embedded Lua host the plugin is exposed as a module instead:
//
//	state, _ := lua.NewState()
//	plugin.Register(state)
//	// later, from Lua:
//	//   local core = require("neviraide_core")
//	//   print(core.config.ui.theme, core.get("ui.font.size"))
//
// Each initialization run gets its own run ID, attached to every log line
// the run produces.
package plugin
