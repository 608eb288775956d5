// Package config provides the compiled-in configuration of the neviraide
// editor plugin and publishes it into the editor's variable namespace.
//
// # Records
//
// The configuration is a tree of plain records, each with a Default
// constructor returning fixed values:
//
//	NeviraideConfig
//	├── basic  BasicConfig
//	├── git    GitConfig
//	│   └── gitsigns  GitsignsConfig
//	├── lsp    LspConfig
//	│   ├── completion  CompletionConfig
//	│   └── diagnostic  DiagnosticConfig
//	└── ui     UiConfig
//	    ├── line_numbers  LineNumbersConfig
//	    └── font          FontConfig
//
// Records are never mutated after construction and are never validated.
//
// # Publishing
//
// Apply flattens the tree into dotted keys and writes one string variable
// per leaf through a host.Writer:
//
//	cfg := config.New()
//	if err := cfg.Apply(ns); err != nil {
//	    return err
//	}
//
// Keys always include the section name ("basic.language", "ui.font.size").
// Values are encoded as follows:
//
//	bool         true / false
//	unsigned     decimal digits, e.g. 11
//	string       the raw string, no surrounding quotes
//	string list  Lua table literal, e.g. {"lua", "rust"}
//
// Publishing stops at the first failed write. Keys written before the
// failure stay set.
//
// # Field Tables
//
// Each record declares its fields exactly once in a members method. The
// same table drives publishing, String rendering and Map conversion, so a
// field added to a struct but not to its table is caught by
// TestFields_CoverEveryStructField.
package config
