package config

// LspConfig holds language server settings.
type LspConfig struct {
	// FormatBeforeSave formats the buffer through the language server on write.
	FormatBeforeSave bool

	// InlayHints shows inlay hints where the server supports them.
	InlayHints bool

	// CodeLenses shows code lenses where the server supports them.
	CodeLenses bool

	Completion CompletionConfig
	Diagnostic DiagnosticConfig
}

// CompletionConfig controls completion popups.
type CompletionConfig struct {
	// Auto opens the completion menu while typing.
	Auto bool
}

// DiagnosticConfig controls how diagnostics are displayed.
type DiagnosticConfig struct {
	// EnableDSigns shows diagnostic markers in the sign column.
	EnableDSigns bool

	// VirtualText shows diagnostic messages at the end of the line.
	VirtualText bool

	// ShowOnHover opens a float with diagnostics when the cursor rests on them.
	ShowOnHover bool
}

// DefaultLspConfig returns the built-in language server settings.
func DefaultLspConfig() LspConfig {
	return LspConfig{
		FormatBeforeSave: false,
		InlayHints:       true,
		CodeLenses:       true,
		Completion:       DefaultCompletionConfig(),
		Diagnostic:       DefaultDiagnosticConfig(),
	}
}

// DefaultCompletionConfig returns the built-in completion settings.
func DefaultCompletionConfig() CompletionConfig {
	return CompletionConfig{Auto: true}
}

// DefaultDiagnosticConfig returns the built-in diagnostic settings.
func DefaultDiagnosticConfig() DiagnosticConfig {
	return DiagnosticConfig{
		EnableDSigns: true,
		VirtualText:  false,
		ShowOnHover:  false,
	}
}

func (c LspConfig) members() []member {
	return []member{
		leaf("format_before_save", Bool(c.FormatBeforeSave)),
		leaf("inlay_hints", Bool(c.InlayHints)),
		leaf("code_lenses", Bool(c.CodeLenses)),
		nested("completion", c.Completion),
		nested("diagnostic", c.Diagnostic),
	}
}

func (c CompletionConfig) members() []member {
	return []member{
		leaf("auto", Bool(c.Auto)),
	}
}

func (c DiagnosticConfig) members() []member {
	return []member{
		leaf("enable_d_signs", Bool(c.EnableDSigns)),
		leaf("virtual_text", Bool(c.VirtualText)),
		leaf("show_on_hover", Bool(c.ShowOnHover)),
	}
}

// String returns a human-readable rendering.
func (c LspConfig) String() string { return render("LspConfig", c) }

// Fields returns the leaves of the record with keys relative to it.
func (c LspConfig) Fields() []Field { return flatten("", c) }

// String returns a human-readable rendering.
func (c CompletionConfig) String() string { return render("CompletionConfig", c) }

// Fields returns the leaves of the record with keys relative to it.
func (c CompletionConfig) Fields() []Field { return flatten("", c) }

// String returns a human-readable rendering.
func (c DiagnosticConfig) String() string { return render("DiagnosticConfig", c) }

// Fields returns the leaves of the record with keys relative to it.
func (c DiagnosticConfig) Fields() []Field { return flatten("", c) }
