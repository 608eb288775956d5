package config

// UiConfig holds appearance settings.
type UiConfig struct {
	// Hyde hides the statusline and tabline until they are needed.
	Hyde bool

	// Theme is the colorscheme name.
	Theme string

	// Notify routes messages through the notification popup.
	Notify bool

	// Nonicons uses the nonicons glyph font instead of devicons.
	Nonicons bool

	// CursorLine highlights the cursor line.
	CursorLine bool

	// CursorColumn highlights the cursor column.
	CursorColumn bool

	// Indents is the indentation width in spaces.
	Indents uint

	LineNumbers LineNumbersConfig
	Font        FontConfig
}

// LineNumbersConfig controls the number column.
type LineNumbersConfig struct {
	// AutoSwitchRelative switches to absolute numbers in insert mode.
	AutoSwitchRelative bool

	// NumbersEnabled shows the number column.
	NumbersEnabled bool

	// RelativeNumbers shows numbers relative to the cursor line.
	RelativeNumbers bool
}

// FontConfig selects the GUI font.
type FontConfig struct {
	Family string
	// Size is the font size in points.
	Size uint
}

// DefaultUiConfig returns the built-in appearance settings.
func DefaultUiConfig() UiConfig {
	return UiConfig{
		Hyde:         false,
		Theme:        "Catppuccin-Mocha",
		Notify:       true,
		Nonicons:     true,
		CursorLine:   true,
		CursorColumn: false,
		Indents:      4,
		LineNumbers:  DefaultLineNumbersConfig(),
		Font:         DefaultFontConfig(),
	}
}

// DefaultLineNumbersConfig returns the built-in number column settings.
func DefaultLineNumbersConfig() LineNumbersConfig {
	return LineNumbersConfig{
		AutoSwitchRelative: true,
		NumbersEnabled:     true,
		RelativeNumbers:    true,
	}
}

// DefaultFontConfig returns the built-in font settings.
func DefaultFontConfig() FontConfig {
	return FontConfig{
		Family: "JetBrainsMono Nerd Font",
		Size:   11,
	}
}

func (c UiConfig) members() []member {
	return []member{
		leaf("hyde", Bool(c.Hyde)),
		leaf("theme", String(c.Theme)),
		leaf("notify", Bool(c.Notify)),
		leaf("nonicons", Bool(c.Nonicons)),
		leaf("cursor_line", Bool(c.CursorLine)),
		leaf("cursor_column", Bool(c.CursorColumn)),
		leaf("indents", Uint(c.Indents)),
		nested("line_numbers", c.LineNumbers),
		nested("font", c.Font),
	}
}

func (c LineNumbersConfig) members() []member {
	return []member{
		leaf("auto_switch_relative", Bool(c.AutoSwitchRelative)),
		leaf("numbers_enabled", Bool(c.NumbersEnabled)),
		leaf("relative_numbers", Bool(c.RelativeNumbers)),
	}
}

func (c FontConfig) members() []member {
	return []member{
		leaf("family", String(c.Family)),
		leaf("size", Uint(c.Size)),
	}
}

// String returns a human-readable rendering.
func (c UiConfig) String() string { return render("UiConfig", c) }

// Fields returns the leaves of the record with keys relative to it.
func (c UiConfig) Fields() []Field { return flatten("", c) }

// String returns a human-readable rendering.
func (c LineNumbersConfig) String() string { return render("LineNumbersConfig", c) }

// Fields returns the leaves of the record with keys relative to it.
func (c LineNumbersConfig) Fields() []Field { return flatten("", c) }

// String returns a human-readable rendering.
func (c FontConfig) String() string { return render("FontConfig", c) }

// Fields returns the leaves of the record with keys relative to it.
func (c FontConfig) Fields() []Field { return flatten("", c) }
