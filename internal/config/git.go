package config

// GitConfig holds version control integration settings.
type GitConfig struct {
	Gitsigns GitsignsConfig
}

// GitsignsConfig controls the sign column and blame annotations.
type GitsignsConfig struct {
	// EnableGSigns shows added/changed/removed markers in the sign column.
	EnableGSigns bool

	// EnableCurrentLineBlame shows blame for the cursor line as virtual text.
	EnableCurrentLineBlame bool
}

// DefaultGitConfig returns the built-in git settings.
func DefaultGitConfig() GitConfig {
	return GitConfig{
		Gitsigns: DefaultGitsignsConfig(),
	}
}

// DefaultGitsignsConfig returns the built-in gitsigns settings.
func DefaultGitsignsConfig() GitsignsConfig {
	return GitsignsConfig{
		EnableGSigns:           true,
		EnableCurrentLineBlame: false,
	}
}

func (c GitConfig) members() []member {
	return []member{
		nested("gitsigns", c.Gitsigns),
	}
}

func (c GitsignsConfig) members() []member {
	return []member{
		leaf("enable_g_signs", Bool(c.EnableGSigns)),
		leaf("enable_current_line_blame", Bool(c.EnableCurrentLineBlame)),
	}
}

// String returns a human-readable rendering.
func (c GitConfig) String() string { return render("GitConfig", c) }

// Fields returns the leaves of the record with keys relative to it.
func (c GitConfig) Fields() []Field { return flatten("", c) }

// String returns a human-readable rendering.
func (c GitsignsConfig) String() string { return render("GitsignsConfig", c) }

// Fields returns the leaves of the record with keys relative to it.
func (c GitsignsConfig) Fields() []Field { return flatten("", c) }
