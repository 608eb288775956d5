package config

// BasicConfig holds general editor settings.
type BasicConfig struct {
	// Language is the interface language code.
	Language string

	// LatestStablePlugins pins plugins to their latest stable release.
	LatestStablePlugins bool

	// Programming lists the languages tooling is installed for, in display order.
	Programming []string
}

// DefaultBasicConfig returns the built-in basic settings.
func DefaultBasicConfig() BasicConfig {
	return BasicConfig{
		Language:            "ru",
		LatestStablePlugins: true,
		Programming:         []string{"lua", "rust"},
	}
}

func (c BasicConfig) members() []member {
	return []member{
		leaf("language", String(c.Language)),
		leaf("latest_stable_plugins", Bool(c.LatestStablePlugins)),
		leaf("programming", List(c.Programming)),
	}
}

// String returns a human-readable rendering.
func (c BasicConfig) String() string { return render("BasicConfig", c) }

// Fields returns the leaves of the record with keys relative to it.
func (c BasicConfig) Fields() []Field { return flatten("", c) }
