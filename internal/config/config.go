package config

import (
	"github.com/neviraide/neviraide-core/internal/host"
)

// NeviraideConfig is the root of the configuration tree.
type NeviraideConfig struct {
	Basic BasicConfig
	Git   GitConfig
	Lsp   LspConfig
	Ui    UiConfig
}

// New returns the configuration with every record at its defaults.
func New() *NeviraideConfig {
	return &NeviraideConfig{
		Basic: DefaultBasicConfig(),
		Git:   DefaultGitConfig(),
		Lsp:   DefaultLspConfig(),
		Ui:    DefaultUiConfig(),
	}
}

func (c *NeviraideConfig) members() []member {
	return []member{
		nested("basic", c.Basic),
		nested("git", c.Git),
		nested("lsp", c.Lsp),
		nested("ui", c.Ui),
	}
}

// Fields returns every leaf with its fully dotted key, in declaration order.
func (c *NeviraideConfig) Fields() []Field {
	return flatten("", c)
}

// Sections returns the top-level sections with their leaves.
// Keys inside each section are fully dotted.
func (c *NeviraideConfig) Sections() []Section {
	ms := c.members()
	out := make([]Section, 0, len(ms))
	for _, m := range ms {
		r := m.value.(record)
		out = append(out, Section{Name: m.name, Fields: flatten(m.name, r)})
	}
	return out
}

// Lookup returns the leaf stored under a dotted key.
func (c *NeviraideConfig) Lookup(key string) (Value, bool) {
	for _, f := range c.Fields() {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Map returns the configuration as nested maps of plain Go values, keyed by
// the same names used in the host namespace.
func (c *NeviraideConfig) Map() map[string]any {
	return toMap(c)
}

// Apply publishes every leaf to w using a silent publisher.
// It stops at the first failed write; keys already written stay set.
func (c *NeviraideConfig) Apply(w host.Writer) error {
	return c.Publish(w)
}

// Publish is Apply with publisher options such as WithLogger.
func (c *NeviraideConfig) Publish(w host.Writer, opts ...PublisherOption) error {
	return NewPublisher(opts...).Publish(c, w)
}

// String returns a human-readable rendering of the whole tree.
func (c *NeviraideConfig) String() string {
	return render("NeviraideConfig", c)
}
