package plugin

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/neviraide/neviraide-core/internal/config"
	"github.com/neviraide/neviraide-core/internal/host"
)

// ModuleName is the name the host requires the plugin by.
const ModuleName = "neviraide_core"

// Plugin initializes the configuration and publishes it to a host.
type Plugin struct {
	logger  zerolog.Logger
	newID   func() string
	lastErr error
	config  *config.NeviraideConfig
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the logger for initialization runs.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Plugin) {
		p.logger = l
	}
}

// withRunIDs replaces the run ID generator. Used by tests.
func withRunIDs(fn func() string) Option {
	return func(p *Plugin) {
		p.newID = fn
	}
}

// New creates a plugin. Without WithLogger it logs nothing.
func New(opts ...Option) *Plugin {
	p := &Plugin{
		logger: zerolog.Nop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With().Str("plugin", ModuleName).Logger()
	return p
}

// Init publishes the default configuration to w.
//
// It returns nil when every variable was written. Otherwise it returns the
// first write failure, wrapped with its key. Variables written before the
// failure stay set.
func (p *Plugin) Init(w host.Writer) error {
	cfg := config.New()
	runID := p.newID()
	logger := p.logger.With().Str("run", runID).Logger()

	logger.Debug().Int("vars", len(cfg.Fields())).Msg("initializing")

	pub := config.NewPublisher(config.WithLogger(p.logger), config.WithRunID(runID))
	if err := pub.Publish(cfg, w); err != nil {
		p.lastErr = err
		return err
	}

	p.lastErr = nil
	p.config = cfg
	return nil
}

// Config returns the configuration published by the last successful Init,
// or nil if none succeeded.
func (p *Plugin) Config() *config.NeviraideConfig {
	return p.config
}

// Err returns the error of the last Init, or nil.
func (p *Plugin) Err() error {
	return p.lastErr
}

// Init publishes the default configuration to w with a fresh Plugin.
func Init(w host.Writer, opts ...Option) error {
	return New(opts...).Init(w)
}
