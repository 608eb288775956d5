package config

import (
	"github.com/rs/zerolog"

	nverrors "github.com/neviraide/neviraide-core/internal/errors"
	"github.com/neviraide/neviraide-core/internal/host"
)

// Publisher writes configuration fields into a host namespace.
type Publisher struct {
	logger zerolog.Logger
	runID  string
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithLogger sets the logger used for per-key debug output and failures.
func WithLogger(l zerolog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = l
	}
}

// WithRunID tags every log line with the given run identifier.
func WithRunID(id string) PublisherOption {
	return func(p *Publisher) {
		p.runID = id
	}
}

// NewPublisher creates a publisher. Without WithLogger it logs nothing.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.runID != "" {
		p.logger = p.logger.With().Str("run", p.runID).Logger()
	}
	return p
}

// Publish writes every leaf of c to w.
func (p *Publisher) Publish(c *NeviraideConfig, w host.Writer) error {
	return p.PublishFields(c.Fields(), w)
}

// PublishFields writes fields to w in order, one SetVar per field.
//
// The first failure aborts the remaining writes and is returned wrapped
// with its key. Nothing is rolled back.
func (p *Publisher) PublishFields(fields []Field, w host.Writer) error {
	for i, f := range fields {
		value := f.Value.String()
		if err := w.SetVar(f.Key, value); err != nil {
			wrapped := nverrors.SetVar(f.Key, err)
			p.logger.Error().
				Err(err).
				Str("key", f.Key).
				Str("value", value).
				Int("remaining", len(fields)-i-1).
				Msg("failed to set var")
			return wrapped
		}
		p.logger.Debug().
			Str("key", f.Key).
			Str("value", value).
			Stringer("kind", f.Value.Kind()).
			Msg("set var")
	}
	p.logger.Info().Int("vars", len(fields)).Msg("configuration published")
	return nil
}
