// Package cli implements the neviraide command, a harness that embeds a
// Lua host, loads the plugin into it and inspects the published namespace.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/neviraide/neviraide-core/internal/logging"
	"github.com/neviraide/neviraide-core/internal/plugin"
	plua "github.com/neviraide/neviraide-core/internal/plugin/lua"
)

// Version information, set by main.
var (
	Version = "dev"
	Commit  = "unknown"
)

// options holds the persistent flags shared by every command.
type options struct {
	logLevel string
	pretty   bool
	noColor  bool

	logger zerolog.Logger
}

// NewRootCommand builds the neviraide command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{logger: logging.Nop()}

	root := &cobra.Command{
		Use:   "neviraide",
		Short: "Inspect the neviraide configuration namespace",
		Long: `neviraide loads the neviraide_core plugin into an embedded Lua host
and reports what it published.

Every command starts from an empty host, requires the plugin and then
works on the resulting variable namespace.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !logging.ValidLevel(opts.logLevel) {
				return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.logLevel)
			}
			if opts.noColor {
				color.NoColor = true
			}
			opts.logger = logging.New(logging.Config{
				Level:     logging.ParseLevel(opts.logLevel),
				Output:    cmd.ErrOrStderr(),
				Pretty:    opts.pretty,
				Component: "cli",
			})
			return nil
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("neviraide %s (%s)\n", Version, Commit))

	flags := root.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.BoolVar(&opts.pretty, "pretty", false, "Human-readable log output")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newListCommand(opts),
		newGetCommand(opts),
		newDumpCommand(opts),
		newDiffCommand(opts),
		newRunCommand(opts),
		newShowCommand(opts),
	)
	return root
}

// Execute runs the command tree with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// session is a Lua host with the plugin loaded.
type session struct {
	state  *plua.State
	plugin *plugin.Plugin
}

// openSession starts a host whose print goes to the command's output and
// loads the plugin into it. The caller closes the session.
func openSession(cmd *cobra.Command, opts *options) (*session, error) {
	state, err := plua.NewState(plua.WithOutput(cmd.OutOrStdout()))
	if err != nil {
		return nil, fmt.Errorf("starting host: %w", err)
	}

	p := plugin.New(plugin.WithLogger(opts.logger))
	if _, err := p.Load(state); err != nil {
		_ = state.Close()
		return nil, fmt.Errorf("loading %s: %w", plugin.ModuleName, err)
	}
	return &session{state: state, plugin: p}, nil
}

func (s *session) namespace() *plua.Namespace {
	return s.state.Namespace()
}

func (s *session) Close() error {
	return s.state.Close()
}
