package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/neviraide/neviraide-core/internal/config"
	"github.com/neviraide/neviraide-core/internal/host"
)

var (
	keyColor    = color.New(color.FgCyan)
	trueColor   = color.New(color.FgGreen)
	falseColor  = color.New(color.FgRed)
	numberColor = color.New(color.FgMagenta)
	listColor   = color.New(color.FgYellow)
)

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list [prefix]",
		Aliases: []string{"ls"},
		Short:   "List published variables",
		Long: `List every variable the plugin published, sorted by key.

Examples:
  neviraide list
  neviraide list ui.font`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			entries := filterPrefix(host.Snapshot(s.namespace()), prefix)
			if len(entries) == 0 {
				return fmt.Errorf("no variables under %q", prefix)
			}
			printEntries(cmd.OutOrStdout(), s.plugin.Config(), entries)
			return nil
		},
	}
}

// filterPrefix keeps entries equal to prefix or nested under it.
func filterPrefix(entries []host.Entry, prefix string) []host.Entry {
	if prefix == "" {
		return entries
	}
	var out []host.Entry
	for _, e := range entries {
		if e.Key == prefix || strings.HasPrefix(e.Key, prefix+".") {
			out = append(out, e)
		}
	}
	return out
}

func printEntries(w io.Writer, cfg *config.NeviraideConfig, entries []host.Entry) {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}
	for _, e := range entries {
		_, _ = keyColor.Fprintf(w, "%-*s", width, e.Key)
		_, _ = fmt.Fprint(w, " = ")
		_, _ = valueColor(cfg, e.Key).Fprintln(w, e.Value)
	}
}

// valueColor picks a color from the kind of the configuration leaf behind
// key. Keys the configuration does not know are left uncolored.
func valueColor(cfg *config.NeviraideConfig, key string) *color.Color {
	plain := color.New()
	if cfg == nil {
		return plain
	}
	v, ok := cfg.Lookup(key)
	if !ok {
		return plain
	}
	switch v.Kind() {
	case config.KindBool:
		if v.Interface() == true {
			return trueColor
		}
		return falseColor
	case config.KindUint:
		return numberColor
	case config.KindList:
		return listColor
	}
	return plain
}
