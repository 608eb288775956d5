package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCommand(opts *options) *cobra.Command {
	var entry string

	cmd := &cobra.Command{
		Use:   "run <script.lua>",
		Short: "Run a Lua script against the initialized host",
		Long: `Load the plugin, then run a Lua script in the same host. The script
sees the published variables in vim.g and can require("neviraide_core").

With --call, the named global function is called after the script has run
and its return values are printed tab-separated.

Examples:
  neviraide run check.lua
  neviraide run check.lua --call main`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			opts.logger.Debug().Str("script", args[0]).Msg("running script")
			if err := s.state.DoFile(args[0]); err != nil {
				return err
			}
			if entry == "" {
				return nil
			}

			opts.logger.Debug().Str("function", entry).Msg("calling entry function")
			results, err := s.state.Call(entry)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				return nil
			}
			parts := make([]string, len(results))
			for i, v := range results {
				parts[i] = v.String()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, "\t"))
			return err
		},
	}

	cmd.Flags().StringVar(&entry, "call", "", "global function to call after the script runs")
	return cmd
}
