package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one published variable",
		Long: `Print the value the plugin published under a dotted key.

Examples:
  neviraide get ui.theme
  neviraide get basic.programming`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			value, err := s.namespace().GetVar(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}
