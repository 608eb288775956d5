package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neviraide/neviraide-core/internal/config"
)

func newShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show [section]",
		Short: "Print the configuration tree",
		Long: `Print the configuration the plugin published as a tree of records.

Examples:
  neviraide show
  neviraide show ui`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"basic", "git", "lsp", "ui"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			cfg := s.plugin.Config()
			out := cfg.String()
			if len(args) == 1 {
				out, err = sectionString(cfg, args[0])
				if err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func sectionString(cfg *config.NeviraideConfig, name string) (string, error) {
	switch name {
	case "basic":
		return cfg.Basic.String(), nil
	case "git":
		return cfg.Git.String(), nil
	case "lsp":
		return cfg.Lsp.String(), nil
	case "ui":
		return cfg.Ui.String(), nil
	}
	return "", fmt.Errorf("unknown section %q (want basic, git, lsp or ui)", name)
}
