package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neviraide/neviraide-core/internal/export"
	"github.com/neviraide/neviraide-core/internal/host"
)

func newDumpCommand(opts *options) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Encode the published namespace",
		Long: `Encode every published variable in one of the export formats.

Examples:
  neviraide dump
  neviraide dump --format json
  neviraide dump --format lua -o defaults.lua`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			data, err := export.Encode(host.Snapshot(s.namespace()), f)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				opts.logger.Info().Str("path", output).Str("format", string(f)).Msg("namespace written")
				return nil
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatTOML), "Output format ("+formatNames()+")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func formatNames() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// formatFromPath guesses the export format from a file extension.
func formatFromPath(path string) (export.Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot tell the format of %s, use --format", path)
	}
	return export.ParseFormat(ext)
}
