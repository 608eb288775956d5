package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/neviraide/neviraide-core/internal/export"
	"github.com/neviraide/neviraide-core/internal/host"
)

var (
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
	changedColor = color.New(color.FgYellow)
)

// change is one difference between a dump and the live namespace.
type change struct {
	Key  string
	Old  string
	New  string
	Kind byte // '+', '-' or '~'
}

func newDiffCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff <file>",
		Short: "Compare a dump with what the plugin publishes",
		Long: `Read a dump written by "neviraide dump" and report every key whose
value differs from the namespace the plugin publishes now.

Lines start with "-" for keys only in the file, "+" for keys only in the
namespace and "~" for changed values. The command fails when there are
differences.

Examples:
  neviraide diff defaults.toml
  neviraide diff --format lua saved.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var (
				f   export.Format
				err error
			)
			if format != "" {
				f, err = export.ParseFormat(format)
			} else {
				f, err = formatFromPath(path)
			}
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			saved, err := export.Decode(data, f)
			if err != nil {
				return err
			}

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			changes := diffEntries(saved, host.Snapshot(s.namespace()))
			if len(changes) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no differences")
				return err
			}
			printChanges(cmd.OutOrStdout(), changes)
			return fmt.Errorf("%d variables differ from %s", len(changes), path)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Format of the file (default from extension)")
	return cmd
}

// diffEntries compares two sorted entry lists.
func diffEntries(old, cur []host.Entry) []change {
	var out []change
	i, j := 0, 0
	for i < len(old) || j < len(cur) {
		switch {
		case j >= len(cur) || (i < len(old) && old[i].Key < cur[j].Key):
			out = append(out, change{Key: old[i].Key, Old: old[i].Value, Kind: '-'})
			i++
		case i >= len(old) || cur[j].Key < old[i].Key:
			out = append(out, change{Key: cur[j].Key, New: cur[j].Value, Kind: '+'})
			j++
		default:
			if old[i].Value != cur[j].Value {
				out = append(out, change{Key: old[i].Key, Old: old[i].Value, New: cur[j].Value, Kind: '~'})
			}
			i++
			j++
		}
	}
	return out
}

func printChanges(w io.Writer, changes []change) {
	for _, c := range changes {
		switch c.Kind {
		case '-':
			_, _ = removedColor.Fprintf(w, "- %s = %s\n", c.Key, c.Old)
		case '+':
			_, _ = addedColor.Fprintf(w, "+ %s = %s\n", c.Key, c.New)
		default:
			_, _ = changedColor.Fprintf(w, "~ %s = %s -> %s\n", c.Key, c.Old, c.New)
		}
	}
}
