package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nodenotes/internal/ui"
)

func graphsCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "graphs",
		Short: "List the graphs under the root directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			names, err := e.lib.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				ui.Subtle.Fprintf(out, "  no graphs in %s\n", e.lib.Root())
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				sum, err := e.lib.Summarize(name)
				if err != nil {
					e.log.Warn("graph skipped", zap.String("graph", name), zap.Error(err))
					continue
				}
				rows = append(rows, []string{sum.Name, strconv.Itoa(sum.Notes), ui.Check(sum.HasPositions)})
			}
			ui.Table(out, []string{"GRAPH", "NOTES", "LAID OUT"}, rows)
			return nil
		},
	}
}

func newGraphCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			dir, err := e.lib.Create(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Sprint("created"), dir)
			return nil
		},
	}
}
