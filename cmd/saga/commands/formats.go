package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Show the executable's version and the file formats it reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sagaCmd, _ := cmd.Flags().GetString("saga-cmd")

			report, err := c.app.Formats(cmd.Context(), sagaCmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "saga_cmd version: %s\n", report.Version)
			_, _ = fmt.Fprintf(out, "raster: %s\n", joinOrNone(report.Raster))
			_, _ = fmt.Fprintf(out, "vector: %s\n", joinOrNone(report.Vector))
			return nil
		},
	}
}

func joinOrNone(exts []string) string {
	if len(exts) == 0 {
		return "(none)"
	}
	return strings.Join(exts, " ")
}
