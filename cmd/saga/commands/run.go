package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/saga/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline defined in saga.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			sagaCmd, _ := cmd.Flags().GetString("saga-cmd")
			verbose, _ := cmd.Flags().GetBool("verbose")
			ignoreStderr, _ := cmd.Flags().GetBool("ignore-stderr")
			inferTypes, _ := cmd.Flags().GetBool("infer-types")
			keepTemp, _ := cmd.Flags().GetBool("keep-temp")

			return c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath:   configPath,
				SagaCmd:      sagaCmd,
				KeepTemp:     keepTemp,
				Verbose:      verbose,
				IgnoreStderr: ignoreStderr,
				InferTypes:   inferTypes,
			})
		},
	}
	cmd.Flags().StringP("config", "c", "", "Pipeline file (searched upward from the working directory if empty)")
	cmd.Flags().BoolP("verbose", "v", false, "Stream stage headers and progress while tools run")
	cmd.Flags().Bool("ignore-stderr", false, "Do not treat child stderr output as a failure")
	cmd.Flags().Bool("infer-types", false, "Probe supported formats and classify result files")
	cmd.Flags().Bool("keep-temp", false, "Keep the scratch directory after a successful run")
	return cmd
}
