package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/saga/internal/app"
	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newToolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool <library> <tool> [NAME=value...]",
		Short: "Run a single tool invocation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[2:])
			if err != nil {
				return err
			}

			sagaCmd, _ := cmd.Flags().GetString("saga-cmd")
			flag, _ := cmd.Flags().GetString("flag")
			verbose, _ := cmd.Flags().GetBool("verbose")
			ignoreStderr, _ := cmd.Flags().GetBool("ignore-stderr")
			inferTypes, _ := cmd.Flags().GetBool("infer-types")
			keepTemp, _ := cmd.Flags().GetBool("keep-temp")

			return c.app.RunTool(cmd.Context(), app.ToolOptions{
				SagaCmd:      sagaCmd,
				Library:      args[0],
				Tool:         args[1],
				Flag:         flag,
				Params:       params,
				KeepTemp:     keepTemp,
				Verbose:      verbose,
				IgnoreStderr: ignoreStderr,
				InferTypes:   inferTypes,
			})
		},
	}
	cmd.Flags().String("flag", "", "Modifier flag passed before the library, e.g. cores=8")
	cmd.Flags().BoolP("verbose", "v", false, "Stream stage headers and progress while the tool runs")
	cmd.Flags().Bool("ignore-stderr", false, "Do not treat child stderr output as a failure")
	cmd.Flags().Bool("infer-types", false, "Probe supported formats and classify result files")
	cmd.Flags().Bool("keep-temp", false, "Keep the scratch directory after a successful run")
	return cmd
}

// parseParams turns trailing NAME=value arguments into parameters, keeping
// their order.
func parseParams(args []string) ([]domain.Param, error) {
	params := make([]domain.Param, 0, len(args))
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !found || name == "" {
			err := zerr.Wrap(domain.ErrConfigParseFailed, "parameters must look like NAME=value")
			return nil, zerr.With(err, "argument", arg)
		}
		params = append(params, domain.Param{Name: name, Value: value})
	}
	return params, nil
}
