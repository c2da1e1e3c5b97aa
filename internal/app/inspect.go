// internal/app/inspect.go
package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vkbridge/internal/bridge"
	"vkbridge/internal/params"
	"vkbridge/internal/writers"
)

func (a *app) newInspectCmd() *cobra.Command {
	var (
		pf     paramFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "inspect <export.zip>",
		Short: "Summarize an export member by member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := params.ParseEnv()
			if err != nil {
				return err
			}
			proj, err := a.readProject(cmd.Context(), args[0], &pf, cmd.Flags(), env)
			if err != nil {
				return err
			}
			err = writers.WriteSummary(format, cmd.OutOrStdout(), bridge.Summarize(args[0], proj))
			if writers.IsBrokenPipe(err) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "text",
		fmt.Sprintf("output format (%s)", strings.Join(writers.SummaryFormats(), "|")))
	pf.register(cmd.Flags())
	return cmd
}
