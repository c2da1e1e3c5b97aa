// internal/app/run.go
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vkbridge/internal/bridge"
	"vkbridge/internal/params"
	"vkbridge/internal/writers"
)

func (a *app) newRunCmd() *cobra.Command {
	var (
		pf     paramFlags
		ef     engineFlags
		output string
		debug  bool
	)
	cmd := &cobra.Command{
		Use:   "run <export.zip>",
		Short: "Convert an export, run the simulation and write the import file",
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
			eng, err := ef.build(cmd.Flags(), env, a.log)
			if err != nil {
				return err
			}

			res, err := bridge.Run(cmd.Context(), proj, eng, debug, a.log)
			if err != nil {
				return err
			}
			if debug {
				files, err := writers.WriteDebug(".", res.Input, res.Network)
				if err != nil {
					return fmt.Errorf("%w: %v", errWrite, err)
				}
				a.log.Info("wrote debug dumps", zap.Int("files", len(files)))
			}
			if err := writeRunInfo(output, res); err != nil {
				return err
			}
			a.log.Info("results written", zap.String("path", output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "karst_network.txt", "output file")
	cmd.Flags().BoolVar(&debug, "debug", false, "dump the staged inputs as debug_*.txt files")
	pf.register(cmd.Flags())
	ef.register(cmd.Flags())
	return cmd
}

func writeRunInfo(path string, res *bridge.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", errWrite, err)
	}
	if err := writers.WriteRunInfo(f, res.Info, res.Network); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %v", errWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", errWrite, err)
	}
	return nil
}
