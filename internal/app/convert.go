// internal/app/convert.go
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vkbridge/internal/bridge"
	"vkbridge/internal/engine"
	"vkbridge/internal/params"
)

func (a *app) newConvertCmd() *cobra.Command {
	var (
		pf     paramFlags
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "convert <export.zip>",
		Short: "Stage the KarstNSim input files without running the simulation",
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
			in, err := bridge.Prepare(proj, true, a.log)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("%w: %v", errWrite, err)
			}
			files, err := engine.Stage(outDir, in)
			if err != nil {
				return fmt.Errorf("%w: %v", errWrite, err)
			}
			a.log.Info("staged engine inputs",
				zap.String("dir", outDir),
				zap.Int("files", len(files)))
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to stage the input files into")
	pf.register(cmd.Flags())
	return cmd
}
