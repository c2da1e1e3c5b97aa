// internal/app/root.go
package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"vkbridge/internal/logging"
	"vkbridge/internal/params"
	"vkbridge/internal/version"
	"vkbridge/internal/vkzip"
)

func (a *app) newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "vkbridge",
		Short: "Bridge Visual KARSYS project exports to the KarstNSim simulator",
		Long: `vkbridge unpacks a Visual KARSYS project export, converts it to the
input set of the KarstNSim conduit network simulator, runs the simulation
and writes the resulting network in the Visual KARSYS import format.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(a.verbose)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(
		a.newRunCmd(),
		a.newConvertCmd(),
		a.newInspectCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vkbridge version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "vkbridge version %s\n", version.Version)
			return err
		},
	}
}

// readProject opens and decodes an export, then layers the settings file
// and the changed CLI flags over the archive's own configuration.
func (a *app) readProject(ctx context.Context, path string, pf *paramFlags, fs *pflag.FlagSet, env params.Env) (*vkzip.Project, error) {
	zr, err := vkzip.OpenArchive(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	proj, err := vkzip.Read(ctx, zr, a.log)
	if err != nil {
		return nil, err
	}
	if err := pf.apply(fs, env, &proj.Params); err != nil {
		return nil, err
	}
	return proj, nil
}
