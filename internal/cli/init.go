package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/fsworkspace"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/logger"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/usecase"
)

func initCmd(g *globalFlags) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter edqm2fhir.yaml and secrets file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("invalid directory: %w", err)
			}
			if err := os.MkdirAll(root, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", root, err)
			}

			defer g.setupLogging("init")()

			path, err := usecase.NewInitWorkspace(fsworkspace.NewInitializer()).Execute(root, force)
			if err != nil {
				return err
			}
			logger.L().Info("workspace initialized", "root", root, "force", force)

			fmt.Fprintln(cmd.OutOrStdout(), "Wrote "+path)
			fmt.Fprintln(cmd.OutOrStdout(), "Next: fill in secrets.local.yaml, then run `edqm2fhir verify`.")
			return nil
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	return c
}
