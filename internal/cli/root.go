package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/buildinfo"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

type globalFlags struct {
	debug   bool
	logFile string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "edqm2fhir",
		Short:         "Convert the EDQM Standard Terms into FHIR R4 CodeSystems and ValueSets",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to .edqm2fhir/logs/edqm2fhir.log")
	cmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "write the log to this file instead")

	cmd.AddCommand(
		convertCmd(g),
		verifyCmd(g),
		initCmd(g),
		versionCmd(),
	)
	return cmd
}

// setupLogging points the global logger at the log file. Logging problems
// never abort a command.
func (g *globalFlags) setupLogging(command string) func() {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)

	cleanup, err := logger.Setup(logger.Config{
		Root:  wd,
		Debug: g.debug,
		File:  g.logFile,
		Attrs: []any{"cmd", command, "version", buildinfo.Version},
	})
	if err != nil || cleanup == nil {
		return func() {}
	}
	return func() { _ = cleanup() }
}
