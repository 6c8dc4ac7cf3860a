package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/logger"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/usecase"
)

func verifyCmd(g *globalFlags) *cobra.Command {
	f := &serviceFlags{}
	var designations []string

	c := &cobra.Command{
		Use:   "verify",
		Short: "Check the configured classes and languages against the service (writes nothing)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindEnv(cmd, "config", "designation"); err != nil {
				return err
			}
			defer g.setupLogging("verify")()
			log := logger.L()

			p, err := loadProject(f.configPath)
			if err != nil {
				return err
			}
			if err := applyConvertOverrides(&p.cfg, &convertFlags{designations: designations}, false); err != nil {
				return err
			}

			client, err := newServiceClient(p, *f, log)
			if err != nil {
				return err
			}

			res, err := usecase.NewVerifyConfig(client).Execute(cmd.Context(), p.cfg)
			if err != nil {
				return err
			}
			printVerify(cmd.OutOrStdout(), p.cfgPath, p.cfg.ClassCodes(), res)
			return nil
		},
	}

	addServiceFlags(c, f)
	c.Flags().StringSliceVarP(&designations, "designation", "d", nil, `Designation languages, or "all" (or EDQM2FHIR_DESIGNATION; overrides generation.designations)`)
	return c
}

func printVerify(w io.Writer, cfgPath string, classes []string, res usecase.VerifyResult) {
	t := defaultTheme()
	fmt.Fprintln(w, t.ok.Render("OK")+" "+cfgPath)
	fmt.Fprintf(w, "  classes:   %s (%d known remotely)\n", strings.Join(classes, ", "), len(res.Classes))
	fmt.Fprintf(w, "  languages: %s\n", strings.Join(res.Languages, ", "))
}
