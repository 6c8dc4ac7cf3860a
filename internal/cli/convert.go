package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/config"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/logger"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/metrics"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/resourcestore"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/xlsxreport"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/usecase"
)

type convertFlags struct {
	service serviceFlags

	designations   []string
	output         string
	vsDesignations bool

	conceptsFile string
	saveConcepts string
	metricsFile  string
	xlsx         string
	format       string
}

func convertCmd(g *globalFlags) *cobra.Command {
	f := &convertFlags{}

	c := &cobra.Command{
		Use:   "convert",
		Short: "Fetch the terminology and write the CodeSystem and ValueSet resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindEnv(cmd, "config", "designation", "output", "vs-designations"); err != nil {
				return err
			}
			defer g.setupLogging("convert")()
			log := logger.L()

			p, err := loadProject(f.service.configPath)
			if err != nil {
				return err
			}
			if err := applyConvertOverrides(&p.cfg, f, cmd.Flags().Changed("vs-designations")); err != nil {
				return err
			}
			if f.conceptsFile != "" && f.saveConcepts != "" {
				return fmt.Errorf("--concepts-file and --save-concepts cannot be combined")
			}

			client, err := newServiceClient(p, f.service, log)
			if err != nil {
				return err
			}

			store := resourcestore.NewJSONStore(p.root, p.cfg.Output)
			opts := []usecase.ConvertOption{usecase.WithLogger(log)}

			var reg *metrics.Registry
			if f.metricsFile != "" {
				reg = metrics.NewRegistry()
				opts = append(opts, usecase.WithRecorder(reg))
			}
			if f.xlsx != "" {
				opts = append(opts, usecase.WithReport(xlsxreport.NewWriter(absPath(f.xlsx))))
			}

			uc := usecase.NewConvertTerminology(
				client,
				conceptSource(client, f.conceptsFile, f.saveConcepts, log),
				store,
				opts...,
			)

			res, runErr := uc.Execute(cmd.Context(), p.cfg)

			if reg != nil {
				if err := reg.WriteTextfile(absPath(f.metricsFile), time.Now()); err != nil {
					log.Warn("writing metrics failed", "error", err)
					runErr = errors.Join(runErr, err)
				}
			}
			if runErr != nil {
				return runErr
			}

			return printConvert(cmd.OutOrStdout(), res, store.Dir(), f.format)
		},
	}

	addServiceFlags(c, &f.service)
	c.Flags().StringSliceVarP(&f.designations, "designation", "d", nil, `Designation languages, or "all" (or EDQM2FHIR_DESIGNATION; overrides generation.designations)`)
	c.Flags().StringVarP(&f.output, "output", "o", "", "Output directory (or EDQM2FHIR_OUTPUT; overrides output.directory)")
	c.Flags().BoolVar(&f.vsDesignations, "vs-designations", false, "Copy designations into the value sets (or EDQM2FHIR_VS_DESIGNATIONS)")
	c.Flags().StringVar(&f.conceptsFile, "concepts-file", "", "Read the full concept export from a saved file instead of the service")
	c.Flags().StringVar(&f.saveConcepts, "save-concepts", "", "Save the fetched full concept export to this file")
	c.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	c.Flags().StringVar(&f.xlsx, "xlsx", "", "Write a review workbook to this file")
	c.Flags().StringVar(&f.format, "format", "pretty", "Output format: pretty|json")
	return c
}

func addServiceFlags(c *cobra.Command, f *serviceFlags) {
	c.Flags().StringVarP(&f.configPath, "config", "c", "", "Configuration file (or EDQM2FHIR_CONFIG; autodetected if omitted)")
	c.Flags().StringVarP(&f.username, "username", "u", "", "EDQM account user name (or EDQM2FHIR_USERNAME)")
	c.Flags().StringVarP(&f.apiKey, "api-key", "k", "", "EDQM API key (or EDQM2FHIR_API_KEY)")
	c.Flags().StringVar(&f.secrets, "secrets", "", "Secrets file with username and api_key (default: secrets.local.yaml next to the config)")
}

// applyConvertOverrides applies command-line values over the loaded config.
func applyConvertOverrides(cfg *domain.Config, f *convertFlags, vsChanged bool) error {
	if len(f.designations) > 0 {
		langs, err := config.NormalizeDesignations(f.designations)
		if err != nil {
			return &domain.OpError{
				Op:   "cli.designations",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("--designation: %v: %w", err, domain.ErrInvalidConfig),
			}
		}
		cfg.Generation.Designations = langs
	}
	if o := strings.TrimSpace(f.output); o != "" {
		if abs, err := filepath.Abs(o); err == nil {
			o = abs
		}
		cfg.Output.Directory = o
	}
	if vsChanged {
		cfg.Generation.ValueSetDesignations = f.vsDesignations
	}
	return nil
}
