package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

const envPrefix = "EDQM2FHIR_"

// envName maps a flag name to its environment variable, e.g.
// vs-designations -> EDQM2FHIR_VS_DESIGNATIONS.
func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// bindEnv fills each named flag that was not given on the command line from
// its EDQM2FHIR_* variable. Slice flags take a comma-separated list.
func bindEnv(cmd *cobra.Command, flags ...string) error {
	for _, name := range flags {
		fl := cmd.Flags().Lookup(name)
		if fl == nil || fl.Changed {
			continue
		}
		env := envName(name)
		v := strings.TrimSpace(os.Getenv(env))
		if v == "" {
			continue
		}
		if err := cmd.Flags().Set(name, v); err != nil {
			return &domain.OpError{
				Op:   "cli.env",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("%s: %v: %w", env, err, domain.ErrInvalidConfig),
			}
		}
	}
	return nil
}
