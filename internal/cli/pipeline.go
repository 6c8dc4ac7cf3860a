package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/conceptdump"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/config"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/configfinder"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/credentials"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/httpclient"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/stapi"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
)

// serviceFlags are shared by every command that talks to the terminology service.
type serviceFlags struct {
	configPath string
	username   string
	apiKey     string
	secrets    string
}

type projectCtx struct {
	root    string
	cfgPath string
	cfg     domain.Config
}

// loadProject loads the configuration named by configFlag, or the nearest
// one above the working directory.
func loadProject(configFlag string) (*projectCtx, error) {
	path, err := resolveConfigPath(configFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewLoader().Load(path)
	if err != nil {
		return nil, err
	}

	return &projectCtx{
		root:    filepath.Dir(path),
		cfgPath: path,
		cfg:     cfg,
	}, nil
}

func resolveConfigPath(configFlag string) (string, error) {
	c := strings.TrimSpace(configFlag)
	if c != "" {
		abs, err := filepath.Abs(c)
		if err != nil {
			return "", fmt.Errorf("invalid config path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return configfinder.NewFinder().FindConfig(wd)
}

// newServiceClient resolves credentials and builds the signed terminology
// service client. The default secrets file next to the configuration is
// optional; an explicitly named one must exist.
func newServiceClient(p *projectCtx, f serviceFlags, log *slog.Logger) (*stapi.Client, error) {
	in := credentials.Input{
		Username:    f.username,
		APIKey:      f.apiKey,
		SecretsFile: filepath.Join(p.root, credentials.DefaultSecretsFile),
	}
	if s := strings.TrimSpace(f.secrets); s != "" {
		in.SecretsFile = s
		in.SecretsRequired = true
	}

	creds, err := credentials.NewResolver().Resolve(in)
	if err != nil {
		return nil, err
	}

	svc := p.cfg.Service
	signer, err := httpclient.NewSigner(creds.Username, creds.APIKey, svc.Host)
	if err != nil {
		return nil, err
	}
	exec := httpclient.NewExecutor(svc, signer)

	return stapi.New(exec, stapi.WithLogger(log)), nil
}

// conceptSource picks where the full export comes from: a saved dump, the
// service with a copy saved for later runs, or the service alone.
func conceptSource(client *stapi.Client, conceptsFile, saveConcepts string, log *slog.Logger) ports.ConceptSource {
	switch {
	case strings.TrimSpace(conceptsFile) != "":
		return conceptdump.NewReader(absPath(conceptsFile), client.ContentPath())
	case strings.TrimSpace(saveConcepts) != "":
		return conceptdump.NewRecorder(client, absPath(saveConcepts), log)
	default:
		return client
	}
}

// absPath anchors a command-line path at the working directory.
func absPath(p string) string {
	p = strings.TrimSpace(p)
	if filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
