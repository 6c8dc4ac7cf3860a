package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
)

// Loader reads edqm2fhir.yaml files from the filesystem.
type Loader struct{}

var _ ports.ConfigLoader = (*Loader)(nil)

func NewLoader() *Loader { return &Loader{} }

func (l *Loader) Load(path string) (domain.Config, error) {
	return Load(path)
}

// Load reads, decodes and validates the configuration at path.
func Load(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.Config{}, &domain.OpError{
			Op:   "config.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}
	return Parse(path, b)
}

// Parse decodes and validates configuration bytes; path is only used in errors.
func Parse(path string, b []byte) (domain.Config, error) {
	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.Config{}, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return MapConfig(path, dto)
}
