// Package configfinder locates the configuration file by searching upward
// from a directory.
package configfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
)

// DefaultNames are tried in order in every directory.
var DefaultNames = []string{"edqm2fhir.yaml", "metadata.yml"}

type Finder struct {
	Names []string
}

func NewFinder() *Finder {
	return &Finder{Names: append([]string(nil), DefaultNames...)}
}

var _ ports.ConfigLocator = (*Finder)(nil)

// FindConfig returns the path of the nearest configuration file at or above
// startDir.
func (f *Finder) FindConfig(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "configfinder.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "configfinder.find",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If user passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		for _, name := range f.Names {
			p := filepath.Join(cur, name)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p, nil
			}
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "configfinder.find",
				Kind: domain.KindNotFound,
				Path: abs,
				Err:  fmt.Errorf("none of %s: %w", strings.Join(f.Names, ", "), domain.ErrNotFound),
			}
		}
		cur = parent
	}
}
