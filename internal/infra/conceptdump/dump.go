// Package conceptdump reads and writes saved full concept exports, so a run
// can be repeated without downloading the export again.
package conceptdump

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/resourcestore"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/stapi"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
)

// Reader serves concepts from a saved export file.
type Reader struct {
	path        string
	contentPath string
}

func NewReader(path, contentPath string) *Reader {
	return &Reader{path: path, contentPath: contentPath}
}

var _ ports.ConceptSource = (*Reader)(nil)

func (r *Reader) Concepts(ctx context.Context) ([]domain.RawConcept, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(r.path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{
			Op:   "conceptdump.read",
			Kind: kind,
			Path: r.path,
			Err:  err,
		}
	}

	concepts, err := stapi.DecodeConcepts(b, r.contentPath)
	if err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) {
			oe.Path = r.path
		}
		return nil, err
	}
	return concepts, nil
}

// Exporter returns the raw body of a full concept export.
type Exporter interface {
	Export(ctx context.Context) ([]byte, error)
	ContentPath() string
}

// Recorder fetches the export from the service and saves the raw body to a
// file before decoding it.
type Recorder struct {
	src  Exporter
	path string
	log  *slog.Logger
}

func NewRecorder(src Exporter, path string, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Recorder{src: src, path: path, log: log}
}

var _ ports.ConceptSource = (*Recorder)(nil)

func (r *Recorder) Concepts(ctx context.Context) ([]domain.RawConcept, error) {
	body, err := r.src.Export(ctx)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &domain.OpError{
				Op:   "conceptdump.mkdir",
				Kind: domain.KindExecution,
				Path: dir,
				Err:  err,
			}
		}
	}
	if err := resourcestore.WriteAtomic(r.path, body, 0o644); err != nil {
		return nil, err
	}
	r.log.Info("saved concept export", "path", r.path, "bytes", len(body))

	return stapi.DecodeConcepts(body, r.src.ContentPath())
}
