package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/fhir"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/usecase/catalog"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/usecase/concepts"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/usecase/partition"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/usecase/verify"
)

// Stage names reported to the run recorder.
const (
	StageClasses   = "fetch_classes"
	StageLanguages = "fetch_languages"
	StageVerify    = "verify"
	StageCatalog   = "catalog"
	StageConcepts  = "fetch_concepts"
	StageTransform = "transform"
	StagePartition = "partition"
	StageWrite     = "write"
	StageReport    = "report"
)

type ConvertTerminology struct {
	service  ports.TerminologyService
	source   ports.ConceptSource
	store    ports.ResourceStore
	report   ports.ReportWriter
	recorder ports.RunRecorder
	log      *slog.Logger
	now      func() time.Time
	newRunID func() string
}

type ConvertOption func(*ConvertTerminology)

func WithNow(now func() time.Time) ConvertOption {
	return func(uc *ConvertTerminology) {
		if now != nil {
			uc.now = now
		}
	}
}

func WithRunID(gen func() string) ConvertOption {
	return func(uc *ConvertTerminology) {
		if gen != nil {
			uc.newRunID = gen
		}
	}
}

func WithRecorder(r ports.RunRecorder) ConvertOption {
	return func(uc *ConvertTerminology) {
		if r != nil {
			uc.recorder = r
		}
	}
}

// WithReport enables the review report, written after the resources.
func WithReport(w ports.ReportWriter) ConvertOption {
	return func(uc *ConvertTerminology) {
		uc.report = w
	}
}

func WithLogger(l *slog.Logger) ConvertOption {
	return func(uc *ConvertTerminology) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewConvertTerminology(svc ports.TerminologyService, src ports.ConceptSource, store ports.ResourceStore, opts ...ConvertOption) *ConvertTerminology {
	uc := &ConvertTerminology{
		service:  svc,
		source:   src,
		store:    store,
		recorder: nopRecorder{},
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type PartitionSummary struct {
	Name      string
	ClassCode string
	ID        string
	Members   int
}

type ConvertResult struct {
	RunID      string
	Generation domain.Generation
	Languages  []string
	Classes    int
	Concepts   int
	Partitions []PartitionSummary
	Warnings   []domain.Warning
	Files      []string
	ReportPath string
	StartedAt  time.Time
	EndedAt    time.Time
}

// generated holds every resource of a run before anything is written.
type generated struct {
	catalog  domain.ClassificationResource
	full     domain.FullConceptResource
	parts    []domain.PartitionedResource
	warnings []domain.Warning
	langs    []string
}

// Execute runs the pipeline: catalogs are fetched and verified, then the
// classification, full concept and partition resources are built in memory.
// Files are written only once every stage has succeeded.
func (uc *ConvertTerminology) Execute(ctx context.Context, cfg domain.Config) (ConvertResult, error) {
	gen := domain.Generation{RunID: uc.newRunID(), Date: uc.now()}
	log := uc.log.With("run_id", gen.RunID)

	res := ConvertResult{
		RunID:      gen.RunID,
		Generation: gen,
		StartedAt:  gen.Date,
	}

	log.Info("conversion started", "config", cfg.Source, "version", gen.Version())

	g, err := uc.build(ctx, cfg, gen, log)
	if err != nil {
		log.Error("conversion aborted", "error", err)
		return res, err
	}

	res.Languages = g.langs
	res.Classes = g.catalog.Count()
	res.Concepts = g.full.Count()
	res.Warnings = g.warnings
	for _, p := range g.parts {
		res.Partitions = append(res.Partitions, PartitionSummary{
			Name:      p.DefinitionName,
			ClassCode: p.ClassCode,
			ID:        p.Meta.ID,
			Members:   len(p.Members),
		})
	}

	err = uc.stage(StageWrite, func() error {
		files, err := uc.write(gen.RunID, g)
		res.Files = files
		return err
	})
	if err != nil {
		log.Error("writing resources failed", "error", err, "written", len(res.Files))
		return res, err
	}

	if uc.report != nil {
		err = uc.stage(StageReport, func() error {
			return uc.report.WriteReport(g.full, g.parts, g.warnings)
		})
		if err != nil {
			log.Error("writing report failed", "error", err)
			return res, err
		}
	}

	res.EndedAt = uc.now()
	log.Info("conversion finished",
		"files", len(res.Files),
		"concepts", res.Concepts,
		"warnings", len(res.Warnings),
		"duration_ms", res.EndedAt.Sub(res.StartedAt).Milliseconds(),
	)
	return res, nil
}

func (uc *ConvertTerminology) build(ctx context.Context, cfg domain.Config, gen domain.Generation, log *slog.Logger) (generated, error) {
	var g generated

	classes, languages, err := fetchCatalogs(ctx, uc.service, uc.stage)
	if err != nil {
		return g, err
	}

	var resolved verify.Resolved
	err = uc.stage(StageVerify, func() error {
		var err error
		resolved, err = verify.Check(cfg, classes, languages)
		return err
	})
	if err != nil {
		return g, err
	}
	g.langs = resolved.Languages
	log.Debug("configuration verified", "classes", len(classes), "languages", g.langs)

	var lookup domain.ClassLookup
	err = uc.stage(StageCatalog, func() error {
		var err error
		g.catalog, lookup, err = catalog.Build(cfg, classes, gen)
		return err
	})
	if err != nil {
		return g, err
	}

	var raws []domain.RawConcept
	err = uc.stage(StageConcepts, func() error {
		var err error
		raws, err = uc.source.Concepts(ctx)
		if err == nil && len(raws) == 0 {
			err = emptyResult("concepts")
		}
		return err
	})
	if err != nil {
		return g, err
	}
	log.Debug("concepts loaded", "count", len(raws))

	err = uc.stage(StageTransform, func() error {
		var err error
		g.full, g.warnings, err = concepts.New(lookup, g.langs, log).Build(cfg, raws, gen)
		return err
	})
	if err != nil {
		return g, err
	}
	uc.recorder.ObserveConcepts(g.full.Count())
	uc.recorder.ObserveWarnings(len(g.warnings))

	err = uc.stage(StagePartition, func() error {
		var err error
		g.parts, err = partition.Build(cfg, g.full, gen)
		return err
	})
	if err != nil {
		return g, err
	}
	for _, p := range g.parts {
		uc.recorder.ObservePartition(p.DefinitionName, len(p.Members))
		log.Debug("value set built", "name", p.DefinitionName, "class", p.ClassCode, "members", len(p.Members))
	}
	return g, nil
}

// write persists the classification, the full concept resource and the
// partitions, in that order. Paths written before a failure are returned.
func (uc *ConvertTerminology) write(runID string, g generated) ([]string, error) {
	resources := make([]fhir.Resource, 0, 2+len(g.parts))
	resources = append(resources, fhir.FromClassification(g.catalog), fhir.FromConceptResource(g.full))
	for _, p := range g.parts {
		resources = append(resources, fhir.FromPartition(p))
	}

	files := make([]string, 0, len(resources))
	for _, r := range resources {
		path, err := uc.store.SaveResource(runID, r)
		if err != nil {
			return files, err
		}
		uc.recorder.ObserveResourceWritten(string(r.Kind()))
		files = append(files, path)
	}
	return files, nil
}

func (uc *ConvertTerminology) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	uc.recorder.ObserveStage(name, time.Since(start), err)
	return err
}

type stageFunc func(name string, fn func() error) error

// fetchCatalogs reads the class and language catalogs. An empty catalog is
// a failed precondition.
func fetchCatalogs(ctx context.Context, svc ports.TerminologyService, stage stageFunc) ([]domain.ConceptClass, []domain.Language, error) {
	var classes []domain.ConceptClass
	err := stage(StageClasses, func() error {
		var err error
		classes, err = svc.ConceptClasses(ctx)
		if err == nil && len(classes) == 0 {
			err = emptyResult("concept classes")
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	var languages []domain.Language
	err = stage(StageLanguages, func() error {
		var err error
		languages, err = svc.Languages(ctx)
		if err == nil && len(languages) == 0 {
			err = emptyResult("languages")
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return classes, languages, nil
}

func emptyResult(what string) error {
	return &domain.OpError{
		Op:   "convert.fetch",
		Kind: domain.KindRemote,
		Err:  fmt.Errorf("%s: %w", what, domain.ErrEmptyResult),
	}
}

type nopRecorder struct{}

var _ ports.RunRecorder = nopRecorder{}

func (nopRecorder) ObserveStage(string, time.Duration, error) {}
func (nopRecorder) ObserveConcepts(int) {}
func (nopRecorder) ObserveWarnings(int) {}
func (nopRecorder) ObservePartition(string, int) {}
func (nopRecorder) ObserveResourceWritten(string) {}
