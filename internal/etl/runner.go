// Package etl runs one extract, transform and load cycle.
package etl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fashionetl/internal/logger"
	"fashionetl/internal/model"
	"fashionetl/internal/observability"
	"fashionetl/internal/report"
	"fashionetl/internal/sink"
	"fashionetl/internal/transform"
)

var (
	ErrNoData          = errors.New("extraction returned no products")
	ErrTransformFailed = errors.New("transform failed")
	ErrNoValidRows     = errors.New("transform left no valid rows")
)

type Extractor interface {
	Scrape(ctx context.Context) ([]model.RawProduct, error)
}

type Transformer interface {
	Run(in *transform.Table) (*transform.Result, error)
}

type Loader interface {
	Load(ctx context.Context, products []model.Product) sink.Status
}

type ReportSaver interface {
	Save(ctx context.Context, r report.Report) error
}

type Runner struct {
	Extractor   Extractor
	Transformer Transformer
	Loader      Loader
	// Reports is optional.
	Reports ReportSaver
	// DryRun stops after the transform.
	DryRun bool
	Log    logger.Logger
	Now    func() time.Time
}

// Run executes the pipeline once. Any failure before the load step skips
// every sink. The returned report is filled in as far as the run got.
func (r *Runner) Run(ctx context.Context) (report.Report, error) {
	rep := report.Report{
		RunID:     uuid.NewString(),
		StartedAt: r.now(),
		Sinks:     map[string]bool{},
	}
	log := r.log().With(logger.String("run_id", rep.RunID))

	err := r.run(ctx, log, &rep)
	rep.FinishedAt = r.now()
	if err != nil {
		rep.Error = err.Error()
		log.Error("ETL run failed", logger.Err(err))
	} else {
		log.Info("ETL run finished",
			logger.Int("extracted", rep.Extracted),
			logger.Int("transformed", rep.Transformed),
			logger.Any("sinks", rep.Sinks),
			logger.Duration("elapsed", rep.FinishedAt.Sub(rep.StartedAt)),
		)
	}

	if r.Reports != nil {
		if saveErr := r.Reports.Save(ctx, rep); saveErr != nil {
			log.Warn("Failed to save run report", logger.Err(saveErr))
		}
	}
	return rep, err
}

func (r *Runner) run(ctx context.Context, log logger.Logger, rep *report.Report) error {
	log.Info("Extracting products")
	raw, err := r.Extractor.Scrape(ctx)
	if err != nil {
		return err
	}
	rep.Extracted = len(raw)
	if len(raw) == 0 {
		return ErrNoData
	}
	log.Info("Extraction finished", logger.Int("products", len(raw)))

	res, err := r.Transformer.Run(transform.FromRaw(raw))
	if err != nil {
		return errors.Join(ErrTransformFailed, err)
	}
	rep.Dropped = res.Dropped
	rep.Transformed = res.Table.Len()
	observability.RowsDropped.WithLabelValues("placeholder").Add(float64(res.Dropped.Placeholder))
	observability.RowsDropped.WithLabelValues("incomplete").Add(float64(res.Dropped.Incomplete))
	observability.RowsDropped.WithLabelValues("duplicate").Add(float64(res.Dropped.Duplicate))
	observability.RowsTransformed.Add(float64(rep.Transformed))
	if rep.Transformed == 0 {
		return ErrNoValidRows
	}

	products, err := transform.ToProducts(res.Table)
	if err != nil {
		return errors.Join(ErrTransformFailed, err)
	}

	if r.DryRun {
		log.Info("Dry run, skipping sinks", logger.Int("rows", len(products)))
		return nil
	}

	status := r.Loader.Load(ctx, products)
	for name, ok := range status {
		rep.Sinks[name] = ok
	}
	return nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) log() logger.Logger {
	if r.Log != nil {
		return r.Log
	}
	return logger.NewNop()
}
