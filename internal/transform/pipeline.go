// Package transform normalizes scraped product records into typed rows.
//
// A run cleans the Price, Rating, Colors, Size and Gender columns, drops
// invalid and duplicate rows, removes the raw Price text and finally enforces
// the canonical column types. Cells that cannot be parsed become a missing
// marker instead of failing the run; only structural problems such as an
// absent column abort it.
package transform

import (
	"errors"
	"fmt"

	"fashionetl/internal/logger"
	"fashionetl/internal/model"
)

// Stage names, in execution order.
const (
	StageCleanPrice    = "clean_price"
	StageCleanRating   = "clean_rating"
	StageCleanColors   = "clean_colors"
	StageCleanSize     = "clean_size"
	StageCleanGender   = "clean_gender"
	StageRemoveInvalid = "remove_invalid"
	StageDropPrice     = "drop_price"
	StageConvertTypes  = "convert_types"
)

// Options holds the values a run depends on.
type Options struct {
	// Rate converts the USD price into rupiah.
	Rate             float64
	SizeLabel        string
	GenderLabel      string
	PlaceholderTitle string
}

func DefaultOptions() Options {
	return Options{
		Rate:             16000,
		SizeLabel:        "Size:",
		GenderLabel:      "Gender:",
		PlaceholderTitle: "Unknown Product",
	}
}

// Result is the output of a successful run.
type Result struct {
	Table   *Table
	Dropped FilterStats
}

type Pipeline struct {
	opts Options
	log  logger.Logger

	// beforeStage, when set, runs ahead of every stage. Tests use it to
	// inject failures.
	beforeStage func(stage string, t *Table) error
}

func New(opts Options, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.NewNop()
	}
	return &Pipeline{opts: opts, log: log}
}

type stage struct {
	name string
	fn   func(*Table) (*Table, error)
}

func (p *Pipeline) stages(stats *FilterStats) []stage {
	return []stage{
		{StageCleanPrice, func(t *Table) (*Table, error) { return CleanPrice(t, p.opts.Rate) }},
		{StageCleanRating, CleanRating},
		{StageCleanColors, CleanColors},
		{StageCleanSize, func(t *Table) (*Table, error) { return CleanSize(t, p.opts.SizeLabel) }},
		{StageCleanGender, func(t *Table) (*Table, error) { return CleanGender(t, p.opts.GenderLabel) }},
		{StageRemoveInvalid, func(t *Table) (*Table, error) {
			out, s, err := RemoveInvalid(t, p.opts.PlaceholderTitle)
			*stats = s
			return out, err
		}},
		{StageDropPrice, func(t *Table) (*Table, error) { return t.DropColumn(model.ColPrice) }},
		{StageConvertTypes, ConvertTypes},
	}
}

// Run executes every stage in order. It returns ErrEmptyInput for a nil or
// zero-row table and a *StageError when a stage fails. A run that filters
// out every row succeeds with an empty table.
func (p *Pipeline) Run(in *Table) (*Result, error) {
	if in.Len() == 0 {
		return nil, ErrEmptyInput
	}
	p.log.Info("Starting transform", logger.Int("rows", in.Len()))

	var stats FilterStats
	t := in
	for _, s := range p.stages(&stats) {
		out, err := p.runStage(s, t)
		if err != nil {
			return nil, &StageError{Stage: s.name, Err: err}
		}
		p.log.Debug("Stage finished", logger.String("stage", s.name), logger.Int("rows", out.Len()))
		t = out
	}

	p.log.Info("Transform finished",
		logger.Int("rows", t.Len()),
		logger.Int("dropped_placeholder", stats.Placeholder),
		logger.Int("dropped_incomplete", stats.Incomplete),
		logger.Int("dropped_duplicate", stats.Duplicate),
	)
	return &Result{Table: t, Dropped: stats}, nil
}

func (p *Pipeline) runStage(s stage, t *Table) (out *Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if p.beforeStage != nil {
		if err := p.beforeStage(s.name, t); err != nil {
			return nil, err
		}
	}
	return s.fn(t)
}

// Transform runs the pipeline and collapses every failure, including empty
// input, into a nil table. Use Run to tell the cases apart.
func (p *Pipeline) Transform(in *Table) *Table {
	res, err := p.Run(in)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) {
			p.log.Warn("Empty input table, nothing to transform")
		} else {
			p.log.Error("Transform failed", logger.Err(err))
		}
		return nil
	}
	return res.Table
}
