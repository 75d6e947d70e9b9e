// Package sink persists final product records to the configured targets.
package sink

import (
	"context"

	"fashionetl/internal/logger"
	"fashionetl/internal/model"
	"fashionetl/internal/observability"
)

// Status keys reported for every run.
const (
	NameCSV   = "csv"
	NameDB    = "db"
	NameSheet = "sheet"
)

// Sink is one persistence target.
type Sink interface {
	Name() string
	Write(ctx context.Context, products []model.Product) error
}

// Status maps sink name to whether its write succeeded.
type Status map[string]bool

// OK reports whether every entry succeeded.
func (s Status) OK() bool {
	for _, ok := range s {
		if !ok {
			return false
		}
	}
	return len(s) > 0
}

// Loader writes to each enabled sink independently.
type Loader struct {
	Sinks []Sink
	Log   logger.Logger
}

// Load writes products to every sink. A failing sink is logged and reported
// as false; it never stops the others. Sinks that are known but not enabled
// are reported as false too.
func (l *Loader) Load(ctx context.Context, products []model.Product) Status {
	log := l.Log
	if log == nil {
		log = logger.NewNop()
	}

	status := Status{NameCSV: false, NameDB: false, NameSheet: false}
	if len(products) == 0 {
		log.Warn("No products to save")
		return status
	}

	log.Info("Saving products", logger.Int("rows", len(products)), logger.Int("sinks", len(l.Sinks)))
	for _, s := range l.Sinks {
		err := s.Write(ctx, products)
		status[s.Name()] = err == nil
		if err != nil {
			observability.SinkWrites.WithLabelValues(s.Name(), "error").Inc()
			log.Error("Sink write failed", logger.String("sink", s.Name()), logger.Err(err))
			continue
		}
		observability.SinkWrites.WithLabelValues(s.Name(), "ok").Inc()
		log.Info("Sink write succeeded", logger.String("sink", s.Name()))
	}
	return status
}
