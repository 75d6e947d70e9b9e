package sink

import (
	"context"

	"fashionetl/internal/model"
)

// ProductWriter replaces the stored product table.
type ProductWriter interface {
	ReplaceAll(ctx context.Context, products []model.Product) error
}

// PostgresSink replaces the database table with the current run's rows.
type PostgresSink struct {
	Repo ProductWriter
}

func (s *PostgresSink) Name() string { return NameDB }

func (s *PostgresSink) Write(ctx context.Context, products []model.Product) error {
	return s.Repo.ReplaceAll(ctx, products)
}
