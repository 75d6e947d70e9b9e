package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"fashionetl/internal/model"
)

var columnTypes = map[string]string{
	model.ColTitle:         "TEXT",
	model.ColPriceInRupiah: "DOUBLE PRECISION",
	model.ColRating:        "DOUBLE PRECISION",
	model.ColColors:        "BIGINT",
	model.ColSize:          "TEXT",
	model.ColGender:        "TEXT",
	model.ColTimestamp:     "TEXT",
}

type ProductRepository struct {
	DB    *sql.DB
	Table string
}

// ReplaceAll drops and recreates the table, then inserts every product, all
// inside one transaction.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []model.Product) error {
	table := pgx.Identifier{r.Table}.Sanitize()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(table)); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	insert := insertSQL(table)
	for i, p := range products {
		if _, err := tx.ExecContext(ctx, insert, sanitizeRow(p)...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of rows currently stored.
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+pgx.Identifier{r.Table}.Sanitize()).Scan(&n)
	return n, err
}

func createTableSQL(table string) string {
	defs := make([]string, len(model.ProductColumns))
	for i, c := range model.ProductColumns {
		defs[i] = pgx.Identifier{c}.Sanitize() + " " + columnTypes[c]
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))
}

func insertSQL(table string) string {
	cols := make([]string, len(model.ProductColumns))
	params := make([]string, len(model.ProductColumns))
	for i, c := range model.ProductColumns {
		cols[i] = pgx.Identifier{c}.Sanitize()
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), strings.Join(params, ", "))
}

// sanitizeRow strips NUL bytes and invalid UTF-8, which Postgres rejects in
// text columns.
func sanitizeRow(p model.Product) []any {
	row := p.Values()
	for i, v := range row {
		if s, ok := v.(string); ok {
			row[i] = strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", ""), "")
		}
	}
	return row
}
