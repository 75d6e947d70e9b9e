package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionetl/internal/model"
	"fashionetl/internal/repository"
)

var products = []model.Product{
	{Title: "T-Shirt", PriceInRupiah: 415840, Rating: 4.5, Colors: 3, Size: "M", Gender: "Men", Timestamp: "2023-06-01 12:00:00"},
	{Title: "Pan\x00ts", PriceInRupiah: 480000, Rating: 3.8, Colors: 2, Size: "L", Gender: "Women", Timestamp: "2023-06-01 12:00:00"},
}

func newRepo(t *testing.T) (*repository.ProductRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &repository.ProductRepository{DB: db, Table: "fashion_products"}, mock
}

func TestReplaceAll(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "fashion_products"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE "fashion_products" ("Title" TEXT, "Price_in_rupiah" DOUBLE PRECISION, "Rating" DOUBLE PRECISION, "Colors" BIGINT`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "fashion_products"`)).
		WithArgs("T-Shirt", 415840.0, 4.5, int64(3), "M", "Men", "2023-06-01 12:00:00").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "fashion_products"`)).
		WithArgs("Pants", 480000.0, 3.8, int64(2), "L", "Women", "2023-06-01 12:00:00").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAll(context.Background(), products))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAll_RollsBackOnInsertError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), products)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert row 0")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAll_QuotesTableName(t *testing.T) {
	repo, mock := newRepo(t)
	repo.Table = `odd"name`

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "odd""name"`)).
		WillReturnError(errors.New("stop"))
	mock.ExpectRollback()

	require.Error(t, repo.ReplaceAll(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "fashion_products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
