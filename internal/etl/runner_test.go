package etl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionetl/internal/etl"
	"fashionetl/internal/model"
	"fashionetl/internal/report"
	"fashionetl/internal/sink"
	"fashionetl/internal/transform"
)

type fakeExtractor struct {
	products []model.RawProduct
	err      error
}

func (f *fakeExtractor) Scrape(context.Context) ([]model.RawProduct, error) {
	return f.products, f.err
}

type fakeLoader struct {
	calls int
	got   []model.Product
}

func (f *fakeLoader) Load(_ context.Context, p []model.Product) sink.Status {
	f.calls++
	f.got = p
	return sink.Status{sink.NameCSV: true, sink.NameDB: false, sink.NameSheet: true}
}

type fakeReports struct {
	saved []report.Report
}

func (f *fakeReports) Save(_ context.Context, r report.Report) error {
	f.saved = append(f.saved, r)
	return nil
}

type failingTransformer struct{}

func (failingTransformer) Run(*transform.Table) (*transform.Result, error) {
	return nil, &transform.StageError{Stage: transform.StageCleanPrice, Err: errors.New("boom")}
}

const ts = "2023-06-01 12:00:00"

var raw = []model.RawProduct{
	{Title: "T-Shirt", Price: "$25.99", Rating: "Rating: 4.5 / 5", Colors: "Colors: 3 Colors", Size: "Size: M", Gender: "Gender: Men", Timestamp: ts},
	{Title: "Unknown Product", Price: "Price Unavailable", Rating: "Invalid Rating", Colors: "3 Colors", Size: "Size: M", Gender: "Gender: Unisex", Timestamp: ts},
	{Title: "Pants", Price: "$30", Rating: "Rating: 3.8 / 5", Colors: "Colors: 2 Colors", Size: "Size: L", Gender: "Gender: Women", Timestamp: ts},
	{Title: "Pants", Price: "$30", Rating: "Rating: 3.8 / 5", Colors: "Colors: 2 Colors", Size: "Size: L", Gender: "Gender: Women", Timestamp: ts},
}

func newRunner(ex etl.Extractor) (*etl.Runner, *fakeLoader, *fakeReports) {
	loader := &fakeLoader{}
	reports := &fakeReports{}
	return &etl.Runner{
		Extractor:   ex,
		Transformer: transform.New(transform.DefaultOptions(), nil),
		Loader:      loader,
		Reports:     reports,
	}, loader, reports
}

func TestRunner_Run(t *testing.T) {
	r, loader, reports := newRunner(&fakeExtractor{products: raw})

	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, loader.got, 2)
	assert.Equal(t, "T-Shirt", loader.got[0].Title)
	assert.InDelta(t, 415840.0, loader.got[0].PriceInRupiah, 1e-6)
	assert.Equal(t, "Pants", loader.got[1].Title)

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, 4, rep.Extracted)
	assert.Equal(t, 2, rep.Transformed)
	assert.Equal(t, transform.FilterStats{Placeholder: 1, Duplicate: 1}, rep.Dropped)
	assert.Equal(t, map[string]bool{"csv": true, "db": false, "sheet": true}, rep.Sinks)
	assert.Empty(t, rep.Error)
	require.Len(t, reports.saved, 1)
	assert.Equal(t, rep.RunID, reports.saved[0].RunID)
}

func TestRunner_FailuresSkipSinks(t *testing.T) {
	allInvalid := []model.RawProduct{raw[1]}

	tests := []struct {
		name    string
		ex      *fakeExtractor
		tr      etl.Transformer
		wantErr error
	}{
		{"no data", &fakeExtractor{}, nil, etl.ErrNoData},
		{"extract error", &fakeExtractor{err: context.Canceled}, nil, context.Canceled},
		{"no valid rows", &fakeExtractor{products: allInvalid}, nil, etl.ErrNoValidRows},
		{"stage failure", &fakeExtractor{products: raw}, failingTransformer{}, etl.ErrTransformFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, loader, reports := newRunner(tt.ex)
			if tt.tr != nil {
				r.Transformer = tt.tr
			}

			rep, err := r.Run(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, loader.calls)
			assert.Empty(t, rep.Sinks)
			require.Len(t, reports.saved, 1)
			assert.NotEmpty(t, reports.saved[0].Error)
		})
	}
}

func TestRunner_StageErrorIsInspectable(t *testing.T) {
	r, _, _ := newRunner(&fakeExtractor{products: raw})
	r.Transformer = failingTransformer{}

	_, err := r.Run(context.Background())
	var se *transform.StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, transform.StageCleanPrice, se.Stage)
}

func TestRunner_DryRun(t *testing.T) {
	r, loader, _ := newRunner(&fakeExtractor{products: raw})
	r.DryRun = true

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, loader.calls)
	assert.Equal(t, 2, rep.Transformed)
}
