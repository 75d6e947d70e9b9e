package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jszwec/csvutil"

	"fashionetl/internal/model"
)

// CSVSink writes a header plus one line per product, replacing the file.
type CSVSink struct {
	Path string
}

func (s *CSVSink) Name() string { return NameCSV }

func (s *CSVSink) Write(_ context.Context, products []model.Product) error {
	file, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	w := csv.NewWriter(file)
	if err := csvutil.NewEncoder(w).Encode(products); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}
