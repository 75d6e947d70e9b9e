package sink

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"fashionetl/internal/model"
)

const defaultSheet = "Sheet1"

// SheetSink writes the table to one sheet of an .xlsx workbook, header in
// row 1, starting at A1.
type SheetSink struct {
	Path  string
	Sheet string
}

func (s *SheetSink) Name() string { return NameSheet }

func (s *SheetSink) Write(_ context.Context, products []model.Product) error {
	sheet := s.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	header := make([]any, len(model.ProductColumns))
	for i, c := range model.ProductColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := p.Values()
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(s.Path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
