package transform

import (
	"fmt"

	"fashionetl/internal/model"
)

// ToProducts reads a converted table into typed records.
func ToProducts(t *Table) ([]model.Product, error) {
	if t.Len() == 0 {
		return nil, nil
	}
	idx := make(map[string]int, len(Schema))
	for _, col := range Schema {
		i, err := t.index(col.Column)
		if err != nil {
			return nil, err
		}
		idx[col.Column] = i
	}

	products := make([]model.Product, 0, t.Len())
	for r, row := range t.rows {
		var p model.Product
		ok := true
		text := func(col string) string {
			s, isText := row[idx[col]].AsText()
			ok = ok && isText
			return s
		}
		num := func(col string) float64 {
			f, isFloat := row[idx[col]].AsFloat()
			ok = ok && isFloat
			return f
		}
		p.Title = text(model.ColTitle)
		p.PriceInRupiah = num(model.ColPriceInRupiah)
		p.Rating = num(model.ColRating)
		colors, isInt := row[idx[model.ColColors]].AsInt()
		ok = ok && isInt
		p.Colors = int(colors)
		p.Size = text(model.ColSize)
		p.Gender = text(model.ColGender)
		p.Timestamp = text(model.ColTimestamp)
		if !ok {
			return nil, fmt.Errorf("row %d does not match the canonical schema", r)
		}
		products = append(products, p)
	}
	return products, nil
}
