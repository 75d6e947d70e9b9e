package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fashionetl/internal/model"
)

var (
	rePrice  = regexp.MustCompile(`\$(\d+\.?\d*)`)
	reNumber = regexp.MustCompile(`\d*\.?\d+`)
	reInt    = regexp.MustCompile(`\d+`)
)

// mapColumn applies fn to every cell of an existing column.
func mapColumn(t *Table, column string, fn func(Value) Value) (*Table, error) {
	values, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		values[i] = fn(v)
	}
	return t.WithColumn(column, values)
}

// CleanPrice derives Price_in_rupiah from the "$<amount>" text in Price. The
// Price column itself is kept; unpriced rows get the missing marker.
func CleanPrice(t *Table, rate float64) (*Table, error) {
	prices, err := t.Column(model.ColPrice)
	if err != nil {
		return nil, err
	}
	derived := make([]Value, len(prices))
	for i, v := range prices {
		derived[i] = MissingValue()
		s, ok := v.AsText()
		if !ok {
			continue
		}
		m := rePrice.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		usd, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		derived[i] = Float(usd * rate)
	}
	if t.HasColumn(model.ColPriceInRupiah) {
		return t.WithColumn(model.ColPriceInRupiah, derived)
	}
	return t.InsertColumnAfter(model.ColPrice, model.ColPriceInRupiah, derived)
}

// CleanRating keeps the first decimal number of the rating text.
func CleanRating(t *Table) (*Table, error) {
	return mapColumn(t, model.ColRating, func(v Value) Value {
		s, ok := v.AsText()
		if !ok {
			return MissingValue()
		}
		m := reNumber.FindString(s)
		if m == "" {
			return MissingValue()
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return MissingValue()
		}
		return Float(f)
	})
}

// CleanColors keeps the first integer of the colors text.
func CleanColors(t *Table) (*Table, error) {
	return mapColumn(t, model.ColColors, func(v Value) Value {
		s, ok := v.AsText()
		if !ok {
			return MissingValue()
		}
		m := reInt.FindString(s)
		if m == "" {
			return MissingValue()
		}
		n, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return MissingValue()
		}
		return Int(n)
	})
}

// CleanSize strips the size label, e.g. "Size: M" becomes "M".
func CleanSize(t *Table, label string) (*Table, error) {
	return stripLabel(t, model.ColSize, label)
}

// CleanGender strips the gender label, e.g. "Gender: Men" becomes "Men".
func CleanGender(t *Table, label string) (*Table, error) {
	return stripLabel(t, model.ColGender, label)
}

func stripLabel(t *Table, column, label string) (*Table, error) {
	if label == "" {
		return nil, fmt.Errorf("empty label for column %s", column)
	}
	return mapColumn(t, column, func(v Value) Value {
		s, ok := v.AsText()
		if !ok {
			return NullValue()
		}
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, label)
		return Text(strings.TrimSpace(s))
	})
}
