package transform

import (
	"errors"
	"math"
	"strconv"

	"fashionetl/internal/model"
)

var errNotIntegral = errors.New("value is not integral")

// Schema is the canonical storage type of every final column.
var Schema = []struct {
	Column string
	Kind   Kind
}{
	{model.ColTitle, KindText},
	{model.ColPriceInRupiah, KindFloat},
	{model.ColRating, KindFloat},
	{model.ColColors, KindInt},
	{model.ColSize, KindText},
	{model.ColGender, KindText},
	{model.ColTimestamp, KindText},
}

// ConvertTypes enforces Schema. It fails on the first cell that cannot be
// converted; applying it to an already converted table changes nothing.
func ConvertTypes(t *Table) (*Table, error) {
	out := t
	for _, col := range Schema {
		values, err := out.Column(col.Column)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			c, err := coerce(v, col.Kind)
			if err != nil {
				return nil, &CoercionError{Column: col.Column, Row: i, Kind: v.Kind(), Err: err}
			}
			values[i] = c
		}
		if out, err = out.WithColumn(col.Column, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func coerce(v Value, to Kind) (Value, error) {
	if v.IsMissing() {
		return Value{}, errors.New("missing value")
	}
	switch to {
	case KindText:
		if v.kind == KindText {
			return v, nil
		}
		return Text(v.String()), nil
	case KindFloat:
		switch v.kind {
		case KindFloat:
			return v, nil
		case KindInt:
			return Float(float64(v.i)), nil
		case KindText:
			f, err := strconv.ParseFloat(v.s, 64)
			if err != nil {
				return Value{}, err
			}
			if math.IsNaN(f) {
				return Value{}, strconv.ErrSyntax
			}
			return Float(f), nil
		}
	case KindInt:
		switch v.kind {
		case KindInt:
			return v, nil
		case KindFloat:
			if v.f != math.Trunc(v.f) || math.IsInf(v.f, 0) || math.Abs(v.f) >= math.MaxInt64 {
				return Value{}, errNotIntegral
			}
			return Int(int64(v.f)), nil
		case KindText:
			n, err := strconv.ParseInt(v.s, 10, 64)
			if err != nil {
				return Value{}, err
			}
			return Int(n), nil
		}
	}
	return Value{}, errors.New("unsupported conversion to " + to.String())
}
