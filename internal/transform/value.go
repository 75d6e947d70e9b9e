package transform

import (
	"math"
	"strconv"
)

// Kind tags the contents of a Value.
type Kind int

const (
	// KindMissing marks a cell whose source text could not be parsed.
	KindMissing Kind = iota
	// KindNull marks a cell with no source value at all.
	KindNull
	KindText
	KindFloat
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single table cell. The zero Value is the missing marker.
type Value struct {
	kind Kind
	s    string
	f    float64
	i    int64
}

func MissingValue() Value { return Value{kind: KindMissing} }
func NullValue() Value    { return Value{kind: KindNull} }
func Text(s string) Value { return Value{kind: KindText, s: s} }
func Int(i int64) Value   { return Value{kind: KindInt, i: i} }

// Float returns a float cell. NaN has no meaning downstream and collapses to
// the missing marker.
func Float(f float64) Value {
	if math.IsNaN(f) {
		return MissingValue()
	}
	return Value{kind: KindFloat, f: f}
}

func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the cell is a missing marker or null.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing || v.kind == KindNull
}

func (v Value) AsText() (string, bool) {
	return v.s, v.kind == KindText
}

func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// String renders the cell for logs and duplicate keys.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.s
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	}
	return "<" + v.kind.String() + ">"
}
