package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fashionetl/internal/model"
)

var rawColumns = []string{
	model.ColTitle, model.ColPrice, model.ColRating, model.ColColors,
	model.ColSize, model.ColGender, model.ColTimestamp,
}

const ts = "2023-06-01 12:00:00"

// sampleTable mirrors the three-row fixture used throughout: two valid
// products around a placeholder row with absent cells.
func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(rawColumns, [][]Value{
		{Text("T-Shirt"), Text("$25.99"), Text("Rating: 4.5 / 5"), Text("Colors: 3 Colors"), Text("Size: M"), Text("Gender: Men"), Text(ts)},
		{Text("Unknown Product"), Text("Price Unavailable"), Text("Invalid Rating"), NullValue(), NullValue(), NullValue(), Text(ts)},
		{Text("Pants"), Text("$30"), Text("Rating: 3.8 / 5"), Text("Colors: 2 Colors"), Text("Size: L"), Text("Gender: Women"), Text(ts)},
	})
	require.NoError(t, err)
	return tbl
}

func column(t *testing.T, tbl *Table, name string) []Value {
	t.Helper()
	v, err := tbl.Column(name)
	require.NoError(t, err)
	return v
}

func texts(t *testing.T, tbl *Table, name string) []string {
	t.Helper()
	var out []string
	for _, v := range column(t, tbl, name) {
		s, ok := v.AsText()
		require.True(t, ok, "expected text in %s, got %s", name, v.Kind())
		out = append(out, s)
	}
	return out
}
