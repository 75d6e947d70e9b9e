package transform

import (
	"strconv"
	"strings"

	"fashionetl/internal/model"
)

// FilterStats counts the rows dropped by each validity rule.
type FilterStats struct {
	Placeholder int `json:"placeholder"`
	Incomplete  int `json:"incomplete"`
	Duplicate   int `json:"duplicate"`
}

func (s FilterStats) Total() int {
	return s.Placeholder + s.Incomplete + s.Duplicate
}

// RemoveInvalid drops placeholder titles, rows with any missing or empty
// cell, and exact duplicates (first occurrence wins), in that order.
func RemoveInvalid(t *Table, placeholderTitle string) (*Table, FilterStats, error) {
	var stats FilterStats
	title, err := t.index(model.ColTitle)
	if err != nil {
		return nil, stats, err
	}

	out := t.Filter(func(row []Value) bool {
		if s, ok := row[title].AsText(); ok && s == placeholderTitle {
			stats.Placeholder++
			return false
		}
		return true
	})

	out = out.Filter(func(row []Value) bool {
		for _, v := range row {
			if incomplete(v) {
				stats.Incomplete++
				return false
			}
		}
		return true
	})

	seen := make(map[string]struct{}, out.Len())
	out = out.Filter(func(row []Value) bool {
		k := rowKey(row)
		if _, dup := seen[k]; dup {
			stats.Duplicate++
			return false
		}
		seen[k] = struct{}{}
		return true
	})

	return out, stats, nil
}

func incomplete(v Value) bool {
	if v.IsMissing() {
		return true
	}
	s, ok := v.AsText()
	return ok && strings.TrimSpace(s) == ""
}

// rowKey encodes kind and content so Text("3") and Int(3) stay distinct.
func rowKey(row []Value) string {
	var sb strings.Builder
	for _, v := range row {
		s := v.String()
		sb.WriteString(strconv.Itoa(int(v.kind)))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(len(s)))
		sb.WriteByte(':')
		sb.WriteString(s)
	}
	return sb.String()
}
