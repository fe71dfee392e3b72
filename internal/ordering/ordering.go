// Package ordering sorts table rows the way the cabinet and admin tables
// display them: stable, locale aware (Russian collation for strings), with
// missing values pushed to the end regardless of direction.
package ordering

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction selects ascending or descending order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Record is a row of arbitrary fields as decoded from backend JSON.
type Record = map[string]any

// Order returns a stably ordered copy of records sorted by the named field.
// An empty key returns a copy in the original order. The input is never
// mutated.
func Order(records []Record, key string, dir Direction) []Record {
	if key == "" {
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}
	return OrderBy(records, func(r Record) any { return r[key] }, dir)
}

// OrderBy sorts a copy of items by the value the extractor yields for each.
// Missing (nil) values sort after defined ones; the direction flag only
// negates comparisons between two defined values. When both values are nil
// the pair compares as equal and the stable sort keeps their relative order.
func OrderBy[T any](items []T, key func(T) any, dir Direction) []T {
	out := make([]T, len(items))
	copy(out, items)
	c := collate.New(language.Russian)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := key(out[i]), key(out[j])
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		cmp := compare(c, a, b)
		if dir == Desc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return out
}

// compare applies the tagged-value rules: string collation, numeric
// subtraction, false < true, and a stringify-then-collate fallback for mixed
// or unsupported types. It never fails.
func compare(c *collate.Collator, a, b any) int {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return c.CompareString(as, bs)
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case bb: // false < true
				return -1
			default:
				return 1
			}
		}
	}
	return c.CompareString(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
