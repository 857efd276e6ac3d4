package dataset

import (
	"time"

	"hellomart-dashboard/internal/models"
)

// Table is the canonical transaction dataset. It is built once by
// Normalize and never mutated afterwards; every downstream stage reads
// through a View.
type Table struct {
	rows []models.Transaction
}

func NewTable(rows []models.Transaction) *Table {
	return &Table{rows: rows}
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Row(i int) models.Transaction { return t.rows[i] }

// All returns a View spanning every row of the table.
func (t *Table) All() View {
	indices := make([]int, len(t.rows))
	for i := range indices {
		indices[i] = i
	}
	return View{table: t, indices: indices}
}

// HasMonths reports whether any row carries a month value. When false,
// monthly aggregation has nothing to work from and the forecast stage
// returns a structured error instead of a series.
func (t *Table) HasMonths() bool {
	for i := range t.rows {
		if t.rows[i].Month != "" {
			return true
		}
	}
	return false
}

// DateBounds returns the earliest and latest non-null order dates.
// ok is false when no row has a parseable date.
func (t *Table) DateBounds() (min, max time.Time, ok bool) {
	for i := range t.rows {
		d := t.rows[i].OrderDate
		if d == nil {
			continue
		}
		if !ok {
			min, max, ok = *d, *d, true
			continue
		}
		if d.Before(min) {
			min = *d
		}
		if d.After(max) {
			max = *d
		}
	}
	return min, max, ok
}

// View is a read-only subset of a Table, held as an index list into the
// parent. Filtering produces Views without copying rows.
type View struct {
	table   *Table
	indices []int
}

func (v View) Len() int { return len(v.indices) }

// Empty is the distinguishable "no rows matched" state. Callers are
// expected to check it and short-circuit presentation instead of
// treating zero rows as a failure.
func (v View) Empty() bool { return len(v.indices) == 0 }

func (v View) Row(i int) models.Transaction { return v.table.rows[v.indices[i]] }

func (v View) narrow(indices []int) View {
	return View{table: v.table, indices: indices}
}
