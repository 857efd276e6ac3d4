package dataset

import (
	"time"

	"hellomart-dashboard/internal/models"
)

// FilterSpec describes the UI-supplied restriction on the canonical
// table. A nil bound or an empty set means no restriction on that
// predicate; a fully zero FilterSpec passes every row.
type FilterSpec struct {
	From       *time.Time
	To         *time.Time
	Regions    []string
	Categories []string
}

func (f FilterSpec) IsEmpty() bool {
	return f.From == nil && f.To == nil && len(f.Regions) == 0 && len(f.Categories) == 0
}

// Apply evaluates the spec against a view in one pass. Predicates are
// AND-combined; set membership is OR within a set. Rows with a null date
// never satisfy a bounded date predicate, and null categoricals never
// match a non-empty set. An empty result is a valid View, not an error.
func (f FilterSpec) Apply(v View) View {
	if f.IsEmpty() {
		return v
	}

	regionSet := toSet(f.Regions)
	categorySet := toSet(f.Categories)

	indices := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		if !f.dateMatches(row.OrderDate) {
			continue
		}
		if !matchesSet(row.Region, regionSet) {
			continue
		}
		if !matchesSet(row.Category, categorySet) {
			continue
		}
		indices = append(indices, v.indices[i])
	}
	return v.narrow(indices)
}

// dateMatches applies the inclusive date-range predicate.
func (f FilterSpec) dateMatches(d *time.Time) bool {
	if f.From == nil && f.To == nil {
		return true
	}
	if d == nil {
		return false
	}
	if f.From != nil && d.Before(*f.From) {
		return false
	}
	if f.To != nil && d.After(*f.To) {
		return false
	}
	return true
}

func matchesSet(value string, set map[string]bool) bool {
	if len(set) == 0 {
		return true
	}
	if value == "" {
		return false
	}
	return set[value]
}

func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// UniqueValues returns the distinct non-empty values of a dimension in
// encounter order. Used for the filter widgets' option lists.
func UniqueValues(v View, dim func(models.Transaction) string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := 0; i < v.Len(); i++ {
		val := dim(v.Row(i))
		if val != "" && !seen[val] {
			seen[val] = true
			values = append(values, val)
		}
	}
	return values
}
