package dataset

import (
	"slices"
	"strings"

	"hellomart-dashboard/internal/models"
)

// Dimension and measure names accepted by GroupTotals.
const (
	DimRegion   = "region"
	DimCategory = "category"
	DimProduct  = "product"
	DimWeekday  = "day_of_week"
	DimMonth    = "month"

	MeasureRevenue = "revenue"
	MeasureUnits   = "units"
)

type SortDirection int

const (
	SortNone SortDirection = iota
	SortDescending
	SortAscending
	SortByKey // lexicographic on the group key, for temporal dimensions
)

// GroupSpec parameterizes one grouped aggregation. Ranking orders the
// groups before the Limit cut; Presentation reorders the surviving
// groups afterwards, since chart layouts often want the opposite order
// from the one used to rank (top-10 descending, drawn ascending).
type GroupSpec struct {
	Dimension    string
	Measure      string // defaults to MeasureRevenue
	Ranking      SortDirection
	Limit        int // 0 = no truncation
	Presentation SortDirection
}

var dimensions = map[string]func(models.Transaction) string{
	DimRegion:   func(t models.Transaction) string { return t.Region },
	DimCategory: func(t models.Transaction) string { return t.Category },
	DimProduct:  func(t models.Transaction) string { return t.Product },
	DimWeekday:  func(t models.Transaction) string { return t.DayOfWeek },
	DimMonth:    func(t models.Transaction) string { return t.Month },
}

var measures = map[string]func(models.Transaction) float64{
	MeasureRevenue: func(t models.Transaction) float64 { return t.Revenue },
	MeasureUnits:   func(t models.Transaction) float64 { return float64(t.Quantity) },
}

// KnownDimension reports whether name is a groupable dimension.
func KnownDimension(name string) bool {
	_, ok := dimensions[name]
	return ok
}

// GroupTotals sums a measure per distinct non-null value of the grouping
// dimension. Rows with a null (empty) dimension value are excluded from
// the grouped output; they still contribute to ungrouped KPIs. Sorting
// is stable, so ties keep encounter order and identical inputs produce
// identical outputs.
func GroupTotals(v View, spec GroupSpec) []models.GroupTotal {
	dim, ok := dimensions[spec.Dimension]
	if !ok {
		return nil
	}
	measure, ok := measures[spec.Measure]
	if !ok {
		// Unrecognized measures fall back to revenue, mirroring how an
		// unrecognized dimension degrades instead of panicking.
		measure = measures[MeasureRevenue]
	}

	totals := make(map[string]float64)
	var order []string
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		key := dim(row)
		if key == "" {
			continue
		}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += measure(row)
	}

	groups := make([]models.GroupTotal, 0, len(order))
	for _, key := range order {
		groups = append(groups, models.GroupTotal{Key: key, Value: totals[key]})
	}

	sortGroups(groups, spec.Ranking)
	if spec.Limit > 0 && len(groups) > spec.Limit {
		groups = groups[:spec.Limit]
	}
	if spec.Presentation != SortNone && spec.Presentation != spec.Ranking {
		sortGroups(groups, spec.Presentation)
	}
	return groups
}

func sortGroups(groups []models.GroupTotal, dir SortDirection) {
	switch dir {
	case SortDescending:
		slices.SortStableFunc(groups, func(a, b models.GroupTotal) int {
			switch {
			case a.Value > b.Value:
				return -1
			case a.Value < b.Value:
				return 1
			default:
				return 0
			}
		})
	case SortAscending:
		slices.SortStableFunc(groups, func(a, b models.GroupTotal) int {
			switch {
			case a.Value < b.Value:
				return -1
			case a.Value > b.Value:
				return 1
			default:
				return 0
			}
		})
	case SortByKey:
		slices.SortStableFunc(groups, func(a, b models.GroupTotal) int {
			return strings.Compare(a.Key, b.Key)
		})
	}
}
