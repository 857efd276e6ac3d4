package dataset

import (
	"fmt"

	"hellomart-dashboard/internal/errors"
	"hellomart-dashboard/internal/models"
)

// Forecast horizon bounds. Callers validate input before reaching the
// projector; the projector clamps anyway so an out-of-range value can
// never produce a runaway series.
const (
	MinHorizon = 1
	MaxHorizon = 6
)

// Forecast aggregates monthly revenue totals over the full canonical
// table, never a filtered view, and projects horizon future points,
// each valued at the arithmetic mean of the historical monthly totals.
// The flat projection is a deliberate baseline, not a trend model.
//
// A non-empty table with no month data (no parseable dates and no
// source month values) cannot be aggregated monthly; that is reported
// as a schema error rather than a crash. An empty table yields an empty
// history and zero-valued projections (mean of nothing is 0).
func Forecast(t *Table, horizon int) (models.ForecastResult, error) {
	if t.Len() > 0 && !t.HasMonths() {
		return models.ForecastResult{}, errors.Schema("monthly aggregation requires an order date or month column with at least one usable value")
	}

	if horizon < MinHorizon {
		horizon = MinHorizon
	}
	if horizon > MaxHorizon {
		horizon = MaxHorizon
	}

	history := GroupTotals(t.All(), GroupSpec{
		Dimension: DimMonth,
		Measure:   MeasureRevenue,
		Ranking:   SortByKey,
	})

	var mean float64
	if len(history) > 0 {
		var total float64
		for _, g := range history {
			total += g.Value
		}
		mean = total / float64(len(history))
	}

	result := models.ForecastResult{
		History:   make([]models.MonthlyPoint, 0, len(history)),
		Projected: make([]models.MonthlyPoint, 0, horizon),
		Mean:      mean,
	}
	for _, g := range history {
		result.History = append(result.History, models.MonthlyPoint{Month: g.Key, Revenue: g.Value})
	}
	for i := 1; i <= horizon; i++ {
		result.Projected = append(result.Projected, models.MonthlyPoint{
			Month:   fmt.Sprintf("forecast-%d", i),
			Revenue: mean,
		})
	}
	return result, nil
}
