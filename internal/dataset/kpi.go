package dataset

import "hellomart-dashboard/internal/models"

// KPIs derives the four scalar metrics from a view. All four are pure
// functions of the rows: sums include rows with null categoricals, the
// order count is over distinct non-null order identifiers, and the
// average is 0 rather than a division fault when no orders exist.
func KPIs(v View) models.KPISummary {
	var summary models.KPISummary
	orders := make(map[string]bool)

	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		summary.TotalRevenue += row.Revenue
		summary.TotalUnits += row.Quantity
		if row.OrderID != "" {
			orders[row.OrderID] = true
		}
	}

	summary.UniqueOrders = len(orders)
	if summary.UniqueOrders > 0 {
		summary.AvgOrderValue = summary.TotalRevenue / float64(summary.UniqueOrders)
	}
	return summary
}
