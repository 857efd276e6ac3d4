package services

import (
	"context"
	"os"
	"testing"
	"time"

	"hellomart-dashboard/internal/dataset"
	"hellomart-dashboard/internal/models"
)

func createTempCSV(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "sales*.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func testRows() []models.Transaction {
	d1 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	return []models.Transaction{
		{OrderID: "1", OrderDate: &d1, Region: "West", Category: "Food", Product: "Rice", DayOfWeek: "Friday", Month: "2024-01", Quantity: 2, Revenue: 100},
		{OrderID: "2", OrderDate: &d2, Region: "East", Category: "Food", Product: "Noodles", DayOfWeek: "Saturday", Month: "2024-01", Quantity: 1, Revenue: 50},
		{OrderID: "3", OrderDate: &d3, Region: "West", Category: "Drinks", Product: "Tea", DayOfWeek: "Saturday", Month: "2024-02", Quantity: 3, Revenue: 150},
	}
}

func newTestAnalytics() *Analytics {
	a := NewAnalytics(nil)
	a.SetTable(testRows())
	return a
}

func TestNewAnalytics(t *testing.T) {
	a := NewAnalytics(nil)
	if a == nil {
		t.Fatal("NewAnalytics() returned nil")
	}
	if a.logger == nil {
		t.Error("logger should default when nil is passed")
	}
}

func TestAnalytics_LoadFromCSV(t *testing.T) {
	csv := `OrderID,Tanggal Pesanan,Wilayah,Kategori,Produk,Jumlah,Total Penjualan
1,2024-01-05,West,Food,Rice,2,100
2,2024-01-20,East,Food,Noodles,1,50`

	f := createTempCSV(t, csv)

	a := NewAnalytics(nil)
	if err := a.LoadFromCSV(context.Background(), f); err != nil {
		t.Fatalf("LoadFromCSV() error = %v", err)
	}

	kpis := a.KPIs(dataset.FilterSpec{})
	if kpis.TotalRevenue != 150 || kpis.UniqueOrders != 2 {
		t.Errorf("kpis = %+v", kpis)
	}
}

func TestAnalytics_LoadFromCSV_SchemaError(t *testing.T) {
	f := createTempCSV(t, "order_id,region\n1,West")

	a := NewAnalytics(nil)
	if err := a.LoadFromCSV(context.Background(), f); err == nil {
		t.Error("missing required columns should fail the load")
	}
}

func TestAnalytics_SnapshotRoundTrip(t *testing.T) {
	csv := `order_id,order_date,region,quantity,revenue
1,2024-01-05,West,2,100`

	f := createTempCSV(t, csv)

	a := NewAnalytics(nil)
	if err := a.LoadFromCSV(context.Background(), f); err != nil {
		t.Fatalf("first load error = %v", err)
	}
	t.Cleanup(func() { a.ClearCache() })

	// A second service instance should pick up the snapshot and see the
	// same table.
	b := NewAnalytics(nil)
	if err := b.LoadFromCSV(context.Background(), f); err != nil {
		t.Fatalf("second load error = %v", err)
	}

	if got, want := b.KPIs(dataset.FilterSpec{}), a.KPIs(dataset.FilterSpec{}); got != want {
		t.Errorf("snapshot load diverged: %+v vs %+v", got, want)
	}
}

func TestAnalytics_Overview(t *testing.T) {
	a := newTestAnalytics()

	data := a.Overview(dataset.FilterSpec{Regions: []string{"West"}})
	if data.Empty {
		t.Fatal("West filter should not be empty")
	}
	if data.KPIs.TotalRevenue != 250 || data.KPIs.UniqueOrders != 2 || data.KPIs.AvgOrderValue != 125 || data.KPIs.TotalUnits != 5 {
		t.Errorf("kpis = %+v", data.KPIs)
	}
	if len(data.RevenueByRegion) != 1 || data.RevenueByRegion[0].Key != "West" || data.RevenueByRegion[0].Value != 250 {
		t.Errorf("revenue by region = %v", data.RevenueByRegion)
	}
	if len(data.RevenueByCategory) != 2 {
		t.Errorf("revenue by category = %v", data.RevenueByCategory)
	}
	if len(data.TopProducts) != 2 {
		t.Errorf("top products = %v", data.TopProducts)
	}
	// Presentation order is ascending for the horizontal bar layout.
	if data.TopProducts[0].Value > data.TopProducts[1].Value {
		t.Errorf("top products should be presented ascending: %v", data.TopProducts)
	}
}

func TestAnalytics_Overview_EmptyView(t *testing.T) {
	a := newTestAnalytics()

	data := a.Overview(dataset.FilterSpec{Regions: []string{"Atlantis"}})
	if !data.Empty {
		t.Fatal("expected the empty-view state")
	}
	if data.KPIs != (models.KPISummary{}) {
		t.Errorf("kpis should be zero valued, got %+v", data.KPIs)
	}
	if len(data.RevenueByRegion) != 0 || len(data.TopProducts) != 0 {
		t.Error("breakdowns should be empty")
	}
}

func TestAnalytics_Forecast(t *testing.T) {
	a := newTestAnalytics()

	// Horizon 0 uses the dashboard's default of 3.
	result, err := a.Forecast(0)
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}
	if len(result.Projected) != 3 {
		t.Errorf("projected length = %d, want default 3", len(result.Projected))
	}
	if result.Mean != 150 {
		t.Errorf("Mean = %v, want 150", result.Mean)
	}
}

func TestAnalytics_ForecastIgnoresFilters(t *testing.T) {
	a := newTestAnalytics()

	// Whatever the dashboard filter state, the forecast history spans
	// the full table.
	result, err := a.Forecast(2)
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}
	if len(result.History) != 2 {
		t.Errorf("history months = %d, want 2", len(result.History))
	}
}

func TestAnalytics_FilterOptions(t *testing.T) {
	a := newTestAnalytics()

	opts := a.FilterOptions()
	if len(opts.Regions) != 2 || len(opts.Categories) != 2 {
		t.Errorf("options = %+v", opts)
	}
	if opts.MinDate != "2024-01-05" || opts.MaxDate != "2024-02-10" {
		t.Errorf("date bounds = %s..%s", opts.MinDate, opts.MaxDate)
	}
}

func TestAnalytics_Stats(t *testing.T) {
	a := newTestAnalytics()

	stats := a.Stats()
	if stats["record_count"] != 3 {
		t.Errorf("record_count = %v, want 3", stats["record_count"])
	}
	if stats["regions"] != 2 {
		t.Errorf("regions = %v, want 2", stats["regions"])
	}
}

func TestAnalytics_ConcurrentReads(t *testing.T) {
	a := newTestAnalytics()

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- true }()

			_ = a.Overview(dataset.FilterSpec{Regions: []string{"West"}})
			_ = a.KPIs(dataset.FilterSpec{})
			_, _ = a.Forecast(2)
			_ = a.FilterOptions()
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func BenchmarkAnalytics_Overview(b *testing.B) {
	a := NewAnalytics(nil)
	rows := make([]models.Transaction, 10000)
	regions := []string{"West", "East", "North", "South"}
	for i := range rows {
		d := time.Date(2024, time.Month(i%12+1), i%28+1, 0, 0, 0, 0, time.UTC)
		rows[i] = models.Transaction{
			OrderID:   string(rune('A' + i%26)),
			OrderDate: &d,
			Region:    regions[i%len(regions)],
			Category:  "Cat" + string(rune('A'+i%5)),
			Product:   "Product" + string(rune('A'+i%50)),
			Month:     d.Format("2006-01"),
			Quantity:  i % 5,
			Revenue:   float64(i % 500),
		}
	}
	a.SetTable(rows)

	b.ResetTimer()
	for b.Loop() {
		_ = a.Overview(dataset.FilterSpec{Regions: []string{"West", "East"}})
	}
}
