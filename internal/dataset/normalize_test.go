package dataset

import (
	"testing"
)

func TestCanonicalizeHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "order_id", "order_id"},
		{"trailing space and caps", "Order ID ", "order_id"},
		{"periods removed", "No. Urut", "no_urut"},
		{"inner spaces", "Total Penjualan", "total_penjualan"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalizeHeader(tt.in); got != tt.want {
				t.Errorf("CanonicalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeHeader_Idempotent(t *testing.T) {
	headers := []string{"Order ID ", "Tanggal Pesanan", "total_penjualan", "Wilayah"}
	for _, h := range headers {
		once := CanonicalizeHeader(h)
		twice := CanonicalizeHeader(once)
		if once != twice {
			t.Errorf("canonicalization not idempotent for %q: %q != %q", h, once, twice)
		}
	}
}

func TestMapColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		wantErr bool
	}{
		{
			name:    "canonical english headers",
			headers: []string{"order_id", "order_date", "region", "category", "product", "quantity", "revenue"},
			wantErr: false,
		},
		{
			name:    "indonesian source headers",
			headers: []string{"OrderID", "Tanggal Pesanan", "Wilayah", "Kategori", "Produk", "Jumlah", "Total Penjualan", "Hari dalam Seminggu", "Bulan"},
			wantErr: false,
		},
		{
			name:    "missing date column",
			headers: []string{"order_id", "region", "revenue"},
			wantErr: true,
		},
		{
			name:    "missing revenue column",
			headers: []string{"order_id", "order_date", "region"},
			wantErr: true,
		},
		{
			name:    "date and revenue only",
			headers: []string{"order_date", "revenue"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapColumns(tt.headers)
			if (err != nil) != tt.wantErr {
				t.Errorf("MapColumns() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMapColumns_OrderIDAlias(t *testing.T) {
	cols, err := MapColumns([]string{"orderid", "order_date", "revenue"})
	if err != nil {
		t.Fatalf("MapColumns() error = %v", err)
	}
	if cols["order_id"] != 0 {
		t.Errorf("order_id should resolve to the orderid column, got index %d", cols["order_id"])
	}
}

func TestMapColumns_DropsAnonymousColumns(t *testing.T) {
	cols, err := MapColumns([]string{"Unnamed: 0", "order_date", "revenue"})
	if err != nil {
		t.Fatalf("MapColumns() error = %v", err)
	}
	// The anonymous export artifact must not shadow any canonical field.
	for field, idx := range cols {
		if idx == 0 {
			t.Errorf("field %s mapped to the anonymous column", field)
		}
	}
}

func TestNormalizeRow_Coercion(t *testing.T) {
	cols, err := MapColumns([]string{"order_id", "order_date", "region", "quantity", "revenue"})
	if err != nil {
		t.Fatalf("MapColumns() error = %v", err)
	}

	tests := []struct {
		name       string
		row        []string
		wantQty    int
		wantRev    float64
		wantNilDay bool
	}{
		{"valid row", []string{"1", "2024-01-05", "West", "2", "100"}, 2, 100, false},
		{"non-numeric quantity", []string{"1", "2024-01-05", "West", "abc", "100"}, 0, 100, false},
		{"non-numeric revenue", []string{"1", "2024-01-05", "West", "2", "n/a"}, 2, 0, false},
		{"negative revenue coerced", []string{"1", "2024-01-05", "West", "2", "-50"}, 2, 0, false},
		{"unparseable date", []string{"1", "not-a-date", "West", "2", "100"}, 2, 100, true},
		{"short row", []string{"1", "2024-01-05"}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats CoercionStats
			tx := NormalizeRow(cols, tt.row, &stats)

			if tx.Quantity != tt.wantQty {
				t.Errorf("Quantity = %d, want %d", tx.Quantity, tt.wantQty)
			}
			if tx.Revenue != tt.wantRev {
				t.Errorf("Revenue = %v, want %v", tx.Revenue, tt.wantRev)
			}
			if (tx.OrderDate == nil) != tt.wantNilDay {
				t.Errorf("OrderDate nil = %v, want %v", tx.OrderDate == nil, tt.wantNilDay)
			}
			if tx.Quantity < 0 || tx.Revenue < 0 {
				t.Error("coerced values must be non-negative")
			}
		})
	}
}

func TestNormalizeRow_MonthDerivation(t *testing.T) {
	cols, err := MapColumns([]string{"order_date", "revenue", "month"})
	if err != nil {
		t.Fatalf("MapColumns() error = %v", err)
	}

	var stats CoercionStats

	// Source-provided month wins over derivation.
	tx := NormalizeRow(cols, []string{"2024-01-05", "100", "2024-03"}, &stats)
	if tx.Month != "2024-03" {
		t.Errorf("Month = %q, want source-provided 2024-03", tx.Month)
	}

	// Absent month derives from the date.
	tx = NormalizeRow(cols, []string{"2024-01-05", "100", ""}, &stats)
	if tx.Month != "2024-01" {
		t.Errorf("Month = %q, want derived 2024-01", tx.Month)
	}

	// Null date leaves a null month.
	tx = NormalizeRow(cols, []string{"garbage", "100", ""}, &stats)
	if tx.Month != "" {
		t.Errorf("Month = %q, want empty for null date", tx.Month)
	}
}

func TestNormalizeRow_CountsCoercions(t *testing.T) {
	cols, err := MapColumns([]string{"order_date", "quantity", "revenue"})
	if err != nil {
		t.Fatalf("MapColumns() error = %v", err)
	}

	var stats CoercionStats
	NormalizeRow(cols, []string{"bad-date", "bad-qty", "bad-rev"}, &stats)

	if stats.BadDates != 1 || stats.BadQuantities != 1 || stats.BadRevenues != 1 {
		t.Errorf("stats = %+v, want one of each", stats)
	}
	if stats.Total() != 3 {
		t.Errorf("Total() = %d, want 3", stats.Total())
	}
}
