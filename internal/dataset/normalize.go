package dataset

import (
	"strconv"
	"strings"
	"time"

	"hellomart-dashboard/internal/errors"
	"hellomart-dashboard/internal/models"
)

// anonymousPrefix marks index columns emitted by some tabular exports
// ("Unnamed: 0" and friends). They carry no data and are dropped.
const anonymousPrefix = "unnamed"

// Column aliases, keyed by canonical field name. Matching happens after
// header canonicalization, so "Order ID " and "orderid" both resolve.
// The Indonesian names come from the HelloMart source export.
var columnAliases = map[string][]string{
	"order_id":    {"order_id", "orderid", "order_no"},
	"order_date":  {"order_date", "tanggal_pesanan", "transaction_date", "date"},
	"region":      {"region", "wilayah"},
	"category":    {"category", "kategori"},
	"product":     {"product", "produk", "product_name"},
	"quantity":    {"quantity", "jumlah", "qty"},
	"revenue":     {"revenue", "total_penjualan", "total_sales", "total_price"},
	"day_of_week": {"day_of_week", "hari_dalam_seminggu", "weekday"},
	"month":       {"month", "bulan"},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2006/01/02",
}

// CoercionStats counts values that failed parsing and were defaulted
// during normalization. Defaults never abort the load; the counts exist
// for observability only.
type CoercionStats struct {
	BadDates      int `json:"bad_dates"`
	BadQuantities int `json:"bad_quantities"`
	BadRevenues   int `json:"bad_revenues"`
}

func (s CoercionStats) Total() int {
	return s.BadDates + s.BadQuantities + s.BadRevenues
}

func (s *CoercionStats) add(o CoercionStats) {
	s.BadDates += o.BadDates
	s.BadQuantities += o.BadQuantities
	s.BadRevenues += o.BadRevenues
}

// CanonicalizeHeader normalizes a raw column name: trimmed, lower-cased,
// spaces to underscores, periods removed. Idempotent by construction.
func CanonicalizeHeader(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, ".", "")
	return name
}

// columnMap resolves raw headers to canonical field names. Returns the
// column index per canonical field, or -1 when no header matched.
type columnMap map[string]int

// MapColumns builds the canonical column mapping from a raw header row.
// A SchemaError is returned when neither the date nor an alias for it is
// present, or when the revenue column is unresolvable; the pipeline
// cannot be constructed without them. Every other field is optional and
// defaults per field type.
func MapColumns(headers []string) (columnMap, error) {
	byName := make(map[string]int, len(headers))
	for i, h := range headers {
		name := CanonicalizeHeader(h)
		if name == "" || strings.HasPrefix(name, anonymousPrefix) {
			continue
		}
		if _, taken := byName[name]; !taken {
			byName[name] = i
		}
	}

	cols := make(columnMap, len(columnAliases))
	for field, aliases := range columnAliases {
		cols[field] = -1
		for _, alias := range aliases {
			if idx, ok := byName[alias]; ok {
				cols[field] = idx
				break
			}
		}
	}

	if cols["order_date"] < 0 {
		return nil, errors.Schema("no order date column found under any known name")
	}
	if cols["revenue"] < 0 {
		return nil, errors.Schema("no revenue column found under any known name")
	}
	return cols, nil
}

// NormalizeRow coerces one raw row into a canonical Transaction.
// Coercion failures default (0 for numerics, null for dates) and are
// tallied in stats; this function never fails.
func NormalizeRow(cols columnMap, row []string, stats *CoercionStats) models.Transaction {
	get := func(field string) string {
		idx := cols[field]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	tx := models.Transaction{
		OrderID:   get("order_id"),
		Region:    get("region"),
		Category:  get("category"),
		Product:   get("product"),
		DayOfWeek: get("day_of_week"),
		Month:     get("month"),
	}

	if raw := get("order_date"); raw != "" {
		if d, ok := parseDate(raw); ok {
			tx.OrderDate = &d
		} else {
			stats.BadDates++
		}
	} else if cols["order_date"] >= 0 {
		stats.BadDates++
	}

	tx.Quantity = coerceInt(get("quantity"), cols["quantity"] >= 0, &stats.BadQuantities)
	tx.Revenue = coerceFloat(get("revenue"), true, &stats.BadRevenues)

	// Month derivation: only when the source did not provide one and the
	// date parsed. Rows with a null date keep a null month.
	if tx.Month == "" && tx.OrderDate != nil {
		tx.Month = tx.OrderDate.Format("2006-01")
	}
	return tx
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// coerceInt parses a non-negative integer. An absent column yields an
// all-zero column without counting as a failure; anything unparseable or
// negative defaults to 0 and is tallied.
func coerceInt(raw string, present bool, badCount *int) int {
	if raw == "" {
		if present {
			*badCount++
		}
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		*badCount++
		return 0
	}
	return n
}

func coerceFloat(raw string, present bool, badCount *int) float64 {
	if raw == "" {
		if present {
			*badCount++
		}
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		*badCount++
		return 0
	}
	return v
}
