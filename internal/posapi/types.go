package posapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Number is a float64 that also accepts quoted numeric strings. The POS API
// is inconsistent about numeric field types, so every numeric field on a
// record goes through this coercion at the boundary.
type Number float64

// UnmarshalJSON accepts a JSON number, a numeric string, null, or an empty
// string (the last two coerce to zero).
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("numeric field %q: %w", s, err)
	}
	*n = Number(v)
	return nil
}

// Float64 returns the coerced value.
func (n Number) Float64() float64 {
	return float64(n)
}

// Int truncates the coerced value, for fields that are really identifiers.
func (n Number) Int() int {
	return int(n)
}

// Product is a product record as returned by /All/Product and
// /All/Min/Product.
type Product struct {
	ID     Number `json:"proid"`
	Name   string `json:"pro_name"`
	Qty    Number `json:"qty"`
	QtyMin Number `json:"qty_min"`
}

// LowStock reports whether the product is at or below its minimum quantity.
func (p Product) LowStock() bool {
	return p.Qty <= p.QtyMin
}

// ImportRecord is a stock-import record as returned by /import/All/Import.
type ImportRecord struct {
	ID       Number `json:"imp_id"`
	Status   string `json:"status"`
	Date     string `json:"imp_date"`
	Supplier string `json:"supplier"`
	Total    Number `json:"total"`
}

// ExportRecord is a stock-export record as returned by /export/All/Export.
type ExportRecord struct {
	ID     Number `json:"exp_id"`
	Status string `json:"status"`
	Date   string `json:"exp_date"`
	Zone   string `json:"zone"`
	Total  Number `json:"total"`
}

// SaleRecord is a completed sale as returned by /sale/All/Sales.
type SaleRecord struct {
	ID          Number `json:"sale_id"`
	CustomerID  Number `json:"cus_id"`
	EmployeeID  Number `json:"emp_id"`
	Subtotal    Number `json:"subtotal"`
	Pay         Number `json:"pay"`
	MoneyChange Number `json:"money_change"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

// SaleLine is one line of the sale creation wire payload.
type SaleLine struct {
	ProductID float64 `json:"proid"`
	Qty       float64 `json:"qty"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// SalePayload is the wire format accepted by /sale/Insert/Sales. All fields
// are fully coerced numbers; building one from raw input is the sale
// formatter's job.
type SalePayload struct {
	CustomerID  float64    `json:"cus_id"`
	EmployeeID  float64    `json:"emp_id"`
	Subtotal    float64    `json:"subtotal"`
	Pay         float64    `json:"pay"`
	MoneyChange float64    `json:"money_change"`
	Products    []SaleLine `json:"products"`
}

// SaleAck is the server acknowledgement for a created sale.
type SaleAck struct {
	ResultCode string `json:"result_code"`
	Message    string `json:"message"`
	SaleID     Number `json:"sale_id"`
}

// timestampLayouts are the formats the POS API has been observed emitting
// for record dates.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a record date. The second return value reports
// whether the raw value matched any known layout.
func ParseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
