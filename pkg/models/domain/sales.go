package domain

// VendorSummary is one vendor's aggregate row in the AP Vendor Totals report.
// VendorID comes from a PDF link inside the row rather than visible text; a
// row with no such link keeps an empty ID and an empty PDFURL, which is a
// recorded absence, not an error.
type VendorSummary struct {
	Vendor           string  `json:"vendor"`
	Quantity         int     `json:"quantity"`
	TotalPrice       float64 `json:"total_price"`
	VendorPaymentPct float64 `json:"vendor_payment_pct"`
	VendorAmount     float64 `json:"vendor_amount"`
	RetainedAmount   float64 `json:"retained_amount"`
	VendorID         string  `json:"vendor_id"`
	PDFURL           string  `json:"pdf_url"`
}

// VendorDetailItem is one stock item's sales under one vendor for a period.
type VendorDetailItem struct {
	Vendor         string  `json:"vendor"`
	VendorID       string  `json:"vendor_id"`
	StockNumber    string  `json:"stock_number"`
	ItemName       string  `json:"item_name"`
	Description    string  `json:"description"`
	Quantity       int     `json:"quantity"`
	TotalPrice     float64 `json:"total_price"`
	VendorAmount   float64 `json:"vendor_amount"`
	RetainedAmount float64 `json:"retained_amount"`
	PDFURL         string  `json:"pdf_url"`
}

// Totals aggregates a record set by plain accumulation. Sums are never
// re-derived from any totals row the portal renders.
type Totals struct {
	Quantity       int     `json:"total_quantity"`
	TotalSales     float64 `json:"total_sales"`
	VendorAmount   float64 `json:"total_vendor_amount"`
	RetainedAmount float64 `json:"total_retained"`
	RecordCount    int     `json:"record_count"`
	VendorCount    int     `json:"vendor_count"`
}

// DailyVendorSale is the compact per-vendor shape of the daily sales feed.
type DailyVendorSale struct {
	VendorID       string  `json:"vendor_id"`
	VendorName     string  `json:"vendor_name"`
	TotalSales     float64 `json:"total_sales"`
	VendorAmount   float64 `json:"vendor_amount"`
	RetainedAmount float64 `json:"retained_amount"`
}

// DailySales is one day's vendor sales with rounded aggregate totals.
type DailySales struct {
	Date    string            `json:"date"`
	Vendors []DailyVendorSale `json:"vendors"`
	Totals  DailyTotals       `json:"totals"`
}

type DailyTotals struct {
	TotalSales        float64 `json:"total_sales"`
	TotalVendorAmount float64 `json:"total_vendor_amount"`
	TotalRetained     float64 `json:"total_retained"`
	VendorCount       int     `json:"vendor_count"`
}
