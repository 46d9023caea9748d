package api

// DailySales is the wire shape of the daily vendor sales feed.
type DailySales struct {
	Date    string            `json:"date"`
	Vendors []DailyVendorSale `json:"vendors"`
	Totals  DailyTotals       `json:"totals"`
}

type DailyVendorSale struct {
	VendorID       string  `json:"vendor_id"`
	VendorName     string  `json:"vendor_name"`
	TotalSales     float64 `json:"total_sales"`
	VendorAmount   float64 `json:"vendor_amount"`
	RetainedAmount float64 `json:"retained_amount"`
}

type DailyTotals struct {
	TotalSales        float64 `json:"total_sales"`
	TotalVendorAmount float64 `json:"total_vendor_amount"`
	TotalRetained     float64 `json:"total_retained"`
	VendorCount       int     `json:"vendor_count"`
}
