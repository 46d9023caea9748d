// Package export writes report records to CSV and JSON files and renders
// console summaries.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteSummaryCSV writes vendor summary records to path, one row per vendor.
func WriteSummaryCSV(path string, records []domain.VendorSummary) error {
	return writeCSVFile(path, func(w *csv.Writer) error {
		header := []string{
			"vendor", "quantity", "total_price", "vendor_payment_pct",
			"vendor_amount", "retained_amount", "vendor_id", "pdf_url",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, r := range records {
			row := []string{
				r.Vendor,
				strconv.Itoa(r.Quantity),
				money(r.TotalPrice),
				strconv.FormatFloat(r.VendorPaymentPct, 'f', -1, 64),
				money(r.VendorAmount),
				money(r.RetainedAmount),
				r.VendorID,
				r.PDFURL,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteDetailCSV writes item-level detail records to path.
func WriteDetailCSV(path string, items []domain.VendorDetailItem) error {
	return writeCSVFile(path, func(w *csv.Writer) error {
		header := []string{
			"vendor", "vendor_id", "stock_number", "item_name", "description",
			"quantity", "total_price", "vendor_amount", "retained_amount", "pdf_url",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, it := range items {
			row := []string{
				it.Vendor,
				it.VendorID,
				it.StockNumber,
				it.ItemName,
				it.Description,
				strconv.Itoa(it.Quantity),
				money(it.TotalPrice),
				money(it.VendorAmount),
				money(it.RetainedAmount),
				it.PDFURL,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteDailyCSV writes the daily feed rows plus a trailing TOTAL row, the
// shape downstream spreadsheets expect.
func WriteDailyCSV(w io.Writer, d domain.DailySales) error {
	cw := csv.NewWriter(w)
	header := []string{"vendor_id", "vendor_name", "total_sales", "vendor_amount", "retained_amount"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, v := range d.Vendors {
		row := []string{v.VendorID, v.VendorName, money(v.TotalSales), money(v.VendorAmount), money(v.RetainedAmount)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	totals := []string{
		"", "TOTAL",
		money(d.Totals.TotalSales),
		money(d.Totals.TotalVendorAmount),
		money(d.Totals.TotalRetained),
	}
	if err := cw.Write(totals); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeCSVFile(path string, write func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
