// Package query renders report periods into the two query-parameter
// vocabularies the portal's report engine understands. The table-report
// filter and the PDF-link filter carry the same period with different field
// names, so both are pure renderings of one domain.Period value.
package query

import (
	"net/url"
	"strconv"

	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
)

const (
	// GroupByVendor yields the one-row-per-vendor summary report.
	GroupByVendor = "apVendorId"
	// GroupByItem yields the one-row-per-stock-item detail report.
	GroupByItem = "invStockId"

	pdfReportSetupID = "434"
)

// PDFMode selects how the portal serves a vendor's PDF artifact.
type PDFMode string

const (
	PDFDownload PDFMode = "download"
	PDFView     PDFMode = "view"
)

// ReportParams renders p in the table-report filter vocabulary.
func ReportParams(p domain.Period) url.Values {
	v := url.Values{}
	switch p.Kind {
	case domain.PeriodDateRange:
		v.Set("frmDateRangeOrYear", "D")
		v.Set("invoiceDate_op", "2")
		v.Set("invoiceDate", p.StartDate)
		v.Set("invoiceDate_two", p.EndDate)
		v.Set("invoiceDate_thr", "")
		v.Set("invoiceDate_rg", "0")
		v.Set("invoiceDate_d", "")
	case domain.PeriodMonth:
		v.Set("frmDateRangeOrYear", "M")
		v.Set("frmMonth", strconv.Itoa(p.Month))
		v.Set("frmYear", strconv.Itoa(p.Year))
	default:
		v.Set("frmDateRangeOrYear", "Y")
		v.Set("frmYear", strconv.Itoa(p.Year))
	}
	return v
}

// PDFParams renders p in the PDF-link filter vocabulary. The range shape
// shares field names with ReportParams; month and year shapes use the
// invoiceMonth/invoiceYear fields instead of frmMonth/frmYear.
func PDFParams(p domain.Period) url.Values {
	v := url.Values{}
	switch p.Kind {
	case domain.PeriodDateRange:
		v.Set("invoiceDate_op", "2")
		v.Set("invoiceDate", p.StartDate)
		v.Set("invoiceDate_two", p.EndDate)
		v.Set("invoiceDate_thr", "")
		v.Set("invoiceDate_rg", "0")
		v.Set("invoiceDate_d", "")
	case domain.PeriodMonth:
		v.Set("invoiceMonth", strconv.Itoa(p.Month))
		v.Set("invoiceYear", strconv.Itoa(p.Year))
	default:
		v.Set("invoiceYear", strconv.Itoa(p.Year))
	}
	return v
}

// PDFURL builds the download/view URL for one vendor's report artifact. Pure
// string construction, no network.
func PDFURL(baseURL, vendorID string, p domain.Period, mode PDFMode) string {
	v := PDFParams(p)
	v.Set("go", "yes")
	v.Set("search", "1")
	v.Set("apVendorId[]", vendorID)
	v.Set("rptSetupId", pdfReportSetupID)
	v.Set("pdf", string(mode))
	return baseURL + "/ap/vendorInventorySalesPDF?" + v.Encode()
}
