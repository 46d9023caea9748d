// Package report turns raw portal documents into typed vendor records and
// aggregate totals.
package report

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
	"github.com/nrs-tools/vendor-atlas/pkg/scrape"
	"github.com/nrs-tools/vendor-atlas/pkg/scrape/query"
)

// Fetcher is the slice of the session client the aggregator depends on.
type Fetcher interface {
	FetchSummary(ctx context.Context, p domain.Period) (string, error)
	FetchVendorDetail(ctx context.Context, vendorID string, p domain.Period) (string, error)
}

// Controller runs summary fetches and the optional per-vendor detail sweep.
type Controller struct {
	fetcher Fetcher
	baseURL string
	workers int
}

func NewController(fetcher Fetcher, baseURL string, workers int) *Controller {
	if workers < 1 {
		workers = 1
	}
	return &Controller{fetcher: fetcher, baseURL: baseURL, workers: workers}
}

// Summarize fetches the vendor totals report and extracts its records plus
// the name→id vendor index, then enriches each record with its id and PDF
// reference. Vendors without an index entry keep empty ones.
func (c *Controller) Summarize(ctx context.Context, p domain.Period) ([]domain.VendorSummary, *domain.VendorIndex, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("period", p.Describe()).Msg("fetching vendor totals")

	body, err := c.fetcher.FetchSummary(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	records, index := scrape.ParseVendorTotals(body)
	c.Enrich(records, index, p)

	logger.Info().Int("records", len(records)).Msg("parsed vendor totals")
	return records, index, nil
}

// Enrich attaches the vendor id and derived PDF reference to each record in
// place, keyed by vendor name through the index.
func (c *Controller) Enrich(records []domain.VendorSummary, index *domain.VendorIndex, p domain.Period) {
	for i := range records {
		id, ok := index.Get(records[i].Vendor)
		if !ok {
			records[i].VendorID = ""
			records[i].PDFURL = ""
			continue
		}
		records[i].VendorID = id
		records[i].PDFURL = query.PDFURL(c.baseURL, id, p, query.PDFDownload)
	}
}

// SummaryTotals accumulates a summary record set. Money sums are rounded to
// two decimal places.
func SummaryTotals(records []domain.VendorSummary) domain.Totals {
	var t domain.Totals
	for _, r := range records {
		t.Quantity += r.Quantity
		t.TotalSales += r.TotalPrice
		t.VendorAmount += r.VendorAmount
		t.RetainedAmount += r.RetainedAmount
	}
	t.RecordCount = len(records)
	t.VendorCount = len(records)
	roundTotals(&t)
	return t
}

// DetailTotals accumulates a detail item set; VendorCount is the number of
// distinct vendor names present.
func DetailTotals(items []domain.VendorDetailItem) domain.Totals {
	var t domain.Totals
	seen := make(map[string]struct{})
	for _, it := range items {
		t.Quantity += it.Quantity
		t.TotalSales += it.TotalPrice
		t.VendorAmount += it.VendorAmount
		t.RetainedAmount += it.RetainedAmount
		seen[it.Vendor] = struct{}{}
	}
	t.RecordCount = len(items)
	t.VendorCount = len(seen)
	roundTotals(&t)
	return t
}

// DailySales fetches a single day's vendor totals and maps them to the
// compact feed shape consumed by downstream integrations.
func (c *Controller) DailySales(ctx context.Context, date string) (domain.DailySales, error) {
	p := domain.NewDateRange(date, date)
	records, _, err := c.Summarize(ctx, p)
	if err != nil {
		return domain.DailySales{}, err
	}

	out := domain.DailySales{Date: date, Vendors: make([]domain.DailyVendorSale, 0, len(records))}
	for _, r := range records {
		out.Vendors = append(out.Vendors, domain.DailyVendorSale{
			VendorID:       r.VendorID,
			VendorName:     r.Vendor,
			TotalSales:     r.TotalPrice,
			VendorAmount:   r.VendorAmount,
			RetainedAmount: r.RetainedAmount,
		})
		out.Totals.TotalSales += r.TotalPrice
		out.Totals.TotalVendorAmount += r.VendorAmount
		out.Totals.TotalRetained += r.RetainedAmount
	}
	out.Totals.TotalSales = round2(out.Totals.TotalSales)
	out.Totals.TotalVendorAmount = round2(out.Totals.TotalVendorAmount)
	out.Totals.TotalRetained = round2(out.Totals.TotalRetained)
	out.Totals.VendorCount = len(out.Vendors)
	return out, nil
}

func roundTotals(t *domain.Totals) {
	t.TotalSales = round2(t.TotalSales)
	t.VendorAmount = round2(t.VendorAmount)
	t.RetainedAmount = round2(t.RetainedAmount)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
