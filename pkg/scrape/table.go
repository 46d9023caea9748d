package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
)

const (
	reportTableSelector = "table#ListSectionTable"
	dataRowSelector     = "tr.Hover"
)

// Row is one data row of a report table: the stripped cell texts plus the
// vendor id recovered from the row's links.
type Row struct {
	Cells    []string
	VendorID string
}

// schema describes one report table kind: the minimum number of cells a data
// row must carry, and the decoder mapping fixed cell positions to a record.
// Cells are addressed by position because the portal renders no stable header
// markup to key on.
type schema[T any] struct {
	minColumns int
	decode     func(Row) T
}

// records walks the report table and decodes each data row through s. A
// document without the table yields nil: the portal answers some queries with
// a search form instead of a report, and that is "no data", not a failure.
// Rows shorter than the schema minimum are skipped; row order is preserved.
func records[T any](doc *goquery.Document, s schema[T]) []T {
	var out []T
	doc.Find(reportTableSelector).First().Find(dataRowSelector).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td").Map(func(_ int, td *goquery.Selection) string {
			return strings.TrimSpace(td.Text())
		})
		if len(cells) < s.minColumns {
			return
		}
		out = append(out, s.decode(Row{Cells: cells, VendorID: VendorID(tr)}))
	})
	return out
}

var summarySchema = schema[domain.VendorSummary]{
	minColumns: 6,
	decode: func(r Row) domain.VendorSummary {
		return domain.VendorSummary{
			Vendor:           r.Cells[0],
			Quantity:         ParseInt(r.Cells[1]),
			TotalPrice:       ParseCurrency(r.Cells[2]),
			VendorPaymentPct: ParsePercent(r.Cells[3]),
			VendorAmount:     ParseCurrency(r.Cells[4]),
			RetainedAmount:   ParseCurrency(r.Cells[5]),
			VendorID:         r.VendorID,
		}
	},
}

func detailSchema(vendorName, vendorID string) schema[domain.VendorDetailItem] {
	return schema[domain.VendorDetailItem]{
		minColumns: 7,
		decode: func(r Row) domain.VendorDetailItem {
			return domain.VendorDetailItem{
				Vendor:         vendorName,
				VendorID:       vendorID,
				StockNumber:    r.Cells[0],
				ItemName:       r.Cells[1],
				Description:    r.Cells[2],
				Quantity:       ParseInt(r.Cells[3]),
				TotalPrice:     ParseCurrency(r.Cells[4]),
				VendorAmount:   ParseCurrency(r.Cells[5]),
				RetainedAmount: ParseCurrency(r.Cells[6]),
			}
		},
	}
}

// ParseVendorTotals extracts the vendor-grouped summary report. The returned
// index maps vendor name to id in table order; vendors whose row carried no
// PDF link are absent from the index.
func ParseVendorTotals(html string) ([]domain.VendorSummary, *domain.VendorIndex) {
	index := domain.NewVendorIndex()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, index
	}
	summaries := records(doc, summarySchema)
	for _, s := range summaries {
		if s.VendorID != "" {
			index.Add(s.Vendor, s.VendorID)
		}
	}
	return summaries, index
}

// ParseVendorDetail extracts the item-grouped detail report for one vendor.
func ParseVendorDetail(html, vendorName, vendorID string) []domain.VendorDetailItem {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return records(doc, detailSchema(vendorName, vendorID))
}
