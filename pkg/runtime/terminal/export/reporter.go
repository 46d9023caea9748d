package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
)

// Reporter renders run summaries and the daily sales table on the console.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type totalsView struct {
	Label  string
	Period string
	Detail bool
	Totals domain.Totals
}

// Totals prints the aggregate block for a summary or detail record set.
func (c *Reporter) Totals(period string, detail bool, totals domain.Totals) error {
	tmpl := `
--- {{.Label}} for {{.Period}} ---
{{if .Detail}}Total Items: {{.Totals.RecordCount}}
Unique Vendors: {{.Totals.VendorCount}}
{{else}}Vendors: {{.Totals.RecordCount}}
{{end}}Total Quantity: {{.Totals.Quantity}}
Total Sales: ${{printf "%.2f" .Totals.TotalSales}}
Total Vendor Amount: ${{printf "%.2f" .Totals.VendorAmount}}
Total Retained: ${{printf "%.2f" .Totals.RetainedAmount}}
`
	t, err := template.New("totals").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	label := "Summary"
	if detail {
		label = "Detail"
	}
	return t.Execute(c.writer, totalsView{Label: label, Period: period, Detail: detail, Totals: totals})
}

// DailyTable prints the daily vendor sales feed as a fixed-width table.
func (c *Reporter) DailyTable(d domain.DailySales) error {
	funcMap := template.FuncMap{
		"row": func(id, name string, sales, vendorAmt, retained float64) string {
			if len(name) > 30 {
				name = name[:30]
			}
			return fmt.Sprintf("%-8s %-30s $%9.2f $%11.2f $%9.2f", id, name, sales, vendorAmt, retained)
		},
		"rule": func() string {
			return strings.Repeat("-", 70)
		},
		"banner": func() string {
			return strings.Repeat("=", 70)
		},
	}

	tmpl := `
{{banner}}
  DAILY VENDOR SALES - {{.Date}}
{{banner}}
{{printf "%-8s %-30s %10s %12s %10s" "ID" "Vendor" "Sales" "Vendor Amt" "Retained"}}
{{rule}}
{{range .Vendors}}{{row .VendorID .VendorName .TotalSales .VendorAmount .RetainedAmount}}
{{end}}{{rule}}
TOTAL    {{.Totals.VendorCount}} vendors{{printf "%22s" ""}} ${{printf "%.2f" .Totals.TotalSales}} ${{printf "%.2f" .Totals.TotalVendorAmount}} ${{printf "%.2f" .Totals.TotalRetained}}
{{banner}}
`
	t, err := template.New("daily").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, d)
}
