package sales

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/nrs-tools/vendor-atlas/pkg/models/api"
	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
)

const dateLayout = "01/02/2006"

// Service is the slice of the report controller the handler depends on.
type Service interface {
	DailySales(ctx context.Context, date string) (domain.DailySales, error)
}

type Handler struct {
	sales Service
}

func NewHandler(sales Service) *Handler {
	return &Handler{sales: sales}
}

// GetDailySales serves GET /api/v1/sales/daily?date=MM/DD/YYYY. Without a
// date parameter it reports yesterday, matching the feed's original contract.
func (h *Handler) GetDailySales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().AddDate(0, 0, -1).Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		http.Error(w, "invalid date, expected MM/DD/YYYY", http.StatusBadRequest)
		return
	}

	report, err := h.sales.DailySales(ctx, date)
	if err != nil {
		logger.Error().Err(err).Str("date", date).Msg("failed to fetch daily sales")
		http.Error(w, "failed to fetch daily sales", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toAPI(report)); err != nil {
		logger.Error().Err(err).Msg("failed to encode daily sales")
	}
}

func toAPI(d domain.DailySales) api.DailySales {
	out := api.DailySales{
		Date:    d.Date,
		Vendors: make([]api.DailyVendorSale, 0, len(d.Vendors)),
		Totals: api.DailyTotals{
			TotalSales:        d.Totals.TotalSales,
			TotalVendorAmount: d.Totals.TotalVendorAmount,
			TotalRetained:     d.Totals.TotalRetained,
			VendorCount:       d.Totals.VendorCount,
		},
	}
	for _, v := range d.Vendors {
		out.Vendors = append(out.Vendors, api.DailyVendorSale{
			VendorID:       v.VendorID,
			VendorName:     v.VendorName,
			TotalSales:     v.TotalSales,
			VendorAmount:   v.VendorAmount,
			RetainedAmount: v.RetainedAmount,
		})
	}
	return out
}
