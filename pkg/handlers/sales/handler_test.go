package sales

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nrs-tools/vendor-atlas/pkg/models/api"
	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
)

type mockSalesService struct {
	mock.Mock
}

func (m *mockSalesService) DailySales(ctx context.Context, date string) (domain.DailySales, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(domain.DailySales), args.Error(1)
}

func TestGetDailySales(t *testing.T) {
	svc := new(mockSalesService)
	svc.On("DailySales", mock.Anything, "12/11/2025").Return(domain.DailySales{
		Date: "12/11/2025",
		Vendors: []domain.DailyVendorSale{
			{VendorID: "42", VendorName: "Acme Co", TotalSales: 100, VendorAmount: 50, RetainedAmount: 50},
		},
		Totals: domain.DailyTotals{TotalSales: 100, TotalVendorAmount: 50, TotalRetained: 50, VendorCount: 1},
	}, nil)

	h := NewHandler(svc)
	rec := httptest.NewRecorder()
	h.GetDailySales(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sales/daily?date=12/11/2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body api.DailySales
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "12/11/2025", body.Date)
	require.Len(t, body.Vendors, 1)
	assert.Equal(t, "42", body.Vendors[0].VendorID)
	assert.Equal(t, 1, body.Totals.VendorCount)
}

func TestGetDailySales_DefaultsToYesterday(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)

	svc := new(mockSalesService)
	svc.On("DailySales", mock.Anything, yesterday).
		Return(domain.DailySales{Date: yesterday}, nil)

	h := NewHandler(svc)
	rec := httptest.NewRecorder()
	h.GetDailySales(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sales/daily", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestGetDailySales_InvalidDate(t *testing.T) {
	svc := new(mockSalesService)
	h := NewHandler(svc)

	rec := httptest.NewRecorder()
	h.GetDailySales(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sales/daily?date=2025-12-11", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "DailySales")
}

func TestGetDailySales_ServiceFailure(t *testing.T) {
	svc := new(mockSalesService)
	svc.On("DailySales", mock.Anything, "12/11/2025").
		Return(domain.DailySales{}, errors.New("portal down"))

	h := NewHandler(svc)
	rec := httptest.NewRecorder()
	h.GetDailySales(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sales/daily?date=12/11/2025", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
