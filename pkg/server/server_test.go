package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
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

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.Nop()

	mockSales := new(mockSalesService)

	webAPI := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Sales: mockSales,
		},
	})
	testServer := httptest.NewServer(webAPI.Router())
	defer testServer.Close()

	tests := []struct {
		name           string
		path           string
		setupMocks     func()
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name: "GetDailySales",
			path: "/api/v1/sales/daily?date=12/11/2025",
			setupMocks: func() {
				mockSales.On("DailySales", mock.Anything, "12/11/2025").
					Return(domain.DailySales{
						Date: "12/11/2025",
						Vendors: []domain.DailyVendorSale{
							{VendorID: "42", VendorName: "Acme Co", TotalSales: 140, VendorAmount: 70, RetainedAmount: 70},
						},
						Totals: domain.DailyTotals{
							TotalSales:        140,
							TotalVendorAmount: 70,
							TotalRetained:     70,
							VendorCount:       1,
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var feed api.DailySales
				require.NoError(t, json.Unmarshal(body, &feed))
				assert.Equal(t, "12/11/2025", feed.Date)
				require.Len(t, feed.Vendors, 1)
				assert.Equal(t, "Acme Co", feed.Vendors[0].VendorName)
				assert.Equal(t, 140.0, feed.Totals.TotalSales)
			},
		},
		{
			name:           "GetDailySales_InvalidDate",
			path:           "/api/v1/sales/daily?date=not-a-date",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				assert.Equal(t, "invalid date, expected MM/DD/YYYY\n", string(body))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			tc.check(t, body)
		})
	}
}
