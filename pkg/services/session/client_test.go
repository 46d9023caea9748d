package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
	"github.com/nrs-tools/vendor-atlas/pkg/scrape/query"
	"github.com/nrs-tools/vendor-atlas/pkg/services/config"
)

type portalStub struct {
	loginBody  string
	reportBody string
	reportCode int
	pdfBody    []byte
	pdfType    string
	requests   atomic.Int64
	lastLogin  map[string]string
	lastQuery  map[string]string
	sawLogout  atomic.Bool
}

func (p *portalStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		p.requests.Add(1)
		if r.URL.Query().Get("applicationAction") == "logout" {
			p.sawLogout.Store(true)
			return
		}
		if r.Method == http.MethodPost {
			_ = r.ParseForm()
			p.lastLogin = map[string]string{}
			for k := range r.PostForm {
				p.lastLogin[k] = r.PostForm.Get(k)
			}
			_, _ = w.Write([]byte(p.loginBody))
			return
		}
		_, _ = w.Write([]byte("<html>login form</html>"))
	})
	mux.HandleFunc("/ap/apVendorInventoryTotals", func(w http.ResponseWriter, r *http.Request) {
		p.requests.Add(1)
		p.lastQuery = map[string]string{}
		for k := range r.URL.Query() {
			p.lastQuery[k] = r.URL.Query().Get(k)
		}
		if p.reportCode != 0 {
			w.WriteHeader(p.reportCode)
			return
		}
		_, _ = w.Write([]byte(p.reportBody))
	})
	mux.HandleFunc("/ap/vendorInventorySalesPDF", func(w http.ResponseWriter, r *http.Request) {
		p.requests.Add(1)
		if p.pdfType != "" {
			w.Header().Set("Content-Type", p.pdfType)
		}
		_, _ = w.Write(p.pdfBody)
	})
	return mux
}

func newTestClient(t *testing.T, stub *portalStub, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.Settings{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
		SweepWorkers:   1,
	}, config.Credentials{Username: "user@example.com", Password: "hunter2"}, opts...)
	require.NoError(t, err)
	return client
}

func TestClient_Login_Confirmed(t *testing.T) {
	stub := &portalStub{loginBody: `<html><a href="/?applicationAction=logout">Log Out</a></html>`}
	client := newTestClient(t, stub)

	err := client.Login(context.Background())

	require.NoError(t, err)
	assert.Equal(t, LoggedIn, client.State())
	assert.Equal(t, "user@example.com", stub.lastLogin["username"])
	assert.Equal(t, "hunter2", stub.lastLogin["password"])
	assert.Equal(t, "loginForm", stub.lastLogin["form"])
	assert.Equal(t, "useCookie", stub.lastLogin["useCookie"])
	assert.Equal(t, "Log In", stub.lastLogin["loginFormSubmit"])
}

func TestClient_Login_Rejected(t *testing.T) {
	stub := &portalStub{loginBody: `<html>Invalid username or password</html>`}
	client := newTestClient(t, stub)

	err := client.Login(context.Background())

	assert.ErrorIs(t, err, ErrLoginRejected)
	assert.Equal(t, LoggedOut, client.State())
}

func TestClient_Login_UnknownPageIsTentativeSuccess(t *testing.T) {
	stub := &portalStub{loginBody: `<html>Welcome to your dashboard</html>`}
	client := newTestClient(t, stub)

	err := client.Login(context.Background())

	require.NoError(t, err)
	assert.Equal(t, LoggedIn, client.State())
}

func TestClient_Login_CustomCheck(t *testing.T) {
	stub := &portalStub{loginBody: `<html>anything</html>`}
	client := newTestClient(t, stub, WithLoginCheck(func(string) LoginStatus {
		return LoginRejected
	}))

	err := client.Login(context.Background())

	assert.ErrorIs(t, err, ErrLoginRejected)
}

func TestClient_FetchWhileLoggedOut(t *testing.T) {
	stub := &portalStub{}
	client := newTestClient(t, stub)
	p := domain.NewYearPeriod(2025)

	_, err := client.FetchSummary(context.Background(), p)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = client.FetchVendorDetail(context.Background(), "42", p)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = client.FetchVendorPDF(context.Background(), "42", p, query.PDFDownload)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.EqualValues(t, 0, stub.requests.Load(), "logged-out calls must not reach the network")
}

func TestClient_FetchSummary(t *testing.T) {
	stub := &portalStub{
		loginBody:  "Log Out",
		reportBody: "<html>report</html>",
	}
	client := newTestClient(t, stub)
	require.NoError(t, client.Login(context.Background()))

	body, err := client.FetchSummary(context.Background(), domain.NewMonthPeriod(12, 2025))

	require.NoError(t, err)
	assert.Equal(t, "<html>report</html>", body)
	assert.Equal(t, "yes", stub.lastQuery["go"])
	assert.Equal(t, "1", stub.lastQuery["search"])
	assert.Equal(t, "apVendorId", stub.lastQuery["frmGrouping"])
	assert.Equal(t, "12", stub.lastQuery["frmMonth"])
	assert.Equal(t, "2025", stub.lastQuery["frmYear"])
}

func TestClient_FetchVendorDetail(t *testing.T) {
	stub := &portalStub{
		loginBody:  "Log Out",
		reportBody: "<html>detail</html>",
	}
	client := newTestClient(t, stub)
	require.NoError(t, client.Login(context.Background()))

	body, err := client.FetchVendorDetail(context.Background(), "42", domain.NewYearPeriod(2025))

	require.NoError(t, err)
	assert.Equal(t, "<html>detail</html>", body)
	assert.Equal(t, "invStockId", stub.lastQuery["frmGrouping"])
	assert.Equal(t, "42", stub.lastQuery["apVendorId[]"])
}

func TestClient_FetchSummary_ServerErrorDegradesToEmpty(t *testing.T) {
	stub := &portalStub{loginBody: "Log Out", reportCode: http.StatusInternalServerError}
	client := newTestClient(t, stub)
	require.NoError(t, client.Login(context.Background()))

	body, err := client.FetchSummary(context.Background(), domain.NewYearPeriod(2025))

	require.NoError(t, err, "transient failures degrade to an empty report")
	assert.Empty(t, body)
}

func TestClient_FetchVendorPDF(t *testing.T) {
	stub := &portalStub{
		loginBody: "Log Out",
		pdfBody:   []byte("%PDF-1.4 fake"),
		pdfType:   "application/pdf",
	}
	client := newTestClient(t, stub)
	require.NoError(t, client.Login(context.Background()))

	data, err := client.FetchVendorPDF(context.Background(), "42", domain.NewMonthPeriod(1, 2025), query.PDFDownload)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
}

func TestClient_FetchVendorPDF_WrongContentType(t *testing.T) {
	stub := &portalStub{
		loginBody: "Log Out",
		pdfBody:   []byte("<html>error page</html>"),
		pdfType:   "text/html",
	}
	client := newTestClient(t, stub)
	require.NoError(t, client.Login(context.Background()))

	_, err := client.FetchVendorPDF(context.Background(), "42", domain.NewYearPeriod(2025), query.PDFView)

	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestClient_Logout_Idempotent(t *testing.T) {
	stub := &portalStub{loginBody: "Log Out"}
	client := newTestClient(t, stub)
	require.NoError(t, client.Login(context.Background()))

	client.Logout(context.Background())
	assert.Equal(t, LoggedOut, client.State())
	assert.True(t, stub.sawLogout.Load())

	before := stub.requests.Load()
	client.Logout(context.Background())
	assert.Equal(t, LoggedOut, client.State())
	assert.Equal(t, before, stub.requests.Load(), "second logout is a no-op")
}

func TestSentinelLoginCheck(t *testing.T) {
	cases := []struct {
		body string
		want LoginStatus
	}{
		{`<a>Log Out</a>`, LoginConfirmed},
		{`href="/?applicationAction=logout"`, LoginConfirmed},
		{`Invalid credentials`, LoginRejected},
		{`your password is incorrect`, LoginRejected},
		{`<html>something else</html>`, LoginUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SentinelLoginCheck(tc.body), "body %q", tc.body)
	}
}

func TestClient_Login_EntryPageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.Settings{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
	}, config.Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)

	err = client.Login(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrLoginRejected))
	assert.Equal(t, LoggedOut, client.State())
}
