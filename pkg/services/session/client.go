// Package session owns the authenticated connection to the accounting portal.
// One Client holds one cookie-backed transport and must not be shared across
// logical sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"

	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
	"github.com/nrs-tools/vendor-atlas/pkg/scrape/query"
	"github.com/nrs-tools/vendor-atlas/pkg/services/config"
)

const (
	reportPath = "/ap/apVendorInventoryTotals"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var (
	ErrNotAuthenticated = errors.New("session is not authenticated")
	ErrLoginRejected    = errors.New("login rejected: invalid credentials")
	ErrNotPDF           = errors.New("response is not a PDF payload")
)

// State tracks the session lifecycle.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

// LoginStatus is the verdict a LoginCheck reaches about a login response.
type LoginStatus int

const (
	// LoginUnknown means the page shape was not recognized. The portal does
	// not reliably signal session state in the response body, so unknown is
	// treated as tentative success.
	LoginUnknown LoginStatus = iota
	LoginConfirmed
	LoginRejected
)

// LoginCheck inspects a login response body and decides whether the session
// was established. Pluggable so the heuristic can be replaced without
// touching the state machine.
type LoginCheck func(body string) LoginStatus

// SentinelLoginCheck is the default heuristic: a "Log Out" control or a
// logout action link confirms the session; an invalid-credentials phrase
// rejects it; anything else is unknown.
func SentinelLoginCheck(body string) LoginStatus {
	if strings.Contains(body, "Log Out") || strings.Contains(body, "applicationAction=logout") {
		return LoginConfirmed
	}
	if strings.Contains(body, "Invalid") || strings.Contains(strings.ToLower(body), "incorrect") {
		return LoginRejected
	}
	return LoginUnknown
}

// Client issues authenticated report, detail, and PDF requests.
type Client struct {
	http  *resty.Client
	creds config.Credentials
	check LoginCheck
	state State
}

// Option customizes a Client.
type Option func(*Client)

// WithLoginCheck swaps the login detection heuristic.
func WithLoginCheck(check LoginCheck) Option {
	return func(c *Client) { c.check = check }
}

// NewClient builds a logged-out client for the portal named in settings.
func NewClient(settings *config.Settings, creds config.Credentials, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := resty.New().
		SetBaseURL(settings.BaseURL).
		SetCookieJar(jar).
		SetTimeout(settings.RequestTimeout).
		SetHeader("User-Agent", userAgent)

	c := &Client{
		http:  httpClient,
		creds: creds,
		check: SentinelLoginCheck,
		state: LoggedOut,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) State() State {
	return c.state
}

// Login fetches the entry page to seed the session cookie, then submits the
// portal's login form. A transport failure on either request fails fast; an
// unrecognized response page is accepted as tentative success.
func (c *Client) Login(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	resp, err := c.http.R().SetContext(ctx).Get("/")
	if err != nil {
		return fmt.Errorf("failed to load login page: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("failed to load login page: status %s", resp.Status())
	}

	resp, err = c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username":        c.creds.Username,
			"password":        c.creds.Password,
			"useCookie":       "useCookie",
			"form":            "loginForm",
			"loginFormSubmit": "Log In",
			"ReturnTo":        "",
		}).
		Post("/")
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}

	switch c.check(resp.String()) {
	case LoginConfirmed:
		c.state = LoggedIn
		logger.Info().Msg("login successful")
		return nil
	case LoginRejected:
		return ErrLoginRejected
	default:
		c.state = LoggedIn
		logger.Warn().Msg("login response not recognized, assuming session established")
		return nil
	}
}

// FetchSummary retrieves the vendor-grouped totals report for the period.
// Transport failures and non-2xx answers degrade to an empty document so the
// parse layer naturally yields zero records.
func (c *Client) FetchSummary(ctx context.Context, p domain.Period) (string, error) {
	if c.state != LoggedIn {
		return "", ErrNotAuthenticated
	}
	params := query.ReportParams(p)
	params.Set("go", "yes")
	params.Set("search", "1")
	params.Set("frmGrouping", query.GroupByVendor)
	return c.fetchReport(ctx, params)
}

// FetchVendorDetail retrieves the item-grouped report filtered to one vendor.
func (c *Client) FetchVendorDetail(ctx context.Context, vendorID string, p domain.Period) (string, error) {
	if c.state != LoggedIn {
		return "", ErrNotAuthenticated
	}
	params := query.ReportParams(p)
	params.Set("go", "yes")
	params.Set("search", "1")
	params.Set("frmGrouping", query.GroupByItem)
	params.Set("apVendorId[]", vendorID)
	return c.fetchReport(ctx, params)
}

func (c *Client) fetchReport(ctx context.Context, params url.Values) (string, error) {
	logger := zerolog.Ctx(ctx)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(reportPath)
	if err != nil {
		logger.Warn().Err(err).Msg("report request failed, treating as empty report")
		return "", nil
	}
	if !resp.IsSuccess() {
		logger.Warn().Str("status", resp.Status()).Msg("report request not OK, treating as empty report")
		return "", nil
	}
	return resp.String(), nil
}

// FetchVendorPDF downloads one vendor's PDF artifact. Unlike report fetches
// this fails loudly: a non-2xx answer or a non-PDF payload is an error, and
// no partial content is returned.
func (c *Client) FetchVendorPDF(ctx context.Context, vendorID string, p domain.Period, mode query.PDFMode) ([]byte, error) {
	if c.state != LoggedIn {
		return nil, ErrNotAuthenticated
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get(query.PDFURL(c.http.BaseURL, vendorID, p, mode))
	if err != nil {
		return nil, fmt.Errorf("pdf request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("pdf request returned status %s", resp.Status())
	}
	if !strings.Contains(resp.Header().Get("Content-Type"), "application/pdf") {
		return nil, ErrNotPDF
	}
	return resp.Body(), nil
}

// Logout ends the portal session. Safe to call unconditionally at teardown: a
// logged-out client is a no-op, and a failed logout request still drops the
// local session state.
func (c *Client) Logout(ctx context.Context) {
	if c.state != LoggedIn {
		return
	}
	_, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("applicationAction", "logout").
		Get("/")
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("logout request failed")
	}
	c.state = LoggedOut
}
