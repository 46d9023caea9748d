package scrape

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// The portal never prints a vendor's id as text. The only place it appears is
// the query string of the per-row PDF link, as a repeated array-style key.
var vendorIDPattern = regexp.MustCompile(`apVendorId\[\]=(\d+)`)

// VendorID recovers a vendor's opaque id from the links inside a table row.
// Anchors are scanned in document order and the first match wins. Returns ""
// when no link carries an id; callers record that absence rather than fail.
func VendorID(row *goquery.Selection) string {
	var id string
	row.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if m := vendorIDPattern.FindStringSubmatch(href); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	return id
}
