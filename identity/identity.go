// Package identity resolves the numeric listing identifier that ties a row,
// its detail page, its photos and its inspection report together, and
// synthesizes the canonical URLs derived from it.
package identity

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/algajon/autosallon/treescan"
)

// Listing identifiers are all-digit and at least six digits long; shorter
// numbers collide with years, trim codes and pagination counters.
var idRx = regexp.MustCompile(`^\d{6,}$`)

var idKeyRx = regexp.MustCompile(`(?i)(carid|carno|car_id|car_no|carseq|cid)`)

// Query parameters that carry the listing id, checked in order.
var idParams = []string{"carid", "carId", "carno", "carNo", "cid", "seq", "car_seq"}

var pathIDRx = regexp.MustCompile(`/(?:cars/)?detail/(\d{6,})`)

var reportCarIDRx = regexp.MustCompile(`carid=(\d+)`)

// Valid reports whether the string is a plausible listing identifier.
func Valid(id string) bool {
	return idRx.MatchString(id)
}

// FromTree scans an embedded-state tree for a listing id under any key that
// looks id-like. Values are accepted only when they validate.
func FromTree(root any) string {
	for _, v := range treescan.All(root, treescan.Pattern(idKeyRx)) {
		if id := strings.TrimSpace(treescan.Text(v)); Valid(id) {
			return id
		}
	}
	return ""
}

// FromURL extracts a listing id from a URL: known query parameters first,
// then a /detail/{id} path segment.
func FromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err == nil {
		q := u.Query()
		for _, p := range idParams {
			if id := strings.TrimSpace(q.Get(p)); Valid(id) {
				return id
			}
		}
	}
	if m := pathIDRx.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}

// Extract resolves a listing id from the embedded state tree and the page
// URL, preferring the tree.
func Extract(root any, pageURL string) string {
	if id := FromTree(root); id != "" {
		return id
	}
	return FromURL(pageURL)
}

// ListingURL synthesizes the canonical mobile detail URL for an id.
func ListingURL(id string) string {
	return fmt.Sprintf("https://fem.encar.com/cars/detail/%s", id)
}

// LegacyListingURL synthesizes the legacy desktop detail URL for an id.
func LegacyListingURL(id string) string {
	return fmt.Sprintf("https://www.encar.com/dc/dc_cardetailview.do?carid=%s", id)
}

// ReportURL synthesizes the inspection report URL for an id.
func ReportURL(id string) string {
	return fmt.Sprintf("https://www.encar.com/md/sl/mdsl_regcar.do?method=inspectionViewNew&carid=%s", id)
}

// CanonicalizeReportURL maps any report-ish link to the one canonical
// inspection report URL for its listing. Already-canonical URLs pass
// through unchanged; links whose id cannot be recovered fall back to the
// id hint, and return "" when that is absent too.
func CanonicalizeReportURL(raw, idHint string) string {
	raw = strings.TrimSpace(raw)
	id := ""
	if u, err := url.Parse(raw); err == nil {
		id = strings.TrimSpace(u.Query().Get("carid"))
	}
	if !Valid(id) {
		id = ""
		if m := reportCarIDRx.FindStringSubmatch(raw); m != nil && Valid(m[1]) {
			id = m[1]
		}
	}
	if id == "" && Valid(idHint) {
		id = idHint
	}
	if id == "" {
		return ""
	}
	return ReportURL(id)
}
