package harvest

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/algajon/autosallon/identity"
	"github.com/algajon/autosallon/lexicon"
	"github.com/algajon/autosallon/money"
	"github.com/algajon/autosallon/page"
)

// Row selectors tried in order; the desktop result table first, then the
// mobile list markup, then generic fallbacks.
var rowSelectors = []string{
	`tbody#sr_normal tr[data-index]`,
	`tbody#sr_normal tr`,
	`ul#sr_normal li`,
	`div[class*="ItemBigImage"]`,
	`li[class*="ItemBigImage"]`,
	`tr[data-index]`,
	`li[data-index]`,
}

var detailHrefRx = regexp.MustCompile(`/cars/detail/\d{6,}|dc_cardetailview|carid=\d{6,}`)

var textCarIDRx = regexp.MustCompile(`carid=(\d{6,})`)

var rowTitleSelectors = []string{
	`a[href*="detail"]`,
	`.inf a`,
	`.cls`,
	`a`,
}

// HarvestDOM scans the rendered document for listing rows and, separately,
// for any detail link the row selectors missed. Anchors carrying an id but
// no surrounding row still become candidates with just id and href.
func HarvestDOM(ctx context.Context, pa page.Access) (*Candidates, error) {
	cs := NewCandidates()
	for _, sel := range rowSelectors {
		rows, err := pa.QueryOuterHTML(ctx, sel)
		if err != nil {
			continue
		}
		if len(rows) == 0 {
			continue
		}
		for _, rowHTML := range rows {
			if c, ok := candidateFromRow(rowHTML); ok {
				cs.Add(c)
			}
		}
		if cs.Len() > 0 {
			break
		}
	}
	anchors, err := pa.QueryOuterHTML(ctx, `a[href]`)
	if err != nil {
		return cs, err
	}
	for _, a := range anchors {
		href := attrValue(a, "href")
		if href == "" || !detailHrefRx.MatchString(href) {
			continue
		}
		id := identity.FromURL(href)
		if id == "" {
			continue
		}
		cs.Add(Candidate{ID: id, Href: href, Title: anchorText(a)})
	}
	// data-carid style attributes on arbitrary elements.
	tagged, err := pa.QueryOuterHTML(ctx, `[data-carid], [data-car-id], [data-carno]`)
	if err == nil {
		for _, el := range tagged {
			for _, attr := range []string{"data-carid", "data-car-id", "data-carno"} {
				if id := strings.TrimSpace(attrValue(el, attr)); identity.Valid(id) {
					cs.Add(Candidate{ID: id})
					break
				}
			}
		}
	}
	return cs, nil
}

// candidateFromRow digs a full candidate out of one row fragment.
func candidateFromRow(rowHTML string) (Candidate, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rowHTML))
	if err != nil {
		return Candidate{}, false
	}
	var c Candidate
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if id := identity.FromURL(href); id != "" {
			c.ID = id
			c.Href = href
			return false
		}
		return true
	})
	if c.ID == "" {
		for _, attr := range []string{"data-carid", "data-car-id", "data-carno"} {
			if id, ok := doc.Find("[" + attr + "]").First().Attr(attr); ok && identity.Valid(strings.TrimSpace(id)) {
				c.ID = strings.TrimSpace(id)
				break
			}
		}
	}
	if c.ID == "" {
		if m := textCarIDRx.FindStringSubmatch(rowHTML); m != nil {
			c.ID = m[1]
		}
	}
	if c.ID == "" {
		return Candidate{}, false
	}
	for _, sel := range rowTitleSelectors {
		if t := collapse(doc.Find(sel).First().Text()); t != "" {
			c.Title = t
			break
		}
	}
	if cands := money.CandidatesFromHTML(rowHTML); len(cands) > 0 {
		c.PriceNum = float64(money.Vote(cands, money.DefaultBand))
		c.HasPrice = c.PriceNum > 0
	}
	if txt := collapse(doc.Find(`.prc, [class*="price"], [class*="prc"]`).First().Text()); txt != "" {
		c.PriceText = txt
	}
	c.RowHTML = rowHTML
	return c, true
}

func attrValue(fragment, name string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	v, _ := doc.Find("[" + name + "]").First().Attr(name)
	return strings.TrimSpace(v)
}

func anchorText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return collapse(doc.Find("a").First().Text())
}

var spaceRx = regexp.MustCompile(`\s+`)

func collapse(s string) string {
	return strings.TrimSpace(spaceRx.ReplaceAllString(s, " "))
}

// RowHints holds the extra fields a list row exposes before any detail page
// is opened: the inline panel with color and seating, plus the inspection
// report link when the row carries one.
type RowHints struct {
	Color     string
	Seats     int
	EngineCC  int64
	ReportURL string
}

// HarvestRowHints pulls the inline panel fields out of one row's HTML.
func HarvestRowHints(rowHTML string) RowHints {
	var h RowHints
	if strings.TrimSpace(rowHTML) == "" {
		return h
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rowHTML))
	if err != nil {
		return h
	}
	for label, value := range specPairs(doc) {
		switch {
		case h.Color == "" && colorLabelRx.MatchString(label):
			h.Color = value
		case h.Seats == 0 && seatLabelRx.MatchString(label):
			h.Seats = lexicon.Seats(value)
		case h.EngineCC == 0 && engineLabelRx.MatchString(label):
			h.EngineCC = lexicon.Digits(value)
		}
	}
	if h.Seats == 0 {
		if m := seatFreeformRx.FindStringSubmatch(doc.Text()); m != nil {
			h.Seats = lexicon.Seats(m[0])
		}
	}
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if reportHrefRx.MatchString(href) {
			h.ReportURL = strings.TrimSpace(href)
			return false
		}
		return true
	})
	return h
}
