package page

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Snapshot is a static Access over a fetched document. Every field is
// computed at construction, so one snapshot can serve concurrent readers;
// it never changes afterwards and does not implement Loader.
type Snapshot struct {
	url  string
	raw  string
	doc  *goquery.Document
	text string

	state    any
	hasState bool
}

var _ Access = (*Snapshot)(nil)

var wsRunRx = regexp.MustCompile(`[ \t\r\f\v]+`)
var blankLinesRx = regexp.MustCompile(`\n{2,}`)

// NewSnapshot parses rawHTML into a static page view anchored at pageURL.
func NewSnapshot(pageURL, rawHTML string) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	s := &Snapshot{url: pageURL, raw: rawHTML, doc: doc, text: renderText(doc)}
	if tree, ok := extractEmbeddedState(rawHTML); ok {
		s.state = tree
		s.hasState = true
	}
	return s, nil
}

func renderText(doc *goquery.Document) string {
	body := doc.Find("body")
	var t string
	if body.Length() > 0 {
		t = body.Text()
	} else {
		t = doc.Text()
	}
	t = wsRunRx.ReplaceAllString(t, " ")
	return strings.TrimSpace(blankLinesRx.ReplaceAllString(t, "\n"))
}

func (s *Snapshot) CurrentURL() string { return s.url }

func (s *Snapshot) HTML(ctx context.Context) (string, error) { return s.raw, nil }

func (s *Snapshot) RenderedText(ctx context.Context) (string, error) {
	return s.text, nil
}

func (s *Snapshot) EmbeddedState(ctx context.Context) (any, bool, error) {
	return s.state, s.hasState, nil
}

// QueryOuterHTML compiles the selector with cascadia directly; goquery's
// Find panics on selectors it cannot parse.
func (s *Snapshot) QueryOuterHTML(ctx context.Context, selector string) ([]string, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	var out []string
	var ferr error
	s.doc.FindMatcher(m).Each(func(_ int, sel *goquery.Selection) {
		h, err := goquery.OuterHtml(sel)
		if err != nil {
			ferr = err
			return
		}
		out = append(out, h)
	})
	return out, ferr
}

// Frames materializes srcdoc iframes as child snapshots. Remote-src frames
// cannot be resolved from a static document and are skipped.
func (s *Snapshot) Frames(ctx context.Context) ([]Access, error) {
	var frames []Access
	s.doc.Find("iframe[srcdoc]").Each(func(_ int, sel *goquery.Selection) {
		srcdoc, ok := sel.Attr("srcdoc")
		if !ok || strings.TrimSpace(srcdoc) == "" {
			return
		}
		child, err := NewSnapshot(s.url, srcdoc)
		if err != nil {
			return
		}
		frames = append(frames, child)
	})
	return frames, nil
}

var stateMarkerRx = regexp.MustCompile(`__PRELOADED_STATE__\s*=\s*`)

// extractEmbeddedState locates the page's inline state assignment and
// decodes the JSON object that follows it. The object end is found by
// brace counting, since the assignment shares its script tag with other
// statements.
func extractEmbeddedState(rawHTML string) (any, bool) {
	loc := stateMarkerRx.FindStringIndex(rawHTML)
	if loc == nil {
		return nil, false
	}
	blob, ok := balancedJSON(rawHTML[loc[1]:])
	if !ok {
		return nil, false
	}
	var tree any
	if err := json.Unmarshal([]byte(blob), &tree); err != nil {
		return nil, false
	}
	return tree, true
}

// balancedJSON returns the prefix of s spanning one complete JSON object
// or array, tracking string literals and escapes.
func balancedJSON(s string) (string, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" {
		return "", false
	}
	open := s[0]
	var closing byte
	switch open {
	case '{':
		closing = '}'
	case '[':
		closing = ']'
	default:
		return "", false
	}
	depth := 0
	inStr := false
	esc := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case esc:
			esc = false
		case inStr:
			if c == '\\' {
				esc = true
			} else if c == '"' {
				inStr = false
			}
		case c == '"':
			inStr = true
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
