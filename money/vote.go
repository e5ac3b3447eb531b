package money

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Band is the [Min, Max] range within which a parsed price is credible.
type Band struct {
	Min int64
	Max int64
}

// DefaultBand covers realistic used-vehicle transaction prices in KRW.
var DefaultBand = Band{Min: 3_000_000, Max: 400_000_000}

// Vote selects the single best price among candidates: drop everything
// outside the band, take the most frequent survivor, break ties with the
// larger amount. Returns 0 when nothing survives. Redundant readings of the
// same real price agree, so the mode is robust against one-off misparses.
func Vote(candidates []int64, band Band) int64 {
	counts := make(map[int64]int)
	for _, c := range candidates {
		if c >= band.Min && c <= band.Max {
			counts[c]++
		}
	}
	var best int64
	bestCount := 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v > best) {
			best, bestCount = v, n
		}
	}
	return best
}

// priceCellRx picks out markup regions whose class or id smells like a price
// cell.
var priceCellRx = regexp.MustCompile(`(?is)<(?:td|div|span)[^>]*(?:class|id)\s*=\s*"[^"]*(?:prc|price|pay)[^"]*"[^>]*>.*?</(?:td|div|span)>`)

var priceNumRuns = []struct {
	rx *regexp.Regexp
	fn func(m []string) int64
}{
	{regexp.MustCompile(`[₩￦]\s*([\d,.]{4,})`), digitsOnly},
	{regexp.MustCompile(`(\d[\d,.]{2,})\s*(?:won\b|원)`), digitsOnly},
}

func digitsOnly(m []string) int64 {
	s := strings.NewReplacer(",", "", ".", "").Replace(m[1])
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int64(r-'0')
	}
	return n
}

// CandidatesFromHTML extracts every plausible price reading from a row's
// raw markup: price-flavored cells are stripped to text and run through the
// full grammar plus targeted numeric scans. Duplicates are removed
// preserving first-seen order; chunks mentioning distance are skipped.
func CandidatesFromHTML(rawHTML string) []int64 {
	if rawHTML == "" {
		return nil
	}
	var cands []int64
	for _, chunk := range PriceChunks(rawHTML) {
		if v := ParseKRW(chunk); v > 0 {
			cands = append(cands, v)
		}
		for _, run := range priceNumRuns {
			for _, m := range run.rx.FindAllStringSubmatch(chunk, -1) {
				if v := run.fn(m); v > 0 {
					cands = append(cands, v)
				}
			}
		}
		if m := eokManRx.FindStringSubmatch(chunk); m != nil {
			if v := ParseKRW(m[0]); v > 0 {
				cands = append(cands, v)
			}
		}
		for _, m := range manRx.FindAllStringSubmatch(chunk, -1) {
			if v := ParseKRW(m[0]); v > 0 {
				cands = append(cands, v)
			}
		}
	}
	seen := make(map[int64]struct{}, len(cands))
	out := cands[:0]
	for _, v := range cands {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// PriceChunks returns the text of every price-flavored cell in the markup,
// falling back to the whole fragment as one chunk. Chunks adjacent to a
// distance marker are dropped.
func PriceChunks(rawHTML string) []string {
	var chunks []string
	for _, piece := range priceCellRx.FindAllString(rawHTML, -1) {
		txt := StripTags(piece)
		if txt != "" && !distanceRx.MatchString(txt) {
			chunks = append(chunks, txt)
		}
	}
	if len(chunks) == 0 {
		txt := StripTags(rawHTML)
		if txt != "" && !distanceRx.MatchString(txt) {
			chunks = append(chunks, txt)
		}
	}
	return chunks
}

// StripTags flattens an HTML fragment to its text content with collapsed
// whitespace.
func StripTags(fragment string) string {
	tok := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(tok.Text())
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
