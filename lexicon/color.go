package lexicon

import (
	"regexp"
	"strings"
)

// Finish and quality adjectives carry no hue information and are stripped
// before lookup.
var finishWordsRx = regexp.MustCompile(`(?i)\b(metallic|metal|met|pearl|pearlcoat|pearl-coat|pearlized|pearly|pearl effect|` +
	`matte|matt|flat|satin|gloss|glossy|solid|standard|classic|premium|effect|` +
	`coat|tri-coat|triple coat|two-tone|bi-tone|dual tone)\b`)

var (
	grayFamilyRx     = regexp.MustCompile(`\b(graphite|gunmetal|charcoal|magnetic|slate|titanium)\b`)
	silverFamilyRx   = regexp.MustCompile(`\b(silver|argent|platinum|chrome)\b`)
	grayKoreanRx     = regexp.MustCompile(`그레이|회색`)
	silverKoreanRx   = regexp.MustCompile(`실버|은색`)
	whitespaceRx     = regexp.MustCompile(`\s+`)
	separatorCharsRx = regexp.MustCompile(`[/\-]`)
)

// CleanLabel flattens separators, strips finish adjectives and collapses
// whitespace. The result may be empty.
func CleanLabel(s string) string {
	if s == "" {
		return ""
	}
	t := separatorCharsRx.ReplaceAllString(s, " ")
	t = finishWordsRx.ReplaceAllString(t, "")
	return strings.TrimSpace(whitespaceRx.ReplaceAllString(t, " "))
}

// Color resolves a raw exterior color label to the target vocabulary.
// Lookup order: exact cleaned label, then per-token, then color-family
// heuristics. An unmatched Hangul label yields ColorUnknown; an unmatched
// Latin label passes through cleaned, so rare English names survive.
func (n *Normalizer) Color(raw string) string {
	t := CleanLabel(raw)
	if t == "" {
		return ColorUnknown
	}
	key := strings.ToLower(t)
	if out, ok := n.color[key]; ok {
		return out
	}
	for _, tok := range strings.Fields(key) {
		if out, ok := n.color[tok]; ok {
			return out
		}
	}
	switch {
	case grayFamilyRx.MatchString(key):
		return "Gri"
	case silverFamilyRx.MatchString(key):
		return "Argjendtë"
	case grayKoreanRx.MatchString(key):
		return "Gri"
	case silverKoreanRx.MatchString(key):
		return "Argjendtë"
	}
	if IsKorean(t) {
		return ColorUnknown
	}
	return t
}
