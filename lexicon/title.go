package lexicon

import (
	"regexp"
	"strings"
)

// Tokens that start the variant/trim part of a listing title.
var variantTokenRx = regexp.MustCompile(`(?i)(xdrive|quattro|[0-9]{1,2}\.[0-9]|[a-z]\d|\d[a-z]|gti|gtd|gt|tdi|fsi|fwd|awd|4wd|sport|luxury|premium|line|m\s?\d+|amg|s\s?line)`)

var digitRx = regexp.MustCompile(`\d`)

// SplitTitle splits a listing title into brand, model and variant. The
// first token is the brand (mapped through the brand table); the variant
// starts at the first trim-looking token, or at the first numeric token
// past the model name.
func (n *Normalizer) SplitTitle(title string) (brand, model, variant string) {
	if title == "" {
		return "", "", ""
	}
	t := strings.Join(strings.Fields(strings.ReplaceAll(title, "·", " ")), " ")
	toks := strings.Split(t, " ")
	if len(toks) == 1 {
		return toks[0], "", ""
	}
	brand = n.Brand(toks[0])

	idx := -1
	for i := 1; i < len(toks); i++ {
		if variantTokenRx.MatchString(toks[i]) {
			idx = i
			break
		}
		if i > 1 && digitRx.MatchString(toks[i]) {
			idx = i
			break
		}
	}
	if idx < 0 {
		if len(toks) > 2 {
			model = strings.Join(toks[1:len(toks)-1], " ")
			variant = toks[len(toks)-1]
		} else {
			model = toks[1]
		}
	} else {
		model = strings.Join(toks[1:idx], " ")
		variant = strings.Join(toks[idx:], " ")
	}
	return strings.TrimSpace(brand), strings.TrimSpace(model), strings.TrimSpace(variant)
}
