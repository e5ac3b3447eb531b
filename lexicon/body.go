package lexicon

import (
	"regexp"
	"strings"
)

// Model names that imply an SUV body when nothing explicit is present.
var suvModelRx = regexp.MustCompile(`(?i)\b(range rover|land cruiser|x\d{1}|gl[es]|gle|glb|glc|q[34578]|sq[34578]|xc[46]0|tucson|sorento|sportage|rav4|cr-v|cx-[35]|compass|renegade|cherokee)\b`)

// Phrases checked before single tokens, since their parts would mislead.
var bodyPhrases = []struct {
	phrase string
	label  string
}{
	{"shooting brake", "Karavan"},
	{"people mover", "Minivan/MPV"},
	{"people carrier", "Minivan/MPV"},
	{"passenger van", "Minivan/MPV"},
	{"sport utility vehicle", "SUV"},
	{"multi purpose vehicle", "Minivan/MPV"},
}

// Body resolves a raw body-type label to the target vocabulary. Already-
// canonical labels pass straight through; otherwise the ordered entry list
// is matched by substring, then per-token. The default is never empty.
func (n *Normalizer) Body(raw string) string {
	if raw == "" {
		return BodyDefault
	}
	if _, ok := n.bodySet[raw]; ok {
		return raw
	}
	t := cleanBodyText(raw)
	for _, e := range n.body {
		if strings.Contains(t, e.Key) {
			return e.Label
		}
	}
	for _, tok := range strings.Fields(t) {
		for _, e := range n.body {
			if tok == e.Key {
				return e.Label
			}
		}
	}
	return BodyDefault
}

// BodyFromText guesses a body type from free text (titles, breadcrumbs,
// meta descriptions). Returns "" when nothing in the text implies one.
func (n *Normalizer) BodyFromText(text string) string {
	if text == "" {
		return ""
	}
	s := cleanBodyText(text)
	for _, p := range bodyPhrases {
		if strings.Contains(s, p.phrase) {
			return p.label
		}
	}
	for _, e := range n.body {
		if strings.Contains(s, e.Key) {
			return e.Label
		}
	}
	if suvModelRx.MatchString(s) {
		return "SUV"
	}
	return ""
}

func cleanBodyText(s string) string {
	t := separatorCharsRx.ReplaceAllString(strings.ToLower(s), " ")
	return strings.TrimSpace(whitespaceRx.ReplaceAllString(t, " "))
}
