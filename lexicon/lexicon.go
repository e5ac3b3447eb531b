// Package lexicon maps source-locale vehicle vocabulary (Korean and English)
// onto the fixed Albanian target vocabulary. Every normalizer degrades
// gracefully: exact lookup first, then per-token lookup, then narrow
// heuristics, and only then a sentinel, a passthrough, or a default —
// the result is never empty unless the input was.
package lexicon

import (
	"regexp"
	"strings"
)

// Sentinels emitted when normalization cannot produce a real value.
const (
	ColorUnknown = "----"
	VINSentinel  = "-----"
	BodyDefault  = "Sedan"
)

// Tables holds the vocabulary injected into a Normalizer. Body type entries
// are ordered because matching is substring-based and earlier entries win.
type Tables struct {
	Fuel         map[string]string
	Transmission map[string]string
	Color        map[string]string
	Body         []BodyEntry
	Brand        map[string]string
}

// BodyEntry maps one source body-type token to its target label.
type BodyEntry struct {
	Key   string
	Label string
}

// Normalizer owns an immutable copy of its vocabulary tables.
type Normalizer struct {
	fuel    map[string]string
	trans   map[string]string
	color   map[string]string
	body    []BodyEntry
	brand   map[string]string
	bodySet map[string]struct{}
}

// New builds a Normalizer from the given tables, copying them so later
// mutation of the caller's maps cannot leak in.
func New(t Tables) *Normalizer {
	n := &Normalizer{
		fuel:    copyMap(t.Fuel),
		trans:   copyMap(t.Transmission),
		color:   copyMap(t.Color),
		body:    make([]BodyEntry, len(t.Body)),
		brand:   copyMap(t.Brand),
		bodySet: make(map[string]struct{}),
	}
	copy(n.body, t.Body)
	for _, e := range n.body {
		n.bodySet[e.Label] = struct{}{}
	}
	return n
}

// Default returns a Normalizer loaded with the standard vocabulary.
func Default() *Normalizer {
	return New(DefaultTables())
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Fuel maps a source fuel label to the target vocabulary, passing the
// cleaned source value through unchanged when nothing matches.
func (n *Normalizer) Fuel(raw string) string {
	return n.lookupOrPass(n.fuel, raw)
}

// Transmission maps a source transmission label to the target vocabulary,
// passing the cleaned source value through unchanged when nothing matches.
func (n *Normalizer) Transmission(raw string) string {
	return n.lookupOrPass(n.trans, raw)
}

func (n *Normalizer) lookupOrPass(table map[string]string, raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	key := strings.ToLower(s)
	if out, ok := table[key]; ok {
		return out
	}
	for _, tok := range strings.Fields(key) {
		if out, ok := table[tok]; ok {
			return out
		}
	}
	return s
}

// Brand maps a source brand token (usually Hangul) to the target maker name.
// The mapping matches on substring so decorated tokens still resolve.
func (n *Normalizer) Brand(token string) string {
	for k, v := range n.brand {
		if strings.Contains(token, k) {
			return v
		}
	}
	return token
}

var hangulRx = regexp.MustCompile(`[\x{ac00}-\x{d7a3}]`)

// IsKorean reports whether the string contains Hangul syllables.
func IsKorean(s string) bool {
	return hangulRx.MatchString(s)
}
