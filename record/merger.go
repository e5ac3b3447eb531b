// Package record combines list-phase hints and detail-phase raw fields into
// final canonical records. Merging is pure: all I/O happened earlier.
package record

import (
	"strings"

	"github.com/algajon/autosallon/harvest"
	"github.com/algajon/autosallon/identity"
	"github.com/algajon/autosallon/lexicon"
	"github.com/algajon/autosallon/models"
	"github.com/algajon/autosallon/money"
)

// Config holds the read-only knobs shared by every merge.
type Config struct {
	// Rate converts KRW to the target currency. Must be positive.
	Rate float64
	// Band bounds credible vehicle prices in KRW for the voter.
	Band money.Band
}

// Merger applies the precedence rules and normalizers. Safe for concurrent
// use; it holds no mutable state.
type Merger struct {
	cfg Config
	lex *lexicon.Normalizer
}

// New builds a Merger. A nil normalizer uses the default vocabulary; a zero
// band uses the default plausibility band.
func New(cfg Config, lex *lexicon.Normalizer) *Merger {
	if lex == nil {
		lex = lexicon.Default()
	}
	if cfg.Band.Min == 0 && cfg.Band.Max == 0 {
		cfg.Band = money.DefaultBand
	}
	return &Merger{cfg: cfg, lex: lex}
}

// Merge produces the canonical record for one listing. List-phase hint
// values win over detail-phase raw values whenever the hint is non-empty;
// otherwise the raw value, normalized, is used. Fields that end up empty
// stay empty here and become the placeholder at row render time.
func (m *Merger) Merge(hint models.ListHint, raw models.RawFieldSet, detailURL string) models.CanonicalRecord {
	var rec models.CanonicalRecord

	rec.Manufacturer = pick(hint.Brand, m.lex.Brand(strings.TrimSpace(raw.Manufacturer)))
	rec.Model = pick(hint.Model, strings.TrimSpace(raw.Model))
	rec.Variant = pick(hint.Variant, strings.TrimSpace(raw.Grade))
	rec.Year = lexicon.Year(strings.TrimSpace(raw.FormYear), strings.TrimSpace(raw.YearMonth))

	if hint.PriceEUR > 0 {
		rec.PriceEUR = hint.PriceEUR
	} else {
		rec.PriceEUR = money.RoundDown10(money.ToEUR(m.votePrice(raw), m.cfg.Rate))
	}

	rec.DistanceKM = lexicon.Digits(raw.Mileage)
	rec.Fuel = m.lex.Fuel(raw.Fuel)
	rec.Transmission = m.lex.Transmission(raw.Transmission)
	rec.Color = pick(hint.ColorHint, m.lex.Color(raw.Color))

	rec.Seats = hint.SeatsHint
	if rec.Seats == 0 {
		rec.Seats = raw.Seats
	}

	rec.VIN = lexicon.VIN(raw.VIN)

	rec.EngineCC = lexicon.Digits(raw.EngineCC)
	if rec.EngineCC == 0 {
		rec.EngineCC = hint.EngineCCHint
	}

	rec.Images = identity.UpgradeImageURLs(raw.Images)

	rec.ListingURL = detailURL
	if rec.ListingURL == "" && identity.Valid(raw.CarID) {
		rec.ListingURL = identity.ListingURL(raw.CarID)
	}

	rec.Features = raw.Features
	rec.ReportLinks = m.reportLinks(hint, raw)
	return rec
}

// votePrice runs the voter over every price reading the detail phase saw.
func (m *Merger) votePrice(raw models.RawFieldSet) int64 {
	var cands []int64
	if v := money.NormalizeAny(raw.AdPrice); v > 0 {
		cands = append(cands, v)
	}
	if v := money.ParseKRW(raw.PriceText); v > 0 {
		cands = append(cands, v)
	}
	return money.Vote(cands, m.cfg.Band)
}

// reportLinks canonicalizes and dedupes report URLs, the inline list-phase
// link first.
func (m *Merger) reportLinks(hint models.ListHint, raw models.RawFieldSet) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(u string) {
		c := identity.CanonicalizeReportURL(u, raw.CarID)
		if c == "" {
			return
		}
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	add(hint.InlineReportURL)
	for _, u := range raw.ReportLinks {
		add(u)
	}
	if len(out) == 0 && identity.Valid(raw.CarID) {
		out = append(out, identity.ReportURL(raw.CarID))
	}
	return out
}

// HintFromCandidate turns a merged list-page candidate into the hint the
// merger consumes, voting on the row's own price readings and lifting the
// row's inline panel fields (color, seating, report link) when present.
func (m *Merger) HintFromCandidate(c harvest.Candidate) models.ListHint {
	var h models.ListHint
	h.Title = c.Title
	h.Brand, h.Model, h.Variant = m.lex.SplitTitle(c.Title)

	if rh := harvest.HarvestRowHints(c.RowHTML); rh != (harvest.RowHints{}) {
		if rh.Color != "" {
			h.ColorHint = m.lex.Color(rh.Color)
		}
		h.SeatsHint = rh.Seats
		h.EngineCCHint = rh.EngineCC
		h.InlineReportURL = rh.ReportURL
	}

	var cands []int64
	if c.HasPrice {
		if v := money.NormalizeAny(c.PriceNum); v > 0 {
			cands = append(cands, v)
		}
	}
	if c.RowHTML != "" {
		cands = append(cands, money.CandidatesFromHTML(c.RowHTML)...)
	}
	if v := money.ParseKRW(c.PriceText); v > 0 {
		cands = append(cands, v)
	}
	if krw := money.Vote(cands, m.cfg.Band); krw > 0 {
		h.PriceEUR = money.RoundDown10(money.ToEUR(krw, m.cfg.Rate))
	}
	return h
}

func pick(hint, raw string) string {
	if strings.TrimSpace(hint) != "" {
		return strings.TrimSpace(hint)
	}
	return raw
}
