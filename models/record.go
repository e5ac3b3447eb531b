package models

import "strconv"

// Placeholder replaces any string field that is still empty when a record
// row is emitted. Applied once, at the very edge, never earlier.
const Placeholder = "Kontakto Pronarin"

// RawFieldSet holds the unnormalized fields collected for one listing during
// the detail phase. Every field is optional; an absent field stays at its
// zero value and absence is distinct from a meaningful zero downstream
// (the merger re-validates everything). A RawFieldSet is built fresh per
// listing visit and never mutated after being merged.
type RawFieldSet struct {
	Manufacturer string
	Model        string
	Grade        string
	FormYear     string
	YearMonth    string

	// AdPrice is the structured price value exactly as found in the data
	// tree: a JSON number or a string, normalized later by the voter.
	AdPrice   any
	PriceText string

	Mileage      string
	Fuel         string
	Color        string
	Transmission string
	Seats        int
	VIN          string
	EngineCC     string
	BodyType     string

	Images      []string
	Features    []string
	ReportLinks []string

	CarID string
}

// ListHint carries the values the list phase already extracted and
// normalized for a listing. A non-empty hint wins over the corresponding
// detail-phase raw value.
type ListHint struct {
	Title   string
	Brand   string
	Model   string
	Variant string

	// PriceEUR is the list-phase price, already converted. Zero means the
	// list phase produced no credible price and the voter decides.
	PriceEUR int64

	ColorHint       string
	SeatsHint       int
	EngineCCHint    int64
	InlineReportURL string
}

// CanonicalRecord is the final normalized output for one listing.
// Immutable once emitted.
type CanonicalRecord struct {
	Manufacturer string
	Model        string
	Variant      string
	Year         string
	PriceEUR     int64
	DistanceKM   int64
	Fuel         string
	Color        string
	Transmission string
	Seats        int // 0 means unknown
	VIN          string
	EngineCC     int64
	Images       []string
	ListingURL   string
	Features     []string
	ReportLinks  []string
}

// Header is the output column contract. Order and names are part of the
// external interface; do not reorder.
func Header() []string {
	return []string{
		"manufacturer", "model", "variant", "year",
		"price_eur", "distance_km", "fuel", "color",
		"transmission", "seats", "vin", "engine_cc",
		"images", "listing_url", "features", "report_links",
	}
}

// Row renders the record as output columns in Header order. Lists are
// ";"-delimited. Any column that is empty after normalization is replaced
// by Placeholder here, at the edge.
func (r *CanonicalRecord) Row() []string {
	seats := ""
	if r.Seats > 0 {
		seats = strconv.Itoa(r.Seats)
	}
	cols := []string{
		r.Manufacturer,
		r.Model,
		r.Variant,
		r.Year,
		strconv.FormatInt(r.PriceEUR, 10),
		strconv.FormatInt(r.DistanceKM, 10),
		r.Fuel,
		r.Color,
		r.Transmission,
		seats,
		r.VIN,
		strconv.FormatInt(r.EngineCC, 10),
		joinList(r.Images),
		r.ListingURL,
		joinList(r.Features),
		joinList(r.ReportLinks),
	}
	for i, c := range cols {
		if c == "" {
			cols[i] = Placeholder
		}
	}
	return cols
}

func joinList(items []string) string {
	out := ""
	for _, it := range items {
		if it == "" {
			continue
		}
		if out != "" {
			out += ";"
		}
		out += it
	}
	return out
}
