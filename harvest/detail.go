package harvest

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/algajon/autosallon/identity"
	"github.com/algajon/autosallon/lexicon"
	"github.com/algajon/autosallon/models"
	"github.com/algajon/autosallon/treescan"
)

// Structured-tree key lists per field, most specific first.
var (
	makerKeys   = []string{"manufacturerName", "makerName", "brandName", "manufacturer", "maker"}
	modelKeys   = []string{"modelName", "model"}
	gradeKeys   = []string{"badgeName", "badgeDetailName", "gradeName", "grade", "trimName", "trim"}
	yearKeys    = []string{"formYear", "form_year", "modelYear", "model_year"}
	ymKeys      = []string{"yearMonth", "year_month", "ym", "firstRegistrationDate"}
	priceKeys   = []string{"price", "salePrice", "sale_price", "listPrice", "list_price", "advPrice"}
	mileKeys    = []string{"mileage", "odo", "odometer", "distance"}
	fuelKeys    = []string{"fuelName", "fuelTypeName", "fuelType", "fuel", "연료"}
	colorKeys   = []string{"colorName", "exteriorColor", "extColor", "color", "색상"}
	transKeys   = []string{"transmissionName", "transmission", "gearbox", "변속기"}
	bodyKeys    = []string{"bodyName", "bodyType", "vehicleType", "carType", "body", "차종", "외형"}
	seatKeys    = []string{"seatCount", "seat_count", "seatingCapacity", "seats", "seat", "승차정원", "인승"}
	vinKeys     = []string{"vin", "vinNo", "vin_no", "vehicleId", "chassisNo"}
	engineKeys  = []string{"displacement", "engineCC", "engine_cc", "cc", "배기량"}
	reportKeys  = []string{"inspectionUrl", "reportUrl", "performanceRecordUrl"}
	featureKeys = []string{"optionName", "option_name"}
)

var seatKeyRx = regexp.MustCompile(`(?i)(seat|seats|seater|승차|탑승|정원|인승|인원|좌석)`)

// Spec-pair label patterns for the DOM fallback.
var (
	fuelLabelRx   = regexp.MustCompile(`(?i)^(fuel|연료)`)
	colorLabelRx  = regexp.MustCompile(`(?i)^(color|colour|색상)`)
	transLabelRx  = regexp.MustCompile(`(?i)^(transmission|gearbox|변속기)`)
	mileLabelRx   = regexp.MustCompile(`(?i)^(mileage|odometer|주행\s*거리|주행거리)`)
	yearLabelRx   = regexp.MustCompile(`(?i)^(year|연식)`)
	vinLabelRx    = regexp.MustCompile(`(?i)^(vin|차대\s*번호|차대번호)`)
	engineLabelRx = regexp.MustCompile(`(?i)^(displacement|engine|배기량)`)
	seatLabelRx   = regexp.MustCompile(`(?i)^(seats?|seating|승차\s*정원|인승|정원)`)
	bodyLabelRx   = regexp.MustCompile(`(?i)^(body\s*type|body|차종|외형)`)
)

var seatFreeformRx = regexp.MustCompile(`(\d{1,2})\s*(?:인승|명|인|석|seats?|seater)`)

var reportHrefRx = regexp.MustCompile(`(?i)(mdsl_regcar|inspection|performance.?record|성능.?점검|성능기록)`)

var imageExtRx = regexp.MustCompile(`(?i)\.(jpe?g|png|webp)(\?|$)`)

var cssURLRx = regexp.MustCompile(`url\(['"]?([^'")]+)['"]?\)`)

const maxImages = 20

// ExtractDetail collects the raw field set for one detail page from its
// embedded state tree, its rendered DOM, and freeform text, in that order
// of trust. Every field is best-effort and may stay empty.
func ExtractDetail(ctx context.Context, tree any, rawHTML, pageURL string) models.RawFieldSet {
	var raw models.RawFieldSet

	if tree != nil {
		raw.Manufacturer = firstText(tree, makerKeys)
		raw.Model = firstText(tree, modelKeys)
		raw.Grade = firstText(tree, gradeKeys)
		raw.FormYear = firstText(tree, yearKeys)
		raw.YearMonth = firstText(tree, ymKeys)
		if v, ok := treescan.First(tree, priceKeys...); ok {
			raw.AdPrice = v
		}
		raw.Mileage = firstText(tree, mileKeys)
		raw.Fuel = firstText(tree, fuelKeys)
		raw.Color = firstText(tree, colorKeys)
		raw.Transmission = firstText(tree, transKeys)
		raw.BodyType = firstText(tree, bodyKeys)
		raw.VIN = firstText(tree, vinKeys)
		raw.EngineCC = firstText(tree, engineKeys)
		raw.Seats = seatsFromTree(tree)
		raw.CarID = identity.FromTree(tree)
		raw.Images = imagesFromTree(tree)
		raw.ReportLinks = reportLinksFromTree(tree)
		raw.Features = featuresFromTree(tree)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return raw
	}

	pairs := specPairs(doc)
	fillFromPairs(&raw, pairs)

	if raw.Seats == 0 {
		if m := seatFreeformRx.FindStringSubmatch(doc.Text()); m != nil {
			raw.Seats = lexicon.Seats(m[0])
		}
	}

	if len(raw.Images) < maxImages {
		raw.Images = appendImages(raw.Images, imagesFromDOM(doc))
	}
	raw.Features = appendUnique(raw.Features, featuresFromDOM(doc))
	raw.ReportLinks = appendUnique(raw.ReportLinks, reportLinksFromDOM(doc))

	if raw.CarID == "" {
		raw.CarID = identity.FromURL(pageURL)
	}
	return raw
}

func firstText(tree any, keys []string) string {
	v, ok := treescan.First(tree, keys...)
	if !ok {
		return ""
	}
	return strings.TrimSpace(treescan.Text(v))
}

// seatsFromTree tries the explicit seat keys, then scans every object for
// any seat-flavored key with a usable count.
func seatsFromTree(tree any) int {
	if v, ok := treescan.First(tree, seatKeys...); ok {
		if n := lexicon.Seats(v); n > 0 {
			return n
		}
	}
	found := 0
	treescan.EachObject(tree, func(obj map[string]any) bool {
		for k, v := range obj {
			if !seatKeyRx.MatchString(k) {
				continue
			}
			if n := lexicon.Seats(v); n > 0 {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

func imagesFromTree(tree any) []string {
	urls := treescan.Strings(tree, func(s string) bool {
		return strings.Contains(s, "carpicture")
	})
	out := identity.UpgradeImageURLs(urls)
	if len(out) > maxImages {
		out = out[:maxImages]
	}
	return out
}

func reportLinksFromTree(tree any) []string {
	var out []string
	for _, v := range treescan.All(tree, treescan.Exact(reportKeys...)) {
		if t := strings.TrimSpace(treescan.Text(v)); t != "" {
			out = append(out, t)
		}
	}
	return appendUnique(out, treescan.Strings(tree, func(s string) bool {
		return strings.HasPrefix(s, "http") && reportHrefRx.MatchString(s)
	}))
}

func featuresFromTree(tree any) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range treescan.All(tree, treescan.Exact(featureKeys...)) {
		t := strings.TrimSpace(treescan.Text(v))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// specPairs gathers label→value pairs from definition lists, spec tables,
// and bare "label: value" text lines.
func specPairs(doc *goquery.Document) map[string]string {
	pairs := make(map[string]string)
	put := func(label, value string) {
		label = collapse(label)
		value = collapse(value)
		if label == "" || value == "" {
			return
		}
		if _, exists := pairs[strings.ToLower(label)]; !exists {
			pairs[strings.ToLower(label)] = value
		}
	}
	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		put(dt.Text(), dt.Next().Text())
	})
	doc.Find("th").Each(func(_ int, th *goquery.Selection) {
		put(th.Text(), th.Next().Text())
	})
	for _, line := range strings.Split(doc.Text(), "\n") {
		if i := strings.Index(line, ":"); i > 0 && i < len(line)-1 {
			put(line[:i], line[i+1:])
		}
	}
	return pairs
}

func fillFromPairs(raw *models.RawFieldSet, pairs map[string]string) {
	for label, value := range pairs {
		switch {
		case raw.Fuel == "" && fuelLabelRx.MatchString(label):
			raw.Fuel = value
		case raw.Color == "" && colorLabelRx.MatchString(label):
			raw.Color = value
		case raw.Transmission == "" && transLabelRx.MatchString(label):
			raw.Transmission = value
		case raw.Mileage == "" && mileLabelRx.MatchString(label):
			raw.Mileage = value
		case raw.FormYear == "" && yearLabelRx.MatchString(label):
			raw.FormYear = yearDigits(value)
		case raw.VIN == "" && vinLabelRx.MatchString(label):
			raw.VIN = value
		case raw.EngineCC == "" && engineLabelRx.MatchString(label):
			raw.EngineCC = value
		case raw.Seats == 0 && seatLabelRx.MatchString(label):
			raw.Seats = lexicon.Seats(value)
		case raw.BodyType == "" && bodyLabelRx.MatchString(label):
			raw.BodyType = value
		}
	}
}

var yearRx = regexp.MustCompile(`(19|20)\d{2}`)

func yearDigits(s string) string {
	return yearRx.FindString(s)
}

func imagesFromDOM(doc *goquery.Document) []string {
	var urls []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			urls = append(urls, src)
		}
		if srcset, ok := s.Attr("srcset"); ok {
			for _, part := range strings.Split(srcset, ",") {
				fields := strings.Fields(strings.TrimSpace(part))
				if len(fields) > 0 {
					urls = append(urls, fields[0])
				}
			}
		}
	})
	doc.Find("source[srcset]").Each(func(_ int, s *goquery.Selection) {
		if srcset, ok := s.Attr("srcset"); ok {
			for _, part := range strings.Split(srcset, ",") {
				fields := strings.Fields(strings.TrimSpace(part))
				if len(fields) > 0 {
					urls = append(urls, fields[0])
				}
			}
		}
	})
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		for _, m := range cssURLRx.FindAllStringSubmatch(style, -1) {
			urls = append(urls, m[1])
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if imageExtRx.MatchString(href) && strings.Contains(href, "carpicture") {
			urls = append(urls, href)
		}
	})
	keep := urls[:0]
	for _, u := range urls {
		if strings.Contains(u, "carpicture") || imageExtRx.MatchString(u) {
			keep = append(keep, u)
		}
	}
	return identity.UpgradeImageURLs(keep)
}

func featuresFromDOM(doc *goquery.Document) []string {
	var out []string
	doc.Find(`[class*="option"] li, [class*="feature"] li, ul.option li`).Each(func(_ int, s *goquery.Selection) {
		if t := collapse(s.Text()); t != "" && len(t) < 60 {
			out = append(out, t)
		}
	})
	return out
}

func reportLinksFromDOM(doc *goquery.Document) []string {
	var out []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if reportHrefRx.MatchString(href) {
			out = append(out, href)
		}
	})
	return out
}

func appendImages(existing, more []string) []string {
	out := appendUnique(existing, more)
	if len(out) > maxImages {
		out = out[:maxImages]
	}
	return out
}

func appendUnique(existing, more []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s] = struct{}{}
	}
	out := existing
	for _, s := range more {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
