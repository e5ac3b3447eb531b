package scraper

import (
	"context"
	"testing"

	"github.com/algajon/autosallon/models"
	"github.com/algajon/autosallon/page"
)

func TestListPageURL(t *testing.T) {
	tests := []struct {
		start string
		page  int
		want  string
	}{
		{"https://fem.encar.com/cars/search", 1, "https://fem.encar.com/cars/search"},
		{"https://fem.encar.com/cars/search", 2, "https://fem.encar.com/cars/search?page=2"},
		{"https://fem.encar.com/cars/search?sort=price", 3, "https://fem.encar.com/cars/search?sort=price&page=3"},
	}
	for _, tt := range tests {
		if got := listPageURL(tt.start, tt.page); got != tt.want {
			t.Errorf("listPageURL(%q, %d) = %q, want %q", tt.start, tt.page, got, tt.want)
		}
	}
}

func TestUsableDetail(t *testing.T) {
	if usableDetail(models.RawFieldSet{Model: "쏘렌토"}) {
		t.Error("detail without id should not be usable")
	}
	if usableDetail(models.RawFieldSet{CarID: "39481726"}) {
		t.Error("bare id should not be usable")
	}
	if !usableDetail(models.RawFieldSet{CarID: "39481726", Mileage: "81,234km"}) {
		t.Error("id plus substance should be usable")
	}
}

func TestExtractFromAccess(t *testing.T) {
	html := `<html><head><script>window.__PRELOADED_STATE__ = {"category":{"modelName":"쏘렌토"},"carid":"39481726"};</script></head>
<body><dl><dt>연료</dt><dd>디젤</dd></dl></body></html>`
	snap, err := page.NewSnapshot("https://fem.encar.com/cars/detail/39481726", html)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := extractFromAccess(context.Background(), snap, "https://fem.encar.com/cars/detail/39481726")
	if err != nil {
		t.Fatal(err)
	}
	if raw.Model != "쏘렌토" || raw.Fuel != "디젤" || raw.CarID != "39481726" {
		t.Errorf("raw = %+v", raw)
	}
	if !usableDetail(raw) {
		t.Error("extracted detail should be usable")
	}
}
