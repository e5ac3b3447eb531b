package identity

import (
	"reflect"
	"testing"
)

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"39481726", true},
		{"123456", true},
		{"12345", false},
		{"2021", false},
		{"39481726a", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromTree(t *testing.T) {
	tree := map[string]any{
		"pagination": map[string]any{"carNo": "42"},
		"detail": map[string]any{
			"carid": float64(39481726),
		},
	}
	if got := FromTree(tree); got != "39481726" {
		t.Errorf("FromTree = %q, want 39481726", got)
	}
	if got := FromTree(map[string]any{"carid": "123"}); got != "" {
		t.Errorf("FromTree(short id) = %q, want empty", got)
	}
}

func TestFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.encar.com/dc/dc_cardetailview.do?carid=39481726", "39481726"},
		{"https://fem.encar.com/cars/detail/39481726?from=list", "39481726"},
		{"https://example.com/?carNo=39481726", "39481726"},
		{"https://example.com/?carid=123", ""},
		{"https://fem.encar.com/cars/search", ""},
	}
	for _, tt := range tests {
		if got := FromURL(tt.in); got != tt.want {
			t.Errorf("FromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractPrefersTree(t *testing.T) {
	tree := map[string]any{"carid": "11112222"}
	got := Extract(tree, "https://fem.encar.com/cars/detail/99998888")
	if got != "11112222" {
		t.Errorf("Extract = %q, want tree id", got)
	}
	got = Extract(map[string]any{}, "https://fem.encar.com/cars/detail/99998888")
	if got != "99998888" {
		t.Errorf("Extract fallback = %q, want URL id", got)
	}
}

func TestCanonicalizeReportURL(t *testing.T) {
	canonical := "https://www.encar.com/md/sl/mdsl_regcar.do?method=inspectionViewNew&carid=39481726"
	tests := []struct {
		name string
		raw  string
		hint string
		want string
	}{
		{"already canonical", canonical, "", canonical},
		{"other report link with carid", "https://www.encar.com/report?carid=39481726&x=1", "", canonical},
		{"embedded carid text", "javascript:openReport('carid=39481726')", "", canonical},
		{"hint fallback", "https://www.encar.com/report/view", "39481726", canonical},
		{"nothing", "https://www.encar.com/report/view", "", ""},
	}
	for _, tt := range tests {
		if got := CanonicalizeReportURL(tt.raw, tt.hint); got != tt.want {
			t.Errorf("%s: CanonicalizeReportURL = %q, want %q", tt.name, got, tt.want)
		}
	}
	// Idempotent on its own output.
	if got := CanonicalizeReportURL(canonical, ""); CanonicalizeReportURL(got, "") != got {
		t.Error("CanonicalizeReportURL is not idempotent")
	}
}

func TestSynthURLs(t *testing.T) {
	if got := ListingURL("39481726"); got != "https://fem.encar.com/cars/detail/39481726" {
		t.Errorf("ListingURL = %q", got)
	}
	if got := LegacyListingURL("39481726"); got != "https://www.encar.com/dc/dc_cardetailview.do?carid=39481726" {
		t.Errorf("LegacyListingURL = %q", got)
	}
}

func TestUpgradeImageURLs(t *testing.T) {
	in := []string{
		"//ci.encar.com/carpicture/carpicture01/pic.jpg?impolicy=widthRate&rw=160",
		"/carpicture/carpicture01/pic.jpg?impolicy=widthRate&rw=320",
		"https://ci.encar.com/other/banner.png?v=2",
		"data:image/png;base64,AAAA",
		"",
	}
	want := []string{
		"https://ci.encar.com/carpicture/carpicture01/pic.jpg",
		"https://ci.encar.com/other/banner.png?v=2",
	}
	if got := UpgradeImageURLs(in); !reflect.DeepEqual(got, want) {
		t.Errorf("UpgradeImageURLs = %v, want %v", got, want)
	}
}
