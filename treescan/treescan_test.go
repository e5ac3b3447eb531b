package treescan

import (
	"regexp"
	"testing"
)

func tree() map[string]any {
	return map[string]any{
		"layerA": map[string]any{
			"modelName": "Sonata",
			"noise":     []any{1.0, "x", nil},
		},
		"layerB": []any{
			map[string]any{"carId": "39012345", "price": 3350.0},
			map[string]any{"carId": "39054321", "price": 0.0},
		},
		"empty": map[string]any{"modelName": ""},
	}
}

func TestFirst_PriorityOrder(t *testing.T) {
	root := map[string]any{
		"x": map[string]any{"makerName": "Kia", "brandName": "ignored"},
	}
	v, ok := First(root, "manufacturerName", "makerName", "brandName")
	if !ok || v != "Kia" {
		t.Fatalf("First = %v, %v; want Kia, true", v, ok)
	}
}

func TestFirst_SkipsEmptyValues(t *testing.T) {
	root := map[string]any{
		"a": map[string]any{"modelName": ""},
		"b": map[string]any{"deep": map[string]any{"modelName": "Avante"}},
	}
	v, ok := First(root, "modelName")
	if !ok || v != "Avante" {
		t.Fatalf("First = %v, %v; want Avante, true", v, ok)
	}
}

func TestFirst_CaseInsensitive(t *testing.T) {
	root := map[string]any{"MODELNAME": "Tucson"}
	if v, ok := First(root, "modelName"); !ok || v != "Tucson" {
		t.Fatalf("First = %v, %v; want Tucson, true", v, ok)
	}
}

func TestFirst_NotFound(t *testing.T) {
	if _, ok := First(tree(), "vin"); ok {
		t.Fatal("expected not found")
	}
}

func TestFirst_ScalarRoot(t *testing.T) {
	// A scalar or nil root must not panic, just yield nothing.
	if _, ok := First("just a string", "key"); ok {
		t.Fatal("scalar root should find nothing")
	}
	if _, ok := First(nil, "key"); ok {
		t.Fatal("nil root should find nothing")
	}
}

func TestAll_CollectsEveryMatch(t *testing.T) {
	got := All(tree(), Exact("carId"))
	if len(got) != 2 {
		t.Fatalf("All found %d values, want 2: %v", len(got), got)
	}
	if got[0] != "39012345" || got[1] != "39054321" {
		t.Fatalf("All order wrong: %v", got)
	}
}

func TestAll_PatternMatcher(t *testing.T) {
	re := regexp.MustCompile(`(?i)car(id|no)\b`)
	got := All(tree(), Pattern(re))
	if len(got) != 2 {
		t.Fatalf("pattern matcher found %d values, want 2", len(got))
	}
}

func TestContains(t *testing.T) {
	m := Contains("carid", "carno", "cid")
	for key, want := range map[string]bool{
		"carId":     true,
		"CARNO":     true,
		"vehicleId": false,
		"cid":       true,
		"carseq":    false,
	} {
		if m(key) != want {
			t.Errorf("Contains(%q) = %v, want %v", key, m(key), want)
		}
	}
}

func TestCycleSafety(t *testing.T) {
	a := map[string]any{"name": "loop"}
	b := map[string]any{"back": a}
	a["fwd"] = b

	v, ok := First(a, "name")
	if !ok || v != "loop" {
		t.Fatalf("cyclic tree: got %v, %v", v, ok)
	}
	if got := All(a, Exact("name")); len(got) != 1 {
		t.Fatalf("cyclic tree visited a node twice: %v", got)
	}
}

func TestSharedNodeVisitedOnce(t *testing.T) {
	shared := map[string]any{"carId": "39999999"}
	root := []any{shared, shared, map[string]any{"wrap": shared}}
	if got := All(root, Exact("carId")); len(got) != 1 {
		t.Fatalf("aliased node contributed %d times, want 1: %v", len(got), got)
	}
}

func TestStrings(t *testing.T) {
	root := map[string]any{
		"photos": []any{"/carpicture/01.jpg", "/other/x.png"},
		"nested": map[string]any{"thumb": "/carpicture/02.jpg"},
	}
	got := Strings(root, func(s string) bool {
		return regexp.MustCompile(`carpicture`).MatchString(s)
	})
	if len(got) != 2 {
		t.Fatalf("Strings found %d, want 2: %v", len(got), got)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{35000.0, "35000"},
		{4.5e7, "45000000"},
		{true, "true"},
		{[]any{"x"}, ""},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Errorf("Text(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEachObject_Stop(t *testing.T) {
	count := 0
	EachObject(tree(), func(obj map[string]any) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("walk did not stop after callback returned false: %d visits", count)
	}
}
