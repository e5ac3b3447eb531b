package lexicon

import "testing"

func TestColor(t *testing.T) {
	n := Default()
	tests := []struct {
		in   string
		want string
	}{
		{"Jet Black Metallic", "E zezë"},
		{"블랙", "E zezë"},
		{"Pearl White", "E bardhë"},
		{"Matte Gray / Black", "Gri"},
		{"Graphite Shadow", "Gri"},
		{"Platinum Quartz", "Argjendtë"},
		{"실버", "Argjendtë"},
		{"Mauve", "Mauve"},
		{"먼지색", "----"},
		{"", "----"},
	}
	for _, tt := range tests {
		if got := n.Color(tt.in); got != tt.want {
			t.Errorf("Color(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jet Black Metallic", "Jet Black"},
		{"Pearl-Coat White", "White"},
		{"Satin  Grey", "Grey"},
		{"Red", "Red"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanLabel(tt.in); got != tt.want {
			t.Errorf("CleanLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFuelAndTransmission(t *testing.T) {
	n := Default()
	if got := n.Fuel("디젤"); got != "Dizel" {
		t.Errorf("Fuel(디젤) = %q", got)
	}
	if got := n.Fuel("가솔린 터보"); got != "Benzinë" {
		t.Errorf("Fuel(가솔린 터보) = %q", got)
	}
	if got := n.Fuel("Hydrogen"); got != "Hydrogen" {
		t.Errorf("Fuel(Hydrogen) = %q, want passthrough", got)
	}
	if got := n.Fuel(""); got != "" {
		t.Errorf("Fuel(empty) = %q", got)
	}
	if got := n.Transmission("오토"); got != "Automatik" {
		t.Errorf("Transmission(오토) = %q", got)
	}
	if got := n.Transmission("수동"); got != "Manual" {
		t.Errorf("Transmission(수동) = %q", got)
	}
}

func TestBody(t *testing.T) {
	n := Default()
	tests := []struct {
		in   string
		want string
	}{
		{"SUV", "SUV"},
		{"crossover", "SUV"},
		{"왜건", "Karavan"},
		{"Station Wagon", "Karavan"},
		{"cabriolet", "Kabrio"},
		{"", "Sedan"},
		{"unknown thing", "Sedan"},
	}
	for _, tt := range tests {
		if got := n.Body(tt.in); got != tt.want {
			t.Errorf("Body(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBodyFromText(t *testing.T) {
	n := Default()
	tests := []struct {
		in   string
		want string
	}{
		{"Hyundai Tucson 1.6 Turbo", "SUV"},
		{"classic shooting brake estate", "Karavan"},
		{"plain text", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := n.BodyFromText(tt.in); got != tt.want {
			t.Errorf("BodyFromText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVIN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"kmh-jt81 adu 123456", "KMHJT81ADU123456"},
		{"KMHXX00XXXX000000", "KMHXX00XXXX000000"},
		{"12-34", "-----"},
		{"", "-----"},
	}
	for _, tt := range tests {
		if got := VIN(tt.in); got != tt.want {
			t.Errorf("VIN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSeats(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{"5인승", 5},
		{"7 seats", 7},
		{"2 seater", 2},
		{7, 7},
		{5.0, 5},
		{"12석", 0},
		{"0", 0},
		{nil, 0},
		{"no capacity here", 0},
	}
	for _, tt := range tests {
		if got := Seats(tt.in); got != tt.want {
			t.Errorf("Seats(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		formYear  string
		yearMonth string
		want      string
	}{
		{"2021", "", "2021"},
		{"2021", "202203", "2021"},
		{"", "202103", "2021"},
		{"", "21-03", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := Year(tt.formYear, tt.yearMonth); got != tt.want {
			t.Errorf("Year(%q, %q) = %q, want %q", tt.formYear, tt.yearMonth, got, tt.want)
		}
	}
}

func TestDigits(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"81,234 km", 81234},
		{"12만km", 12},
		{"no digits", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := Digits(tt.in); got != tt.want {
			t.Errorf("Digits(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBrand(t *testing.T) {
	n := Default()
	if got := n.Brand("제네시스"); got != "Genesis" {
		t.Errorf("Brand(제네시스) = %q", got)
	}
	if got := n.Brand("BMW"); got != "BMW" {
		t.Errorf("Brand(BMW) = %q, want passthrough", got)
	}
}

func TestSplitTitle(t *testing.T) {
	n := Default()
	tests := []struct {
		in      string
		brand   string
		model   string
		variant string
	}{
		{"벤츠 E클래스 E300", "Mercedes-Benz", "E클래스", "E300"},
		{"현대 그랜저 3.3 프리미엄", "Hyundai", "그랜저", "3.3 프리미엄"},
		{"기아 쏘렌토", "Kia", "쏘렌토", ""},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		b, m, v := n.SplitTitle(tt.in)
		if b != tt.brand || m != tt.model || v != tt.variant {
			t.Errorf("SplitTitle(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.in, b, m, v, tt.brand, tt.model, tt.variant)
		}
	}
}

func TestIsKorean(t *testing.T) {
	if !IsKorean("쏘렌토") {
		t.Error("IsKorean(쏘렌토) = false")
	}
	if IsKorean("Sorento") {
		t.Error("IsKorean(Sorento) = true")
	}
}
