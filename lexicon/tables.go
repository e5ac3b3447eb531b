package lexicon

// DefaultTables returns the standard source → Albanian vocabulary. Keys are
// lowercase; Korean keys stay in Hangul as the source renders them.
func DefaultTables() Tables {
	return Tables{
		Fuel: map[string]string{
			"가솔린": "Benzinë", "휘발유": "Benzinë", "gasoline": "Benzinë",
			"디젤": "Dizel", "경유": "Dizel", "diesel": "Dizel",
			"하이브리드": "Hibrid", "가솔린+전기": "Hibrid", "디젤+전기": "Hibrid", "hybrid": "Hibrid",
			"전기": "Elektrik", "ev": "Elektrik", "elec": "Elektrik",
			"lpg": "GPL", "lp지": "GPL", "lpi": "GPL",
		},
		Transmission: map[string]string{
			"오토": "Automatik", "자동": "Automatik", "auto": "Automatik", "automatic": "Automatik",
			"수동": "Manual", "수동변속기": "Manual", "manual": "Manual",
		},
		Color: map[string]string{
			"black": "E zezë", "jet black": "E zezë", "onyx": "E zezë", "piano black": "E zezë",
			"카본 블랙": "E zezë", "블랙": "E zezë", "검정": "E zezë", "검정색": "E zezë",
			"white": "E bardhë", "pure white": "E bardhë", "polar white": "E bardhë",
			"ivory": "E bardhë", "cream": "E bardhë", "pearl white": "E bardhë",
			"화이트": "E bardhë", "흰색": "E bardhë", "아이보리": "E bardhë", "크림": "E bardhë",
			"silver": "Argjendtë", "brilliant silver": "Argjendtë", "bright silver": "Argjendtë",
			"실버": "Argjendtë", "은색": "Argjendtë",
			"gray": "Gri", "grey": "Gri", "graphite": "Gri", "gunmetal": "Gri",
			"charcoal": "Gri", "magnetic": "Gri", "쥐색": "Gri", "그레이": "Gri", "회색": "Gri",
			"blue": "Blu", "dark blue": "Blu", "navy": "Blu", "midnight blue": "Blu",
			"indigo": "Blu", "azure": "Blu", "royal blue": "Blu", "sky blue": "Blu",
			"light blue": "Blu", "블루": "Blu", "청색": "Blu", "파랑": "Blu", "남색": "Blu", "하늘색": "Blu",
			"red": "E kuqe", "bright red": "E kuqe", "solid red": "E kuqe",
			"crimson": "E kuqe", "scarlet": "E kuqe", "레드": "E kuqe", "빨강": "E kuqe",
			"burgundy": "Bordo", "버건디": "Bordo", "maroon": "Bordo", "wine": "Bordo", "와인": "Bordo",
			"green": "E gjelbër", "dark green": "E gjelbër", "forest green": "E gjelbër",
			"emerald": "E gjelbër", "olive": "E gjelbër", "lime": "E gjelbër",
			"mint": "E gjelbër", "teal": "E gjelbër",
			"그린": "E gjelbër", "초록": "E gjelbër", "민트": "E gjelbër", "청록": "E gjelbër", "올리브": "E gjelbër",
			"yellow": "E verdhë", "황색": "E verdhë", "노랑": "E verdhë", "옐로우": "E verdhë",
			"orange": "Portokalli", "주황": "Portokalli", "주황색": "Portokalli",
			"brown": "Kafe", "cocoa": "Kafe", "coffee": "Kafe", "chocolate": "Kafe",
			"브라운": "Kafe", "갈색": "Kafe", "밤색": "Kafe",
			"beige": "Bezhë", "sand": "Bezhë", "tan": "Bezhë", "khaki": "Bezhë",
			"샌드": "Bezhë", "베이지": "Bezhë", "카키": "Bezhë",
			"gold": "I artë", "champagne": "Shampanjë", "bronze": "Bronzi", "copper": "Bakri",
			"로즈 골드": "I artë", "골드": "I artë", "브론즈": "Bronzi",
			"purple": "Vjollcë", "violet": "Vjollcë", "lavender": "Vjollcë",
			"보라": "Vjollcë", "퍼플": "Vjollcë", "자색": "Vjollcë",
			"pink": "Rozë", "fuchsia": "Rozë", "magenta": "Rozë", "hot pink": "Rozë", "핑크": "Rozë",
			"pearl": "E bardhë", "진주": "E bardhë", "펄": "E bardhë",
			"turquoise": "E gjelbër", "aqua": "E gjelbër", "cyan": "E gjelbër",
			"multicolor": "Shumëngjyrëshe", "multi color": "Shumëngjyrëshe",
			"two tone": "Shumëngjyrëshe", "dual tone": "Shumëngjyrëshe",
		},
		Body: []BodyEntry{
			{"suv", "SUV"}, {"crossover", "SUV"}, {"cuv", "SUV"}, {"sport utility vehicle", "SUV"},
			{"sedan", "Sedan"}, {"saloon", "Sedan"}, {"notchback", "Sedan"}, {"fastback", "Sedan"},
			{"hatchback", "Hatchback"}, {"hatch", "Hatchback"}, {"liftback", "Hatchback"}, {"back door", "Hatchback"},
			{"wagon", "Karavan"}, {"estate", "Karavan"}, {"touring", "Karavan"}, {"avant", "Karavan"}, {"shooting brake", "Karavan"},
			{"coupe", "Kupe"}, {"coupé", "Kupe"}, {"2-door", "Kupe"}, {"two door", "Kupe"}, {"grand tourer", "Kupe"}, {"gt", "Kupe"},
			{"convertible", "Kabrio"}, {"cabriolet", "Kabrio"}, {"roadster", "Kabrio"}, {"spyder", "Kabrio"},
			{"spider", "Kabrio"}, {"targa", "Kabrio"}, {"speedster", "Kabrio"},
			{"minivan", "Minivan/MPV"}, {"mpv", "Minivan/MPV"}, {"van", "Minivan/MPV"}, {"passenger van", "Minivan/MPV"},
			{"people mover", "Minivan/MPV"}, {"people carrier", "Minivan/MPV"}, {"minibus", "Autobus"}, {"bus", "Autobus"},
			{"pickup", "Pickup"}, {"pick-up", "Pickup"}, {"ute", "Pickup"}, {"truck", "Pickup"},
			{"crew cab", "Pickup"}, {"double cab", "Pickup"}, {"single cab", "Pickup"},
			{"panel van", "Minivan/MPV"}, {"cargo van", "Minivan/MPV"}, {"commercial", "Komerçiale"},
			{"lcv", "Komerçiale"}, {"box truck", "Komerçiale"},
			{"microcar", "Hatchback"}, {"city car", "Hatchback"}, {"kei car", "Hatchback"},
			{"limousine", "Sedan"}, {"long wheelbase", "Sedan"}, {"sedan coupe", "Sedan"},
			{"sports car", "Kupe"}, {"supercar", "Kupe"}, {"hypercar", "Kupe"},
			{"세단", "Sedan"}, {"쿠페", "Kupe"}, {"해치백", "Hatchback"}, {"왜건", "Karavan"},
			{"컨버터블", "Kabrio"}, {"로드스터", "Kabrio"}, {"스파이더", "Kabrio"},
			{"밴", "Minivan/MPV"}, {"승합", "Minivan/MPV"}, {"픽업", "Pickup"},
			{"리무진", "Sedan"}, {"버스", "Autobus"},
		},
		Brand: map[string]string{
			"벤츠": "Mercedes-Benz", "메르세데스": "Mercedes-Benz", "아우디": "Audi", "폭스바겐": "Volkswagen",
			"현대": "Hyundai", "기아": "Kia", "제네시스": "Genesis", "볼보": "Volvo", "포드": "Ford", "지프": "Jeep",
			"렉서스": "Lexus", "토요타": "Toyota", "닛산": "Nissan", "혼다": "Honda", "스즈키": "Suzuki",
			"미니": "MINI", "포르쉐": "Porsche", "캐딜락": "Cadillac", "인피니티": "Infiniti", "쉐보레": "Chevrolet",
		},
	}
}
