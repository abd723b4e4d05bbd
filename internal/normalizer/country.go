package normalizer

// overrides maps a cleaned, lowercased country string to its canonical name.
// Lookups happen after lowercasing, so keys containing capitals never match;
// they are kept as recorded in the source data rules.
var overrides = map[string]string{
	"united states": "United States of America",
	"usa":           "United States of America",
	"u.s.a.":        "United States of America",
	"us":            "United States of America",
	"U.S.A":         "United States of America",
	"United States|united States|united States": "United States of America",

	"england":                     "United Kingdom",
	"scotland":                    "United Kingdom",
	"wales":                       "United Kingdom",
	"United States|united States": "United Kingdom",
	"England":                     "United Kingdom",

	"czech republic": "Czechia",

	// Misspelling is intentional: downstream charts key on it.
	"republic of the philippines": "Phillippines",

	// Trailing ")" has already been stripped by the time lookups run.
	"myanmar (formerly burma":    "Myanmar",
	"republic of cameroon":       "Cameroon",
	"croatia (former yugoslavia": "Croatia",
}

// Override returns the canonical name for an exact override key.
func Override(key string) (string, bool) {
	canonical, ok := overrides[key]
	return canonical, ok
}

// NormalizeCountry maps a raw country cell to its canonical name. The
// boolean is false when the cell carries no usable value and should not be
// counted.
func NormalizeCountry(raw string) (string, bool) {
	return NewTransformer().Transform(raw)
}
