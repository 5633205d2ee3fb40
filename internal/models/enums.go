package models

import "strings"

// Country is the closed set of nationalities
type Country string

const (
	CountryRussia     Country = "RUSSIA"
	CountryChina      Country = "CHINA"
	CountryIndia      Country = "INDIA"
	CountryItaly      Country = "ITALY"
	CountrySouthKorea Country = "SOUTH_KOREA"
)

var countries = []Country{CountryRussia, CountryChina, CountryIndia, CountryItaly, CountrySouthKorea}

// HairColor is the closed set of hair colors
type HairColor string

const (
	HairColorBlonde   HairColor = "BLONDE"
	HairColorBrunette HairColor = "BRUNETTE"
	HairColorBrown    HairColor = "BROWN"
	HairColorRed      HairColor = "RED"
	HairColorBlack    HairColor = "BLACK"
	HairColorGray     HairColor = "GRAY"
	HairColorWhite    HairColor = "WHITE"
)

var hairColors = []HairColor{HairColorBlonde, HairColorBrunette, HairColorBrown, HairColorRed, HairColorBlack, HairColorGray, HairColorWhite}

// EyeColor is the closed set of eye colors
type EyeColor string

const (
	EyeColorBrown EyeColor = "BROWN"
	EyeColorBlue  EyeColor = "BLUE"
	EyeColorGreen EyeColor = "GREEN"
	EyeColorGray  EyeColor = "GRAY"
	EyeColorBlack EyeColor = "BLACK"
	EyeColorAmber EyeColor = "AMBER"
	EyeColorHazel EyeColor = "HAZEL"
)

var eyeColors = []EyeColor{EyeColorBrown, EyeColorBlue, EyeColorGreen, EyeColorGray, EyeColorBlack, EyeColorAmber, EyeColorHazel}

// ParseCountry matches s against the enumeration ignoring case and surrounding spaces
func ParseCountry(s string) (Country, bool) {
	c := Country(normalizeEnum(s))
	return c, c.Valid()
}

func (c Country) Valid() bool {
	for _, known := range countries {
		if c == known {
			return true
		}
	}
	return false
}

// ParseHairColor matches s against the enumeration ignoring case and surrounding spaces
func ParseHairColor(s string) (HairColor, bool) {
	h := HairColor(normalizeEnum(s))
	return h, h.Valid()
}

func (h HairColor) Valid() bool {
	for _, known := range hairColors {
		if h == known {
			return true
		}
	}
	return false
}

// ParseEyeColor matches s against the enumeration ignoring case and surrounding spaces
func ParseEyeColor(s string) (EyeColor, bool) {
	e := EyeColor(normalizeEnum(s))
	return e, e.Valid()
}

func (e EyeColor) Valid() bool {
	for _, known := range eyeColors {
		if e == known {
			return true
		}
	}
	return false
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func countryNames() []string {
	names := make([]string, len(countries))
	for i, c := range countries {
		names[i] = string(c)
	}
	return names
}
