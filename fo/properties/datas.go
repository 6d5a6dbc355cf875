package properties

// mediumFontSize is the user agent choice for the "medium" font size,
// as used by FOP.
const mediumFontSize = 12_000

var (
	// How many millipoints is one <unit> ?
	// Pixels are CSS pixels, at 96 per inch.
	LengthsToMillipoints = map[string]float64{
		"pt": 1000,
		"pc": 12_000,            // 12pt
		"in": 72_000,            // 72pt
		"cm": 72_000 / 2.54,     // LengthsToMillipoints["in"] / 2.54
		"mm": 72_000 / 25.4,     // LengthsToMillipoints["in"] / 25.4
		"px": 72_000. / 96,      // LengthsToMillipoints["in"] / 96
		"q":  72_000 / 25.4 / 4, // LengthsToMillipoints["mm"] / 4
	}

	// Value of font-size for <absolute-size> keywords: 12pt for
	// medium, and scaling factors given in CSS3 for others:
	// http://www.w3.org/TR/css3-fonts/#font-size-prop
	FontSizeKeywords = map[string]Numeric{
		"xx-small": Millipoints(mediumFontSize * 3 / 5),
		"x-small":  Millipoints(mediumFontSize * 3 / 4),
		"small":    Millipoints(mediumFontSize * 8 / 9),
		"medium":   Millipoints(mediumFontSize),
		"large":    Millipoints(mediumFontSize * 6 / 5),
		"x-large":  Millipoints(mediumFontSize * 3 / 2),
		"xx-large": Millipoints(mediumFontSize * 2),
	}

	// These are unspecified, other than 'thin' <= 'medium' <= 'thick'.
	// Values are the ones chosen by FOP.
	BorderWidthKeywords = map[string]Numeric{
		"thin":   Points(0.5),
		"medium": Points(1),
		"thick":  Points(2),
	}
)
