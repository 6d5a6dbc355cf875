package properties

// Shorthand is a property setting several longhand properties.
type Shorthand uint8

const (
	_ Shorthand = iota
	SMargin
	SPadding
	SBorderWidth
	SBorder
	SBorderTop
	SBorderRight
	SBorderBottom
	SBorderLeft
	SXMLLang

	NbShorthands
)

var shorthandNames = [NbShorthands]string{
	SMargin:       "margin",
	SPadding:      "padding",
	SBorderWidth:  "border-width",
	SBorder:       "border",
	SBorderTop:    "border-top",
	SBorderRight:  "border-right",
	SBorderBottom: "border-bottom",
	SBorderLeft:   "border-left",
	SXMLLang:      "xml:lang",
}

func (s Shorthand) String() string {
	if s >= NbShorthands {
		return "<invalid shorthand>"
	}
	return shorthandNames[s]
}

// ShorthandsFromNames maps shorthand names to internal enum tags.
var ShorthandsFromNames = map[string]Shorthand{}

// Longhands lists the properties set by each shorthand.
// Four sides shorthands use the [top, right, bottom, left] order.
var Longhands = [NbShorthands][]KnownProp{
	SMargin:       {PMarginTop, PMarginRight, PMarginBottom, PMarginLeft},
	SPadding:      {PPaddingTop, PPaddingRight, PPaddingBottom, PPaddingLeft},
	SBorderWidth:  {PBorderTopWidth, PBorderRightWidth, PBorderBottomWidth, PBorderLeftWidth},
	SBorder:       {PBorderTopWidth, PBorderRightWidth, PBorderBottomWidth, PBorderLeftWidth},
	SBorderTop:    {PBorderTopWidth},
	SBorderRight:  {PBorderRightWidth},
	SBorderBottom: {PBorderBottomWidth},
	SBorderLeft:   {PBorderLeftWidth},
	SXMLLang:      {PLanguage, PCountry},
}

// shorthands are listed from the most to the least specific,
// so that "border-left" wins over "border-width" which wins over "border"
var shorthandsPrecedence = [...]Shorthand{
	SBorderTop, SBorderRight, SBorderBottom, SBorderLeft,
	SBorderWidth,
	SBorder,
	SMargin,
	SPadding,
	SXMLLang,
}

var shorthandsFor [NbProps][]Shorthand

// Shorthands returns the shorthands which may set [p],
// by decreasing precedence.
func (p KnownProp) Shorthands() []Shorthand {
	if p >= NbProps {
		return nil
	}
	return shorthandsFor[p]
}

func init() {
	for s, name := range shorthandNames {
		if name != "" {
			ShorthandsFromNames[name] = Shorthand(s)
		}
	}
	for _, s := range shorthandsPrecedence {
		for _, p := range Longhands[s] {
			shorthandsFor[p] = append(shorthandsFor[p], s)
		}
	}
}
