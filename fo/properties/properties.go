package properties

const (
	_ KnownProp = iota
	PWritingMode
	PFontSize
	PLanguage
	PCountry
	PStartIndent
	PEndIndent

	// the physical box edges are grouped by kind,
	// in the [top, right, bottom, left] order,
	// which is also the order used by the four sides shorthands
	PMarginTop
	PMarginRight
	PMarginBottom
	PMarginLeft
	PPaddingTop
	PPaddingRight
	PPaddingBottom
	PPaddingLeft
	PBorderTopWidth
	PBorderRightWidth
	PBorderBottomWidth
	PBorderLeftWidth

	// the writing-mode relative box edges,
	// in the [before, after, start, end] order
	PPaddingBefore
	PPaddingAfter
	PPaddingStart
	PPaddingEnd
	PBorderBeforeWidth
	PBorderAfterWidth
	PBorderStartWidth
	PBorderEndWidth

	NbProps
)

var propsNames = [NbProps]string{
	PWritingMode: "writing-mode",
	PFontSize:    "font-size",
	PLanguage:    "language",
	PCountry:     "country",
	PStartIndent: "start-indent",
	PEndIndent:   "end-indent",

	PMarginTop:         "margin-top",
	PMarginRight:       "margin-right",
	PMarginBottom:      "margin-bottom",
	PMarginLeft:        "margin-left",
	PPaddingTop:        "padding-top",
	PPaddingRight:      "padding-right",
	PPaddingBottom:     "padding-bottom",
	PPaddingLeft:       "padding-left",
	PBorderTopWidth:    "border-top-width",
	PBorderRightWidth:  "border-right-width",
	PBorderBottomWidth: "border-bottom-width",
	PBorderLeftWidth:   "border-left-width",

	PPaddingBefore:     "padding-before",
	PPaddingAfter:      "padding-after",
	PPaddingStart:      "padding-start",
	PPaddingEnd:        "padding-end",
	PBorderBeforeWidth: "border-before-width",
	PBorderAfterWidth:  "border-after-width",
	PBorderStartWidth:  "border-start-width",
	PBorderEndWidth:    "border-end-width",
}

// PropsFromNames maps property names to internal enum tags.
var PropsFromNames = map[string]KnownProp{}

// InitialValues stores the default values for the properties.
// Every known property has one, so that inheritance always terminates.
var InitialValues = Properties{
	PWritingMode: LrTb,
	PFontSize:    FontSizeKeywords["medium"],
	PLanguage:    String("none"),
	PCountry:     String("none"),
	PStartIndent: Zero(),
	PEndIndent:   Zero(),

	PMarginTop:    Zero(),
	PMarginRight:  Zero(),
	PMarginBottom: Zero(),
	PMarginLeft:   Zero(),

	PPaddingTop:    Zero(),
	PPaddingRight:  Zero(),
	PPaddingBottom: Zero(),
	PPaddingLeft:   Zero(),

	// the XSL initial value is "medium", but with a border-style of "none",
	// which we do not model, the used width is zero
	PBorderTopWidth:    Zero(),
	PBorderRightWidth:  Zero(),
	PBorderBottomWidth: Zero(),
	PBorderLeftWidth:   Zero(),

	PPaddingBefore:     Zero(),
	PPaddingAfter:      Zero(),
	PPaddingStart:      Zero(),
	PPaddingEnd:        Zero(),
	PBorderBeforeWidth: Zero(),
	PBorderAfterWidth:  Zero(),
	PBorderStartWidth:  Zero(),
	PBorderEndWidth:    Zero(),
}

// Inherited lists the properties taken from the parent
// node when they are not specified.
var Inherited = NewSet(
	PWritingMode,
	PFontSize,
	PLanguage,
	PCountry,
	PStartIndent,
	PEndIndent,
)

// AllProps returns the known properties, in enum order.
func AllProps() []KnownProp {
	out := make([]KnownProp, 0, NbProps-1)
	for p := KnownProp(1); p < NbProps; p++ {
		out = append(out, p)
	}
	return out
}

func init() {
	for p, name := range propsNames {
		if name != "" {
			PropsFromNames[name] = KnownProp(p)
		}
	}
	for _, p := range AllProps() {
		if InitialValues[p] == nil {
			panic("missing initial value for " + p.String())
		}
	}
}
