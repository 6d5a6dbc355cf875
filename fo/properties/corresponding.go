package properties

// WritingMode is one of the three supported writing mode families.
// Its value is the index used by [Corresponding].
type WritingMode uint8

const (
	LrTb WritingMode = iota // left-to-right, top-to-bottom
	RlTb                    // right-to-left, top-to-bottom
	TbRl                    // top-to-bottom, right-to-left
)

var writingModeNames = [...]string{
	LrTb: "lr-tb",
	RlTb: "rl-tb",
	TbRl: "tb-rl",
}

func (wm WritingMode) String() string {
	if int(wm) < len(writingModeNames) {
		return writingModeNames[wm]
	}
	return "invalid writing-mode"
}

// NewWritingMode parses a writing-mode keyword, accepting the
// short XSL 1.1 forms "lr", "rl" and "tb".
func NewWritingMode(s string) (WritingMode, bool) {
	switch s {
	case "lr-tb", "lr":
		return LrTb, true
	case "rl-tb", "rl":
		return RlTb, true
	case "tb-rl", "tb":
		return TbRl, true
	}
	return 0, false
}

// Corresponding stores the physical property a logical one
// maps to, for each writing mode: lr-tb, rl-tb and tb-rl.
//
// See https://www.w3.org/TR/xsl11/#writing-mode-related
type Corresponding [3]KnownProp

// Select returns the property corresponding to [wm].
func (c Corresponding) Select(wm WritingMode) KnownProp { return c[wm] }

// Has returns true if [p] is one of the candidates.
func (c Corresponding) Has(p KnownProp) bool {
	return c[0] == p || c[1] == p || c[2] == p
}

// In lr-tb, before/after/start/end are top/bottom/left/right,
// in rl-tb top/bottom/right/left and in tb-rl right/left/top/bottom.
var (
	MarginStart = Corresponding{PMarginLeft, PMarginRight, PMarginTop}
	MarginEnd   = Corresponding{PMarginRight, PMarginLeft, PMarginBottom}

	PaddingBefore = Corresponding{PPaddingTop, PPaddingTop, PPaddingRight}
	PaddingAfter  = Corresponding{PPaddingBottom, PPaddingBottom, PPaddingLeft}
	PaddingStart  = Corresponding{PPaddingLeft, PPaddingRight, PPaddingTop}
	PaddingEnd    = Corresponding{PPaddingRight, PPaddingLeft, PPaddingBottom}

	BorderBeforeWidth = Corresponding{PBorderTopWidth, PBorderTopWidth, PBorderRightWidth}
	BorderAfterWidth  = Corresponding{PBorderBottomWidth, PBorderBottomWidth, PBorderLeftWidth}
	BorderStartWidth  = Corresponding{PBorderLeftWidth, PBorderRightWidth, PBorderTopWidth}
	BorderEndWidth    = Corresponding{PBorderRightWidth, PBorderLeftWidth, PBorderBottomWidth}
)
