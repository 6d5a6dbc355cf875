// Package validation converts the raw (string) values of the properties,
// as found in the attributes of a document, into specified values,
// expanding shorthands into their longhand properties.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/foprops/fo/parser"
	pr "github.com/benoitkugler/foprops/fo/properties"
	"golang.org/x/text/language"
)

// ErrUnknownProperty is returned for names which are neither
// a known property nor a supported shorthand.
var ErrUnknownProperty = errors.New("unknown property")

// ErrInvalidValue is returned for syntactically correct but unsupported values.
var ErrInvalidValue = errors.New("invalid or unsupported value")

// Declaration is a validated property: either a longhand value (Prop and Value
// are set) or the expansion of a shorthand (Shorthand and Expanded are set).
type Declaration struct {
	Name      string
	Prop      pr.KnownProp
	Value     pr.Property
	Shorthand pr.Shorthand
	Expanded  pr.Properties
}

// IsShorthand returns true if the declaration comes from a shorthand.
func (d Declaration) IsShorthand() bool { return d.Shorthand != 0 }

// validator returns nil for invalid tokens
type validator func(tokens []parser.Token) pr.Property

var validators = [pr.NbProps]validator{
	pr.PWritingMode: writingMode,
	pr.PFontSize:    fontSize,
	pr.PLanguage:    languageCode,
	pr.PCountry:     countryCode,
	pr.PStartIndent: lengthOrPercentage,
	pr.PEndIndent:   lengthOrPercentage,

	pr.PMarginTop:    lengthOrPercentage,
	pr.PMarginRight:  lengthOrPercentage,
	pr.PMarginBottom: lengthOrPercentage,
	pr.PMarginLeft:   lengthOrPercentage,

	pr.PPaddingTop:    positiveLengthOrPercentage,
	pr.PPaddingRight:  positiveLengthOrPercentage,
	pr.PPaddingBottom: positiveLengthOrPercentage,
	pr.PPaddingLeft:   positiveLengthOrPercentage,
	pr.PPaddingBefore: positiveLengthOrPercentage,
	pr.PPaddingAfter:  positiveLengthOrPercentage,
	pr.PPaddingStart:  positiveLengthOrPercentage,
	pr.PPaddingEnd:    positiveLengthOrPercentage,

	pr.PBorderTopWidth:    borderWidth,
	pr.PBorderRightWidth:  borderWidth,
	pr.PBorderBottomWidth: borderWidth,
	pr.PBorderLeftWidth:   borderWidth,
	pr.PBorderBeforeWidth: borderWidth,
	pr.PBorderAfterWidth:  borderWidth,
	pr.PBorderStartWidth:  borderWidth,
	pr.PBorderEndWidth:    borderWidth,
}

// Validate parses and validates the value of the property or shorthand [name].
func Validate(name, value string) (Declaration, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	tokens, err := parser.Tokenize(value)
	if err != nil {
		return Declaration{}, err
	}
	if len(tokens) == 0 {
		return Declaration{}, fmt.Errorf("%w: empty value", ErrInvalidValue)
	}

	if prop, ok := pr.PropsFromNames[name]; ok {
		v, err := validateNonShorthand(prop, tokens)
		if err != nil {
			return Declaration{}, err
		}
		return Declaration{Name: name, Prop: prop, Value: v}, nil
	}

	if short, ok := pr.ShorthandsFromNames[name]; ok {
		expanded, err := expand(short, tokens)
		if err != nil {
			return Declaration{}, err
		}
		return Declaration{Name: name, Shorthand: short, Expanded: expanded}, nil
	}

	return Declaration{}, fmt.Errorf("%w %q", ErrUnknownProperty, name)
}

func validateNonShorthand(prop pr.KnownProp, tokens []parser.Token) (pr.Property, error) {
	if keyword := getSingleKeyword(tokens); keyword == "inherit" || keyword == "initial" {
		return pr.NewDefaultValue(keyword), nil
	}
	v := validators[prop](tokens)
	if v == nil {
		return nil, fmt.Errorf("%w for %s: %s", ErrInvalidValue, prop, serialize(tokens))
	}
	return v, nil
}

func serialize(tokens []parser.Token) string {
	chunks := make([]string, len(tokens))
	for i, t := range tokens {
		chunks[i] = t.String()
	}
	return strings.Join(chunks, " ")
}

// If `tokens` is a 1-element list of keywords, return its name.
func getSingleKeyword(tokens []parser.Token) string {
	if len(tokens) == 1 {
		if ident, ok := tokens[0].(parser.Ident); ok {
			return string(ident)
		}
	}
	return ""
}

// fits returns true if the rounded [v] is a valid [pr.Numeric.Value]
func fits(v float64) bool {
	v = math.Round(v)
	return v >= math.MinInt64 && v < math.MaxInt64
}

func getLength(token parser.Token, negative, percentage bool) (pr.Numeric, bool) {
	switch token := token.(type) {
	case parser.Percentage:
		if percentage && (negative || token.Value >= 0) && fits(token.Value*1000) {
			return pr.Percent(token.Value), true
		}
	case parser.Dimension:
		if !negative && token.Value < 0 {
			return pr.Numeric{}, false
		}
		if token.Unit == "em" {
			if !fits(token.Value * 1000) {
				return pr.Numeric{}, false
			}
			return pr.Ems(token.Value), true
		}
		if factor, isKnown := pr.LengthsToMillipoints[token.Unit]; isKnown {
			if !fits(token.Value * factor) {
				return pr.Numeric{}, false
			}
			return pr.Millipoints(int64(math.Round(token.Value * factor))), true
		}
	case parser.Number:
		if token.Value == 0 {
			return pr.Zero(), true
		}
	}
	return pr.Numeric{}, false
}

func lengthOrPercentage(tokens []parser.Token) pr.Property {
	if len(tokens) != 1 {
		return nil
	}
	if l, ok := getLength(tokens[0], true, true); ok {
		return l
	}
	return nil
}

func positiveLengthOrPercentage(tokens []parser.Token) pr.Property {
	if len(tokens) != 1 {
		return nil
	}
	if l, ok := getLength(tokens[0], false, true); ok {
		return l
	}
	return nil
}

func borderWidth(tokens []parser.Token) pr.Property {
	if len(tokens) != 1 {
		return nil
	}
	if l, ok := getBorderWidth(tokens[0]); ok {
		return l
	}
	return nil
}

func getBorderWidth(token parser.Token) (pr.Numeric, bool) {
	if ident, ok := token.(parser.Ident); ok {
		w, ok := pr.BorderWidthKeywords[string(ident)]
		return w, ok
	}
	return getLength(token, false, false)
}

func fontSize(tokens []parser.Token) pr.Property {
	if len(tokens) != 1 {
		return nil
	}
	if keyword := getSingleKeyword(tokens); keyword != "" {
		if v, ok := pr.FontSizeKeywords[keyword]; ok {
			return v
		}
		return nil
	}
	if l, ok := getLength(tokens[0], false, true); ok {
		return l
	}
	return nil
}

func writingMode(tokens []parser.Token) pr.Property {
	if wm, ok := pr.NewWritingMode(getSingleKeyword(tokens)); ok {
		return wm
	}
	return nil
}

func languageCode(tokens []parser.Token) pr.Property {
	keyword := getSingleKeyword(tokens)
	if keyword == "none" {
		return pr.String("none")
	}
	base, err := language.ParseBase(keyword)
	if err != nil {
		return nil
	}
	return pr.String(base.String())
}

func countryCode(tokens []parser.Token) pr.Property {
	keyword := getSingleKeyword(tokens)
	if keyword == "none" {
		return pr.String("none")
	}
	region, err := language.ParseRegion(keyword)
	if err != nil {
		return nil
	}
	return pr.String(region.String())
}
