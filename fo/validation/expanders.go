package validation

import (
	"fmt"

	"github.com/benoitkugler/foprops/fo/parser"
	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/utils"
	"golang.org/x/text/language"
)

type expander func(name pr.Shorthand, tokens []parser.Token) (pr.Properties, error)

var expanders = [pr.NbShorthands]expander{
	pr.SMargin:       expandFourSides,
	pr.SPadding:      expandFourSides,
	pr.SBorderWidth:  expandFourSides,
	pr.SBorder:       expandBorder,
	pr.SBorderTop:    expandBorder,
	pr.SBorderRight:  expandBorder,
	pr.SBorderBottom: expandBorder,
	pr.SBorderLeft:   expandBorder,
	pr.SXMLLang:      expandXMLLang,
}

var borderStyles = utils.NewSet(
	"none", "hidden", "dotted", "dashed", "solid",
	"double", "groove", "ridge", "inset", "outset",
)

func expand(name pr.Shorthand, tokens []parser.Token) (pr.Properties, error) {
	if keyword := getSingleKeyword(tokens); keyword == "inherit" || keyword == "initial" {
		out := make(pr.Properties, len(pr.Longhands[name]))
		for _, p := range pr.Longhands[name] {
			out[p] = pr.NewDefaultValue(keyword)
		}
		return out, nil
	}
	out, err := expanders[name](name, tokens)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", name, err)
	}
	return out, nil
}

// Expand a property setting the four sides, in the
// [top, right, bottom, left] order.
func expandFourSides(name pr.Shorthand, tokens []parser.Token) (pr.Properties, error) {
	// Make sure we have 4 tokens
	switch len(tokens) {
	case 1:
		tokens = []parser.Token{tokens[0], tokens[0], tokens[0], tokens[0]}
	case 2:
		tokens = []parser.Token{tokens[0], tokens[1], tokens[0], tokens[1]} // (bottom, left) defaults to (top, right)
	case 3:
		tokens = append(tokens, tokens[1]) // left defaults to right
	case 4:
	default:
		return nil, fmt.Errorf("%w: expected 1 to 4 token components got %d", ErrInvalidValue, len(tokens))
	}

	out := make(pr.Properties, 4)
	for index, expandedName := range pr.Longhands[name] {
		v := validators[expandedName]([]parser.Token{tokens[index]})
		if v == nil {
			return nil, fmt.Errorf("%w for %s: %s", ErrInvalidValue, expandedName, tokens[index])
		}
		out[expandedName] = v
	}
	return out, nil
}

// Expand the border shorthands. Only the width component is
// kept; the style and color components are checked for syntax and dropped.
// An omitted width defaults to "medium" when a visible style is given,
// and to the initial value otherwise.
func expandBorder(name pr.Shorthand, tokens []parser.Token) (pr.Properties, error) {
	var (
		width        pr.Numeric
		hasWidth     bool
		visibleStyle bool
		hasStyle     bool
		hasColor     bool
	)
	for _, token := range tokens {
		if w, ok := getBorderWidth(token); ok && !hasWidth {
			width, hasWidth = w, true
			continue
		}
		ident, ok := token.(parser.Ident)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected %s", ErrInvalidValue, token)
		}
		keyword := string(ident)
		if borderStyles.Has(keyword) && !hasStyle {
			hasStyle = true
			visibleStyle = keyword != "none" && keyword != "hidden"
			continue
		}
		if !hasColor {
			hasColor = true // color names are not validated further
			continue
		}
		return nil, fmt.Errorf("%w: unexpected %s", ErrInvalidValue, token)
	}

	if !hasWidth {
		if visibleStyle {
			width = pr.BorderWidthKeywords["medium"]
		} else {
			width = pr.InitialValues[pr.PBorderTopWidth].(pr.Numeric)
		}
	}

	out := make(pr.Properties, len(pr.Longhands[name]))
	for _, p := range pr.Longhands[name] {
		out[p] = width
	}
	return out, nil
}

// Expand xml:lang into language and country.
// The country is only set when the tag explicitly carries a region.
func expandXMLLang(_ pr.Shorthand, tokens []parser.Token) (pr.Properties, error) {
	keyword := getSingleKeyword(tokens)
	if keyword == "" {
		return nil, fmt.Errorf("%w: expected a language tag", ErrInvalidValue)
	}
	tag, err := language.Parse(keyword)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValue, err)
	}
	base, _ := tag.Base()
	out := pr.Properties{
		pr.PLanguage: pr.String(base.String()),
		pr.PCountry:  pr.String("none"),
	}
	if region, conf := tag.Region(); conf == language.Exact {
		out[pr.PCountry] = pr.String(region.String())
	}
	return out, nil
}
