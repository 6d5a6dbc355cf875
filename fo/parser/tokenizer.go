// Package parser splits property values, as found in attributes,
// into a list of lexical tokens.
//
// The grammar of XSL property expressions is much richer (functions,
// arithmetic); only the space separated components needed by the box
// edges properties are supported.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRe = regexp.MustCompile(`^[-+]?([0-9]*\.)?[0-9]+([eE][+-]?[0-9]+)?`)
	identRe  = regexp.MustCompile(`^-?[a-zA-Z_][a-zA-Z0-9_:-]*$`)
)

// Token is one of [Number], [Percentage], [Dimension] or [Ident].
type Token interface {
	fmt.Stringer
	isToken()
}

func (Number) isToken()     {}
func (Percentage) isToken() {}
func (Dimension) isToken()  {}
func (Ident) isToken()      {}

type NumericToken struct {
	Representation string
	Value          float64
}

type Number NumericToken

func (n Number) String() string { return n.Representation }

type Percentage NumericToken

func (p Percentage) String() string { return p.Representation + "%" }

type Dimension struct {
	NumericToken
	Unit string // lower case
}

func (d Dimension) String() string { return d.Representation + d.Unit }

// Ident is a keyword, or any other name, such as a language tag.
type Ident string

func (i Ident) String() string { return string(i) }

// Tokenize splits [value] on whitespace and returns one token per component.
func Tokenize(value string) ([]Token, error) {
	fields := strings.Fields(value)
	out := make([]Token, 0, len(fields))
	for _, field := range fields {
		token, err := parseComponent(field)
		if err != nil {
			return nil, err
		}
		out = append(out, token)
	}
	return out, nil
}

func parseComponent(field string) (Token, error) {
	match := numberRe.FindStringIndex(field)
	if match == nil {
		if !identRe.MatchString(field) {
			return nil, fmt.Errorf("invalid value component %q", field)
		}
		return Ident(strings.ToLower(field)), nil
	}
	repr := field[:match[1]]
	value, err := strconv.ParseFloat(repr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %s", repr, err)
	}
	if value == 0 {
		value = 0 // workaround -0
	}
	n := NumericToken{Representation: repr, Value: value}
	switch rest := field[match[1]:]; {
	case rest == "":
		return Number(n), nil
	case rest == "%":
		return Percentage(n), nil
	case identRe.MatchString(rest):
		return Dimension{NumericToken: n, Unit: strings.ToLower(rest)}, nil
	default:
		return nil, fmt.Errorf("invalid unit in %q", field)
	}
}
