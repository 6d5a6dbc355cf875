// This package defines the types needed to handle the XSL-FO properties
// involved in box edges resolution.
// There are 2 groups of values for a property, separated by the resolution step :
//
//	specified value (set on a node, possibly by a shorthand) -> used value
//
// Both are represented by the [Property] interface : used values are never
// [DefaultValue] and never relative quantities (except unresolved percentages).
package properties

import "fmt"

// Property is either a specified value, as produced by the validation
// step, or a resolved, used value.
type Property interface {
	fmt.Stringer
	isProperty()
}

func (DefaultValue) isProperty() {}
func (WritingMode) isProperty()  {}
func (String) isProperty()       {}

// DefaultValue is one of the special "inherit" or "initial" keywords.
type DefaultValue uint8

const (
	Inherit DefaultValue = iota + 1
	Initial
)

func NewDefaultValue(s string) DefaultValue {
	if s == "initial" {
		return Initial
	}
	return Inherit
}

func (d DefaultValue) String() string {
	switch d {
	case Inherit:
		return "<inherit>"
	case Initial:
		return "<initial>"
	default:
		return "invalid value"
	}
}

// String is a keyword or identifier value, such as a language code.
type String string

func (s String) String() string { return string(s) }

// KnownProp efficiently encode a known property
type KnownProp uint8

func (p KnownProp) String() string {
	if p >= NbProps {
		return fmt.Sprintf("<property %d>", uint8(p))
	}
	return propsNames[p]
}

// IsInherited returns true for the properties whose value
// is taken from the parent node when not specified.
func (p KnownProp) IsInherited() bool { return Inherited.Has(p) }

// Properties is a general container for properties values.
type Properties map[KnownProp]Property

// Copy returns a new map with the same values.
func (p Properties) Copy() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Set is a set of properties.
type Set map[KnownProp]struct{}

func NewSet(props ...KnownProp) Set {
	s := make(Set, len(props))
	for _, p := range props {
		s[p] = struct{}{}
	}
	return s
}

func (s Set) Has(p KnownProp) bool {
	_, in := s[p]
	return in
}
