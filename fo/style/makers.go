package style

import (
	"fmt"
	"sync"

	pr "github.com/benoitkugler/foprops/fo/properties"
)

// Maker computes the used value of one property, for the node of [pl],
// when it is not already cached.
type Maker interface {
	Compute(pl *PropertyList) (pr.Property, error)
}

// PlainMaker uses the value set on the node, else the parent value
// for inherited properties, else the initial value.
type PlainMaker struct {
	Property pr.KnownProp
}

func (m PlainMaker) Compute(pl *PropertyList) (pr.Property, error) {
	if v, ok := pl.GetExplicitOrShorthand(m.Property); ok {
		return pl.resolveSpecified(m.Property, v)
	}
	return m.fallback(pl)
}

func (m PlainMaker) fallback(pl *PropertyList) (pr.Property, error) {
	if m.Property.IsInherited() {
		return pl.GetInherited(m.Property)
	}
	return pr.InitialValues[m.Property], nil
}

// PhysicalMaker handles a physical property which is the target
// of logical properties. In order of precedence, it uses :
//   - the value set directly on the node
//   - the value of the logical property mapping to it in the current writing mode
//   - the value set by a shorthand
//   - the initial value
type PhysicalMaker struct {
	Property pr.KnownProp
	Logical  []CorrespondingBinding // the logical properties which may map to [Property]
}

func (m PhysicalMaker) Compute(pl *PropertyList) (pr.Property, error) {
	if v, ok := pl.GetExplicit(m.Property); ok {
		return pl.resolveSpecified(m.Property, v)
	}
	for _, binding := range m.Logical {
		target, err := pl.GetWritingMode(binding.Physical)
		if err != nil {
			return nil, err
		}
		if target != m.Property {
			continue
		}
		if v, ok := pl.GetExplicitOrShorthand(binding.Logical); ok {
			return pl.resolveSpecified(binding.Logical, v)
		}
	}
	return PlainMaker{Property: m.Property}.Compute(pl)
}

// CorrespondingMaker handles a logical, writing mode relative, property.
// When not set, it takes the value of the physical property
// selected in [Physical] by the writing mode.
type CorrespondingMaker struct {
	Property pr.KnownProp
	Physical pr.Corresponding
}

func (m CorrespondingMaker) Compute(pl *PropertyList) (pr.Property, error) {
	if v, ok := pl.GetExplicitOrShorthand(m.Property); ok {
		return pl.resolveSpecified(m.Property, v)
	}
	target, err := pl.GetWritingMode(m.Physical)
	if err != nil {
		return nil, err
	}
	return pl.Get(target)
}

// IndentMaker computes start-indent or end-indent (the base property) from
// the margin, padding and border width on the same side of the node.
type IndentMaker struct {
	CorrespondingMaker // the base indent property and its margin triple

	Padding     pr.Corresponding
	BorderWidth pr.Corresponding
}

func (m IndentMaker) Compute(pl *PropertyList) (pr.Property, error) {
	v, err := m.compute(pl)
	if err != nil {
		return nil, &PropertyComputationError{Property: m.Property, Node: pl.node, Kind: pl.treeNode().Kind, Err: err}
	}
	return v, nil
}

func (m IndentMaker) compute(pl *PropertyList) (pr.Numeric, error) {
	marginProp, err := pl.GetWritingMode(m.Physical)
	if err != nil {
		return pr.Numeric{}, err
	}
	paddingProp, err := pl.GetWritingMode(m.Padding)
	if err != nil {
		return pr.Numeric{}, err
	}
	borderProp, err := pl.GetWritingMode(m.BorderWidth)
	if err != nil {
		return pr.Numeric{}, err
	}
	padding, err := pl.GetNumeric(paddingProp)
	if err != nil {
		return pr.Numeric{}, err
	}
	border, err := pl.GetNumeric(borderProp)
	if err != nil {
		return pr.Numeric{}, err
	}

	var margin pr.Numeric
	if _, ok := pl.GetExplicitOrShorthand(marginProp); ok {
		margin, err = pl.GetNumeric(marginProp)
		if err != nil {
			return pr.Numeric{}, err
		}
	} else {
		// deduce the margin from the indent set on the node
		if explicit, ok := pl.GetExplicit(m.Property); ok {
			indent, err := pl.resolveSpecified(m.Property, explicit)
			if err != nil {
				return pr.Numeric{}, err
			}
			margin, err = subtractInherited(pl, m.Property, indent)
			if err != nil {
				return pr.Numeric{}, err
			}
		}
		if margin, err = pr.Subtract(margin, padding); err != nil {
			return pr.Numeric{}, err
		}
		if margin, err = pr.Subtract(margin, border); err != nil {
			return pr.Numeric{}, err
		}
	}

	v := pr.Zero()
	if !pl.treeNode().GeneratesReferenceArea() {
		inherited, err := inheritedNumeric(pl, m.Property)
		if err != nil {
			return pr.Numeric{}, err
		}
		v = inherited
	}
	for _, term := range [...]pr.Numeric{margin, padding, border} {
		if v, err = pr.Add(v, term); err != nil {
			return pr.Numeric{}, err
		}
	}
	return v, nil
}

func inheritedNumeric(pl *PropertyList, p pr.KnownProp) (pr.Numeric, error) {
	v, err := pl.GetInherited(p)
	if err != nil {
		return pr.Numeric{}, err
	}
	return pr.AsNumeric(v)
}

func subtractInherited(pl *PropertyList, p pr.KnownProp, v pr.Property) (pr.Numeric, error) {
	n, err := pr.AsNumeric(v)
	if err != nil {
		return pr.Numeric{}, err
	}
	inherited, err := inheritedNumeric(pl, p)
	if err != nil {
		return pr.Numeric{}, err
	}
	return pr.Subtract(n, inherited)
}

// IndentBinding configures an [IndentMaker].
type IndentBinding struct {
	Base        pr.KnownProp
	Margin      pr.Corresponding
	Padding     pr.Corresponding
	BorderWidth pr.Corresponding
}

// CorrespondingBinding configures a [CorrespondingMaker] for [Logical],
// and the [PhysicalMaker]s of its targets.
type CorrespondingBinding struct {
	Logical  pr.KnownProp
	Physical pr.Corresponding
}

// Bindings lists the relations between properties.
type Bindings struct {
	Indents       []IndentBinding
	Corresponding []CorrespondingBinding
}

// DefaultBindings returns the relations defined by XSL 1.1
// for the supported properties.
func DefaultBindings() Bindings {
	return Bindings{
		Indents: []IndentBinding{
			{Base: pr.PStartIndent, Margin: pr.MarginStart, Padding: pr.PaddingStart, BorderWidth: pr.BorderStartWidth},
			{Base: pr.PEndIndent, Margin: pr.MarginEnd, Padding: pr.PaddingEnd, BorderWidth: pr.BorderEndWidth},
		},
		Corresponding: []CorrespondingBinding{
			{Logical: pr.PPaddingBefore, Physical: pr.PaddingBefore},
			{Logical: pr.PPaddingAfter, Physical: pr.PaddingAfter},
			{Logical: pr.PPaddingStart, Physical: pr.PaddingStart},
			{Logical: pr.PPaddingEnd, Physical: pr.PaddingEnd},
			{Logical: pr.PBorderBeforeWidth, Physical: pr.BorderBeforeWidth},
			{Logical: pr.PBorderAfterWidth, Physical: pr.BorderAfterWidth},
			{Logical: pr.PBorderStartWidth, Physical: pr.BorderStartWidth},
			{Logical: pr.PBorderEndWidth, Physical: pr.BorderEndWidth},
		},
	}
}

// Makers associates a [Maker] to each property.
// It is immutable once built and may be shared between engines.
type Makers struct {
	makers [pr.NbProps]Maker
}

// Maker returns the maker registered for [p].
func (m *Makers) Maker(p pr.KnownProp) Maker { return m.makers[p] }

// With returns a copy of [m], using [maker] for [p].
func (m *Makers) With(p pr.KnownProp, maker Maker) *Makers {
	out := *m
	out.makers[p] = maker
	return &out
}

// NewMakers checks [b] and builds the makers table.
// Properties not mentioned in the bindings use a [PlainMaker].
func NewMakers(b Bindings) (*Makers, error) {
	var out Makers
	for i := range out.makers {
		out.makers[i] = PlainMaker{Property: pr.KnownProp(i)}
	}

	bound := pr.NewSet()
	bind := func(p pr.KnownProp, maker Maker) error {
		if p >= pr.NbProps {
			return fmt.Errorf("invalid binding: unknown property %s", p)
		}
		if bound.Has(p) {
			return fmt.Errorf("invalid binding: %s is bound twice", p)
		}
		bound[p] = struct{}{}
		out.makers[p] = maker
		return nil
	}

	physicals := map[pr.KnownProp][]CorrespondingBinding{}
	for _, binding := range b.Corresponding {
		if err := checkTargets(binding.Logical, binding.Physical); err != nil {
			return nil, err
		}
		if err := bind(binding.Logical, CorrespondingMaker{Property: binding.Logical, Physical: binding.Physical}); err != nil {
			return nil, err
		}
		for _, target := range uniqueTargets(binding.Physical) {
			physicals[target] = append(physicals[target], binding)
		}
	}
	for _, p := range pr.AllProps() { // deterministic order
		if logical, ok := physicals[p]; ok {
			if err := bind(p, PhysicalMaker{Property: p, Logical: logical}); err != nil {
				return nil, err
			}
		}
	}

	for _, binding := range b.Indents {
		if err := checkNumeric(binding.Base); err != nil {
			return nil, err
		}
		for _, triple := range [...]pr.Corresponding{binding.Margin, binding.Padding, binding.BorderWidth} {
			if err := checkTargets(binding.Base, triple); err != nil {
				return nil, err
			}
		}
		maker := IndentMaker{
			CorrespondingMaker: CorrespondingMaker{Property: binding.Base, Physical: binding.Margin},
			Padding:            binding.Padding,
			BorderWidth:        binding.BorderWidth,
		}
		if err := bind(binding.Base, maker); err != nil {
			return nil, err
		}
	}

	return &out, nil
}

func uniqueTargets(c pr.Corresponding) []pr.KnownProp {
	var out []pr.KnownProp
	for _, p := range c {
		if !containsProp(out, p) {
			out = append(out, p)
		}
	}
	return out
}

func containsProp(l []pr.KnownProp, p pr.KnownProp) bool {
	for _, q := range l {
		if q == p {
			return true
		}
	}
	return false
}

// checkTargets verifies that the targets of [c] have an absolute numeric
// initial value, so that they are always usable in the indent arithmetic.
func checkTargets(logical pr.KnownProp, c pr.Corresponding) error {
	if c.Has(logical) {
		return fmt.Errorf("invalid binding: %s corresponds to itself", logical)
	}
	for _, target := range c {
		if err := checkNumeric(target); err != nil {
			return fmt.Errorf("invalid binding for %s: %w", logical, err)
		}
	}
	return nil
}

func checkNumeric(p pr.KnownProp) error {
	if p >= pr.NbProps {
		return fmt.Errorf("unknown property %s", p)
	}
	n, ok := pr.InitialValues[p].(pr.Numeric)
	if !ok || !n.IsAbsolute() {
		return fmt.Errorf("%s has no absolute length initial value", p)
	}
	return nil
}

// DefaultMakers returns the makers built from [DefaultBindings].
// The table is built once.
var DefaultMakers = sync.OnceValue(func() *Makers {
	m, err := NewMakers(DefaultBindings())
	if err != nil {
		panic(err)
	}
	return m
})
