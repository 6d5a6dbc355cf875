// Package style computes the used values of the properties of a
// formatting objects tree, on demand, from the specified values.
//
// Each node has a [PropertyList], caching one entry per property.
// Missing values are computed by the [Maker] registered for the
// property, which may query other properties, of the same node
// or of its ancestors.
package style

import (
	"errors"
	"fmt"

	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/fo/tree"
)

// State is the resolution state of a property, for one node.
type State uint8

const (
	Unresolved State = iota
	InProgress
	Resolved
	Failed // the last computation failed; the next query computes again
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case InProgress:
		return "in progress"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("<state %d>", uint8(s))
	}
}

type entry struct {
	state State
	value pr.Property // valid for Resolved
	err   error       // valid for Failed
}

// PropertyList gives access to the properties of one node.
type PropertyList struct {
	engine  *Engine
	node    tree.NodeID
	entries [pr.NbProps]entry
}

// Node returns the node owning the list.
func (pl *PropertyList) Node() tree.NodeID { return pl.node }

func (pl *PropertyList) treeNode() *tree.Node { return pl.engine.tree.Node(pl.node) }

// State returns the resolution state of [p], and the last error
// for a failed computation.
func (pl *PropertyList) State(p pr.KnownProp) (State, error) {
	if p >= pr.NbProps {
		return Unresolved, nil
	}
	e := pl.entries[p]
	return e.state, e.err
}

// GetExplicit returns the value of [p] set on the node, if any.
// A nil value is ignored.
func (pl *PropertyList) GetExplicit(p pr.KnownProp) (pr.Property, bool) {
	v := pl.treeNode().Specified[p]
	return v, v != nil
}

// GetExplicitOrShorthand returns the value of [p] set on the node,
// either directly or by a shorthand. The most specific shorthand wins.
func (pl *PropertyList) GetExplicitOrShorthand(p pr.KnownProp) (pr.Property, bool) {
	if v, ok := pl.GetExplicit(p); ok {
		return v, true
	}
	return pl.getShorthand(p)
}

func (pl *PropertyList) getShorthand(p pr.KnownProp) (pr.Property, bool) {
	shorthands := pl.treeNode().Shorthands
	for _, s := range p.Shorthands() {
		if expanded, ok := shorthands[s]; ok {
			if v := expanded[p]; v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

// GetInherited returns the used value of [p] on the parent node,
// or its initial value for the root.
func (pl *PropertyList) GetInherited(p pr.KnownProp) (pr.Property, error) {
	parent := pl.engine.tree.Parent(pl.node)
	if parent == tree.NoNode {
		return pr.InitialValues[p], nil
	}
	return pl.engine.PropertyList(parent).Get(p)
}

// Get returns the used value of [p], computing and caching it if needed.
// Returned errors are [*PropertyComputationError].
func (pl *PropertyList) Get(p pr.KnownProp) (pr.Property, error) {
	if p == 0 || p >= pr.NbProps {
		return nil, pl.wrap(p, fmt.Errorf("unknown property %s", p))
	}
	e := &pl.entries[p]
	switch e.state {
	case Resolved:
		return e.value, nil
	case InProgress:
		return nil, pl.wrap(p, &CircularDependencyError{Property: p, Node: pl.node})
	}

	e.state = InProgress
	v, err := pl.engine.makers.Maker(p).Compute(pl)
	if err != nil {
		*e = entry{state: Failed, err: err}
		return nil, pl.wrap(p, err)
	}
	*e = entry{state: Resolved, value: v}
	return v, nil
}

// GetNumeric is a convenience wrapper for [PropertyList.Get],
// returning an error for non numeric values.
func (pl *PropertyList) GetNumeric(p pr.KnownProp) (pr.Numeric, error) {
	v, err := pl.Get(p)
	if err != nil {
		return pr.Numeric{}, err
	}
	n, err := pr.AsNumeric(v)
	if err != nil {
		return pr.Numeric{}, pl.wrap(p, err)
	}
	return n, nil
}

// GetWritingMode resolves the writing mode of the node and returns
// the property of [c] corresponding to it.
func (pl *PropertyList) GetWritingMode(c pr.Corresponding) (pr.KnownProp, error) {
	v, err := pl.Get(pr.PWritingMode)
	if err != nil {
		return 0, err
	}
	wm, ok := v.(pr.WritingMode)
	if !ok || wm > pr.TbRl {
		return 0, pl.wrap(pr.PWritingMode, fmt.Errorf("unexpected writing mode %v", v))
	}
	return c.Select(wm), nil
}

// wrap does not nest the errors already attributed to a property
func (pl *PropertyList) wrap(p pr.KnownProp, err error) error {
	var pce *PropertyComputationError
	if errors.As(err, &pce) {
		return err
	}
	return &PropertyComputationError{Property: p, Node: pl.node, Kind: pl.treeNode().Kind, Err: err}
}

// resolveSpecified returns the used value for the specified value [v] of [p]:
// default keywords are replaced and font relative lengths resolved.
// Percentages are kept, except for the font size.
func (pl *PropertyList) resolveSpecified(p pr.KnownProp, v pr.Property) (pr.Property, error) {
	switch v := v.(type) {
	case pr.DefaultValue:
		if v == pr.Inherit {
			return pl.GetInherited(p)
		}
		return pr.InitialValues[p], nil
	case pr.Numeric:
		if v.Unit == pr.Em || (v.Unit == pr.Percentage && p == pr.PFontSize) {
			basis, err := pl.fontSizeBasis(p)
			if err != nil {
				return nil, err
			}
			return v.Resolve(basis)
		}
	}
	return v, nil
}

// the font size is relative to the parent font size
func (pl *PropertyList) fontSizeBasis(p pr.KnownProp) (pr.Numeric, error) {
	if p == pr.PFontSize {
		v, err := pl.GetInherited(pr.PFontSize)
		if err != nil {
			return pr.Numeric{}, err
		}
		return pr.AsNumeric(v)
	}
	return pl.GetNumeric(pr.PFontSize)
}
