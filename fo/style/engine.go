package style

import (
	"fmt"

	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/fo/tree"
)

// Engine resolves the properties of one tree.
// It is not safe for concurrent use: use one engine per tree.
type Engine struct {
	tree   *tree.Tree
	makers *Makers
	lists  []*PropertyList // indexed by node, created on first use
}

// NewEngine returns an engine for [t]. If [makers] is nil,
// [DefaultMakers] is used.
// [t] must not be modified while the engine is in use.
func NewEngine(t *tree.Tree, makers *Makers) *Engine {
	if makers == nil {
		makers = DefaultMakers()
	}
	return &Engine{tree: t, makers: makers, lists: make([]*PropertyList, t.Len())}
}

// Tree returns the tree whose properties are resolved.
func (e *Engine) Tree() *tree.Tree { return e.tree }

// PropertyList returns the list of the node [id], creating it if needed.
func (e *Engine) PropertyList(id tree.NodeID) *PropertyList {
	if n := e.tree.Len(); len(e.lists) < n { // nodes added since the last reset
		e.lists = append(e.lists, make([]*PropertyList, n-len(e.lists))...)
	}
	pl := e.lists[id]
	if pl == nil {
		pl = &PropertyList{engine: e, node: id}
		e.lists[id] = pl
	}
	return pl
}

// Get returns the used value of [p] for the node [id].
// Errors are always [*PropertyComputationError].
func (e *Engine) Get(id tree.NodeID, p pr.KnownProp) (pr.Property, error) {
	if id < 0 || int(id) >= e.tree.Len() {
		return nil, &PropertyComputationError{Property: p, Node: id, Err: fmt.Errorf("invalid node %d", id)}
	}
	return e.PropertyList(id).Get(p)
}

// GetNumeric is the same as [Engine.Get], for numeric properties.
func (e *Engine) GetNumeric(id tree.NodeID, p pr.KnownProp) (pr.Numeric, error) {
	if id < 0 || int(id) >= e.tree.Len() {
		return pr.Numeric{}, &PropertyComputationError{Property: p, Node: id, Err: fmt.Errorf("invalid node %d", id)}
	}
	return e.PropertyList(id).GetNumeric(p)
}

// Reset discards all the cached values.
func (e *Engine) Reset() {
	e.lists = make([]*PropertyList, e.tree.Len())
}

// Sides stores physical lengths.
type Sides struct {
	Top, Right, Bottom, Left pr.Numeric
}

// Edges are the used values needed by a layout to place
// the content rectangle of the areas of a node.
type Edges struct {
	StartIndent, EndIndent pr.Numeric

	Margin, Padding, BorderWidth Sides
}

// Edges resolves all the box edges properties of the node [id].
func (e *Engine) Edges(id tree.NodeID) (Edges, error) {
	var (
		out  Edges
		errs error
	)
	get := func(p pr.KnownProp, dst *pr.Numeric) {
		if errs != nil {
			return
		}
		*dst, errs = e.GetNumeric(id, p)
	}
	get(pr.PStartIndent, &out.StartIndent)
	get(pr.PEndIndent, &out.EndIndent)
	get(pr.PMarginTop, &out.Margin.Top)
	get(pr.PMarginRight, &out.Margin.Right)
	get(pr.PMarginBottom, &out.Margin.Bottom)
	get(pr.PMarginLeft, &out.Margin.Left)
	get(pr.PPaddingTop, &out.Padding.Top)
	get(pr.PPaddingRight, &out.Padding.Right)
	get(pr.PPaddingBottom, &out.Padding.Bottom)
	get(pr.PPaddingLeft, &out.Padding.Left)
	get(pr.PBorderTopWidth, &out.BorderWidth.Top)
	get(pr.PBorderRightWidth, &out.BorderWidth.Right)
	get(pr.PBorderBottomWidth, &out.BorderWidth.Bottom)
	get(pr.PBorderLeftWidth, &out.BorderWidth.Left)
	if errs != nil {
		return Edges{}, errs
	}
	return out, nil
}
