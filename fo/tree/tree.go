// Package tree stores the formatting objects of a document and their
// specified property values, in an arena indexed by [NodeID].
package tree

import (
	"fmt"

	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/fo/validation"
	"github.com/benoitkugler/foprops/utils"
)

// NodeID is a handle to a node of a [Tree].
type NodeID int32

// NoNode is the parent of the root.
const NoNode NodeID = -1

// referenceAreaKinds are the formatting objects whose areas
// are reference areas, resetting the indents.
var referenceAreaKinds = utils.NewSet(
	"simple-page-master",
	"region-body",
	"region-before",
	"region-after",
	"region-start",
	"region-end",
	"block-container",
	"inline-container",
	"table-cell",
)

// Node is a formatting object.
type Node struct {
	Kind     string // local name, like "block"
	Parent   NodeID
	Children []NodeID

	// Specified stores the values set on the node,
	// Shorthands the expansions of the shorthands set on the node.
	Specified  pr.Properties
	Shorthands map[pr.Shorthand]pr.Properties

	hasReferenceOverride bool
	referenceOverride    bool
}

// GeneratesReferenceArea returns true if the areas of the node
// establish a new reference area.
func (n *Node) GeneratesReferenceArea() bool {
	if n.hasReferenceOverride {
		return n.referenceOverride
	}
	return referenceAreaKinds.Has(n.Kind)
}

// Tree is an arena of nodes. The root has ID 0.
// A tree must not be modified while being resolved.
type Tree struct {
	nodes []Node
}

// New returns a tree with only a root of the given kind.
func New(rootKind string) *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, newNode(rootKind, NoNode))
	return t
}

func newNode(kind string, parent NodeID) Node {
	return Node{
		Kind:       kind,
		Parent:     parent,
		Specified:  make(pr.Properties),
		Shorthands: make(map[pr.Shorthand]pr.Properties),
	}
}

// AddNode appends a new child to [parent] and returns its handle.
// It panics if [parent] is not in the tree.
func (t *Tree) AddNode(parent NodeID, kind string) NodeID {
	if !t.valid(parent) {
		panic(fmt.Sprintf("invalid parent node %d", parent))
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, newNode(kind, parent))
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

func (t *Tree) valid(id NodeID) bool { return id >= 0 && int(id) < len(t.nodes) }

// Node returns the node [id], which must be valid.
func (t *Tree) Node(id NodeID) *Node { return &t.nodes[id] }

// Parent returns the parent of [id], or [NoNode] for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].Parent }

func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) Root() NodeID { return 0 }

// Walk calls [fn] for each node, parents before children,
// in document order.
func (t *Tree) Walk(fn func(id NodeID, depth int)) {
	type item struct {
		id    NodeID
		depth int
	}
	stack := []item{{id: t.Root()}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(current.id, current.depth)
		children := t.nodes[current.id].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{id: children[i], depth: current.depth + 1})
		}
	}
}

// Specify sets the specified value of [p] on [id].
func (t *Tree) Specify(id NodeID, p pr.KnownProp, v pr.Property) {
	t.nodes[id].Specified[p] = v
}

// SpecifyShorthand stores a copy of the expansion of the shorthand [s] set on [id].
func (t *Tree) SpecifyShorthand(id NodeID, s pr.Shorthand, expanded pr.Properties) {
	t.nodes[id].Shorthands[s] = expanded.Copy()
}

// SetReferenceArea overrides the default, kind based,
// reference area status of [id].
func (t *Tree) SetReferenceArea(id NodeID, generates bool) {
	t.nodes[id].hasReferenceOverride = true
	t.nodes[id].referenceOverride = generates
}

// SetAttribute validates the raw property [name]: [value]
// and stores it on [id].
func (t *Tree) SetAttribute(id NodeID, name, value string) error {
	d, err := validation.Validate(name, value)
	if err != nil {
		return err
	}
	if d.IsShorthand() {
		t.SpecifyShorthand(id, d.Shorthand, d.Expanded)
	} else {
		t.Specify(id, d.Prop, d.Value)
	}
	return nil
}
