package style

import (
	"errors"
	"fmt"

	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/fo/tree"
)

// ErrCircularDependency is matched by the errors returned when
// a property depends on itself, for the same node.
var ErrCircularDependency = errors.New("circular property dependency")

// CircularDependencyError is returned when the value of [Property]
// on [Node] is requested while it is being computed.
type CircularDependencyError struct {
	Property pr.KnownProp
	Node     tree.NodeID
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s on node %d is already being computed", e.Property, e.Node)
}

func (e *CircularDependencyError) Is(target error) bool { return target == ErrCircularDependency }

// PropertyComputationError reports the failure to compute
// the used value of [Property] on [Node].
// The underlying cause is available with [errors.Is] and [errors.As].
type PropertyComputationError struct {
	Property pr.KnownProp
	Node     tree.NodeID
	Kind     string // the formatting object of the node
	Err      error
}

func (e *PropertyComputationError) Error() string {
	return fmt.Sprintf("computing %s on %s (node %d): %s", e.Property, e.Kind, e.Node, e.Err)
}

func (e *PropertyComputationError) Unwrap() error { return e.Err }
