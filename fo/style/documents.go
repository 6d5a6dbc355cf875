package style

import (
	"context"
	"fmt"

	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/fo/tree"
	"github.com/benoitkugler/foprops/logger"
	"golang.org/x/sync/errgroup"
)

// Document is a named tree.
type Document struct {
	Name string
	Tree *tree.Tree
}

// ResolveOptions configures [ResolveDocuments].
type ResolveOptions struct {
	// Properties to resolve, defaulting to start-indent and end-indent.
	Properties []pr.KnownProp
	// Workers is the maximum number of documents resolved at the same time.
	Workers int
	// Makers defaults to [DefaultMakers].
	Makers *Makers
}

// NodeValues are the used values of one node, in the order of
// [ResolveOptions.Properties].
type NodeValues struct {
	Node   tree.NodeID
	Kind   string
	Depth  int
	Values []pr.Property
}

// Result stores the values of every node of a document, in document order.
type Result struct {
	Name  string
	Nodes []NodeValues
}

// ResolveDocuments resolves the requested properties for every node of
// each document. Documents are processed concurrently, with one [Engine] each.
// Cancellation is checked between nodes. The first error stops the processing.
func ResolveDocuments(ctx context.Context, docs []Document, opts ResolveOptions) ([]Result, error) {
	if len(opts.Properties) == 0 {
		opts.Properties = []pr.KnownProp{pr.PStartIndent, pr.PEndIndent}
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Makers == nil {
		opts.Makers = DefaultMakers()
	}
	logger.ProgressLogger.Infof("Resolving %d document(s) with %d worker(s)", len(docs), opts.Workers)

	out := make([]Result, len(docs))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, doc := range docs {
		g.Go(func() error {
			res, err := resolveDocument(groupCtx, doc, opts)
			if err != nil {
				return fmt.Errorf("document %s: %w", doc.Name, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func resolveDocument(ctx context.Context, doc Document, opts ResolveOptions) (Result, error) {
	engine := NewEngine(doc.Tree, opts.Makers)
	t := engine.Tree()
	var order []NodeValues
	t.Walk(func(id tree.NodeID, depth int) {
		order = append(order, NodeValues{Node: id, Kind: t.Node(id).Kind, Depth: depth})
	})

	for i := range order {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		values := make([]pr.Property, len(opts.Properties))
		for j, p := range opts.Properties {
			v, err := engine.Get(order[i].Node, p)
			if err != nil {
				return Result{}, err
			}
			values[j] = v
		}
		order[i].Values = values
	}
	logger.ProgressLogger.Debugf("Resolved %d node(s) of %s", len(order), doc.Name)
	return Result{Name: doc.Name, Nodes: order}, nil
}
