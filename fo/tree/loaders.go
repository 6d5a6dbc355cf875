package tree

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/fo/validation"
	"github.com/benoitkugler/foprops/logger"
	"github.com/benoitkugler/foprops/utils"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FONamespace is the namespace of the XSL formatting objects.
const FONamespace = "http://www.w3.org/1999/XSL/Format"

// ParseFO reads an XSL-FO document.
// Elements from other namespaces are skipped, with their content.
// Invalid property values are logged and ignored.
func ParseFO(r io.Reader) (*Tree, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("invalid XML input: %w", err)
	}
	root := doc.Root()
	if root == nil || !isFOElement(root) {
		return nil, errors.New("invalid XSL-FO input: missing fo:root element")
	}
	logger.ProgressLogger.Debugf("Loading XSL-FO document (root %s)", root.Tag)

	t := New(root.Tag)
	setFOAttributes(t, t.Root(), root)
	addFOChildren(t, t.Root(), root)
	return t, nil
}

func isFOElement(elem *etree.Element) bool {
	ns := elem.NamespaceURI()
	return ns == FONamespace || ns == ""
}

func addFOChildren(t *Tree, parent NodeID, elem *etree.Element) {
	for _, child := range elem.ChildElements() {
		if !isFOElement(child) {
			continue
		}
		id := t.AddNode(parent, child.Tag)
		setFOAttributes(t, id, child)
		addFOChildren(t, id, child)
	}
}

func setFOAttributes(t *Tree, id NodeID, elem *etree.Element) {
	for _, attr := range elem.Attr {
		name := attr.Key
		switch attr.Space {
		case "":
			if name == "xmlns" {
				continue
			}
		case "xml":
			name = "xml:" + name
		default: // namespace declarations and extensions
			continue
		}
		setAttribute(t, id, name, attr.Value)
	}
}

func setAttribute(t *Tree, id NodeID, name, value string) {
	err := t.SetAttribute(id, name, value)
	switch {
	case err == nil:
	case errors.Is(err, validation.ErrUnknownProperty):
		logger.ProgressLogger.Debugf("Ignored unsupported property %s on %s", name, t.Node(id).Kind)
	default:
		logger.WarningLogger.Warnf("Ignored `%s: %s` on %s: %s", name, value, t.Node(id).Kind, err)
	}
}

// formatting objects used for HTML elements,
// other elements are mapped to "wrapper"
var htmlKinds = map[atom.Atom]string{
	atom.Html:       "root",
	atom.Body:       "flow",
	atom.Div:        "block",
	atom.P:          "block",
	atom.H1:         "block",
	atom.H2:         "block",
	atom.H3:         "block",
	atom.H4:         "block",
	atom.H5:         "block",
	atom.H6:         "block",
	atom.Blockquote: "block",
	atom.Pre:        "block",
	atom.Section:    "block",
	atom.Article:    "block",
	atom.Header:     "block",
	atom.Footer:     "block",
	atom.Ul:         "list-block",
	atom.Ol:         "list-block",
	atom.Li:         "list-item",
	atom.Table:      "table",
	atom.Tr:         "table-row",
	atom.Td:         "table-cell",
	atom.Th:         "table-cell",
	atom.Span:       "inline",
	atom.A:          "inline",
	atom.Em:         "inline",
	atom.Strong:     "inline",
}

var htmlSkipped = utils.NewSet("head", "script", "style", "template", "noscript")

// ParseHTML reads an HTML document, mapping its elements to
// formatting objects. Property attributes, the lang attribute and the
// declarations of the style attributes are used as specified values.
func ParseHTML(r io.Reader) (*Tree, error) {
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("invalid HTML input: %w", err)
	}
	var htmlElement *html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			htmlElement = c
			break
		}
	}
	if htmlElement == nil {
		return nil, errors.New("invalid HTML input: missing html element")
	}
	logger.ProgressLogger.Debug("Loading HTML document")

	t := New(htmlKind(htmlElement))
	setHTMLAttributes(t, t.Root(), htmlElement)
	addHTMLChildren(t, t.Root(), htmlElement)
	return t, nil
}

func htmlKind(n *html.Node) string {
	if kind, ok := htmlKinds[n.DataAtom]; ok {
		return kind
	}
	return "wrapper"
}

func addHTMLChildren(t *Tree, parent NodeID, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || htmlSkipped.Has(c.Data) {
			continue
		}
		id := t.AddNode(parent, htmlKind(c))
		setHTMLAttributes(t, id, c)
		addHTMLChildren(t, id, c)
	}
}

func setHTMLAttributes(t *Tree, id NodeID, n *html.Node) {
	var style string
	for _, attr := range n.Attr {
		switch {
		case attr.Namespace != "":
		case attr.Key == "style":
			style = attr.Val // applied last, overriding attributes
		case attr.Key == "lang":
			setAttribute(t, id, "xml:lang", attr.Val)
		case isPropertyName(attr.Key):
			setAttribute(t, id, attr.Key, attr.Val)
		}
	}
	for _, declaration := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(declaration, ":")
		if !ok {
			continue
		}
		setAttribute(t, id, strings.ToLower(strings.TrimSpace(name)), strings.TrimSpace(value))
	}
}

func isPropertyName(name string) bool {
	if _, ok := pr.PropsFromNames[name]; ok {
		return true
	}
	_, ok := pr.ShorthandsFromNames[name]
	return ok
}
