package tree

import (
	"strings"
	"testing"

	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena(t *testing.T) {
	tr := New("root")
	flow := tr.AddNode(tr.Root(), "flow")
	b1 := tr.AddNode(flow, "block")
	b2 := tr.AddNode(flow, "block")
	inner := tr.AddNode(b1, "block-container")

	assert.Equal(t, 5, tr.Len())
	assert.Equal(t, NoNode, tr.Parent(tr.Root()))
	assert.Equal(t, flow, tr.Parent(b1))
	assert.Equal(t, []NodeID{b1, b2}, tr.Node(flow).Children)

	var order []NodeID
	var depths []int
	tr.Walk(func(id NodeID, depth int) {
		order = append(order, id)
		depths = append(depths, depth)
	})
	assert.Equal(t, []NodeID{0, flow, b1, inner, b2}, order)
	assert.Equal(t, []int{0, 1, 2, 3, 2}, depths)

	assert.Panics(t, func() { tr.AddNode(NodeID(42), "block") })
	assert.Panics(t, func() { tr.AddNode(NoNode, "block") })
}

func TestReferenceArea(t *testing.T) {
	tr := New("root")
	block := tr.AddNode(tr.Root(), "block")
	cell := tr.AddNode(block, "table-cell")
	container := tr.AddNode(block, "block-container")

	assert.False(t, tr.Node(block).GeneratesReferenceArea())
	assert.True(t, tr.Node(cell).GeneratesReferenceArea())
	assert.True(t, tr.Node(container).GeneratesReferenceArea())

	tr.SetReferenceArea(block, true)
	tr.SetReferenceArea(cell, false)
	assert.True(t, tr.Node(block).GeneratesReferenceArea())
	assert.False(t, tr.Node(cell).GeneratesReferenceArea())
}

func TestSetAttribute(t *testing.T) {
	tr := New("root")
	require.NoError(t, tr.SetAttribute(tr.Root(), "start-indent", "10pt"))
	require.NoError(t, tr.SetAttribute(tr.Root(), "margin", "1pt 2pt"))
	assert.Error(t, tr.SetAttribute(tr.Root(), "padding-left", "-1pt"))

	node := tr.Node(tr.Root())
	testutils.AssertEqual(t, node.Specified, pr.Properties{pr.PStartIndent: pr.Points(10)})
	testutils.AssertEqual(t, node.Shorthands[pr.SMargin], pr.Properties{
		pr.PMarginTop:    pr.Points(1),
		pr.PMarginRight:  pr.Points(2),
		pr.PMarginBottom: pr.Points(1),
		pr.PMarginLeft:   pr.Points(2),
	})
}

func TestSpecifyShorthandCopies(t *testing.T) {
	tr := New("root")
	expanded := pr.Properties{pr.PBorderLeftWidth: pr.Points(1)}
	tr.SpecifyShorthand(tr.Root(), pr.SBorderLeft, expanded)
	expanded[pr.PBorderLeftWidth] = pr.Points(2)
	expanded[pr.PPaddingLeft] = pr.Points(3)

	testutils.AssertEqual(t, tr.Node(tr.Root()).Shorthands[pr.SBorderLeft], pr.Properties{pr.PBorderLeftWidth: pr.Points(1)})
}

const foDocument = `<?xml version="1.0"?>
<fo:root xmlns:fo="http://www.w3.org/1999/XSL/Format" xmlns:svg="http://www.w3.org/2000/svg" xml:lang="en-GB">
  <fo:layout-master-set>
    <fo:simple-page-master master-name="A4" margin="1cm">
      <fo:region-body padding="2pt"/>
    </fo:simple-page-master>
  </fo:layout-master-set>
  <fo:page-sequence master-reference="A4">
    <fo:flow flow-name="xsl-region-body">
      <fo:block start-indent="10pt" padding-left="1pt" border-left-width="-2pt">
        <fo:instream-foreign-object>
          <svg:svg width="10pt"><svg:rect/></svg:svg>
        </fo:instream-foreign-object>
      </fo:block>
    </fo:flow>
  </fo:page-sequence>
</fo:root>`

func TestParseFO(t *testing.T) {
	logs := testutils.CaptureLogs()
	tr, err := ParseFO(strings.NewReader(foDocument))
	require.NoError(t, err)
	logs.CheckEqual([]string{
		"Ignored `border-left-width: -2pt` on block: invalid or unsupported value for border-left-width: -2pt",
	}, t)

	var kinds []string
	tr.Walk(func(id NodeID, _ int) { kinds = append(kinds, tr.Node(id).Kind) })
	assert.Equal(t, []string{
		"root", "layout-master-set", "simple-page-master", "region-body",
		"page-sequence", "flow", "block", "instream-foreign-object",
	}, kinds)

	root := tr.Node(tr.Root())
	testutils.AssertEqual(t, root.Shorthands[pr.SXMLLang], pr.Properties{
		pr.PLanguage: pr.String("en"), pr.PCountry: pr.String("GB"),
	})

	block := tr.Node(6)
	testutils.AssertEqual(t, block.Specified, pr.Properties{
		pr.PStartIndent: pr.Points(10),
		pr.PPaddingLeft: pr.Points(1),
	})
	assert.True(t, tr.Node(3).GeneratesReferenceArea())
	assert.Len(t, tr.Node(7).Children, 0)
}

func TestParseFOInvalid(t *testing.T) {
	_, err := ParseFO(strings.NewReader("<fo:root"))
	assert.Error(t, err)

	_, err = ParseFO(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	assert.Error(t, err)
}

func TestParseHTML(t *testing.T) {
	logs := testutils.CaptureLogs()
	tr, err := ParseHTML(strings.NewReader(`<!DOCTYPE html>
<html lang="fr">
<head><title>Test</title><style>p { margin: 1em }</style></head>
<body>
  <div class="c" margin-left="5pt" style="padding-left: 1pt; border-left: 0.5pt solid; color: red">
    <p style="start-indent: auto">Text</p>
  </div>
  <table><tr><td padding="2pt">Cell</td></tr></table>
</body>
</html>`))
	require.NoError(t, err)
	logs.CheckEqual([]string{
		"Ignored `start-indent: auto` on block: invalid or unsupported value for start-indent: auto",
	}, t)

	var kinds []string
	tr.Walk(func(id NodeID, _ int) { kinds = append(kinds, tr.Node(id).Kind) })
	// the HTML parser inserts the tbody element
	assert.Equal(t, []string{"root", "flow", "block", "block", "table", "wrapper", "table-row", "table-cell"}, kinds)

	div := tr.Node(2)
	testutils.AssertEqual(t, div.Specified, pr.Properties{
		pr.PMarginLeft:  pr.Points(5),
		pr.PPaddingLeft: pr.Points(1),
	})
	testutils.AssertEqual(t, div.Shorthands[pr.SBorderLeft], pr.Properties{pr.PBorderLeftWidth: pr.Points(0.5)})
	testutils.AssertEqual(t, tr.Node(tr.Root()).Shorthands[pr.SXMLLang], pr.Properties{
		pr.PLanguage: pr.String("fr"), pr.PCountry: pr.String("none"),
	})
	assert.True(t, tr.Node(7).GeneratesReferenceArea())
}
