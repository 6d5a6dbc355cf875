package style

import (
	"errors"
	"testing"

	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/fo/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// set validates and stores name, value pairs
func set(t *testing.T, tr *tree.Tree, id tree.NodeID, attrs ...string) {
	t.Helper()
	for i := 0; i+1 < len(attrs); i += 2 {
		require.NoError(t, tr.SetAttribute(id, attrs[i], attrs[i+1]))
	}
}

func assertNumeric(t *testing.T, e *Engine, id tree.NodeID, p pr.KnownProp, exp pr.Numeric) {
	t.Helper()
	got, err := e.GetNumeric(id, p)
	require.NoError(t, err)
	assert.Equal(t, exp, got, "%s on node %d: expected %s, got %s", p, id, exp, got)
}

func TestIndentFromExplicitIndent(t *testing.T) {
	tr := tree.New("root")
	parent := tr.AddNode(tr.Root(), "block")
	child := tr.AddNode(parent, "block")
	set(t, tr, parent, "start-indent", "2pt")
	set(t, tr, child, "start-indent", "10pt", "padding-left", "1pt", "border-left-width", "0.5pt")

	e := NewEngine(tr, nil)
	assertNumeric(t, e, parent, pr.PStartIndent, pr.Points(2))
	assertNumeric(t, e, child, pr.PStartIndent, pr.Points(10))
}

func TestIndentFromMargin(t *testing.T) {
	tr := tree.New("root")
	child := tr.AddNode(tr.Root(), "block")
	set(t, tr, child, "margin-left", "5pt", "padding-left", "1pt", "border-left-width", "0.5pt")

	e := NewEngine(tr, nil)
	assertNumeric(t, e, child, pr.PStartIndent, pr.Points(6.5))
	assertNumeric(t, e, child, pr.PEndIndent, pr.Zero())
}

func TestIndentReferenceArea(t *testing.T) {
	tr := tree.New("root")
	parent := tr.AddNode(tr.Root(), "block")
	cell := tr.AddNode(parent, "table-cell")
	block := tr.AddNode(cell, "block")
	set(t, tr, parent, "start-indent", "20pt", "end-indent", "3pt")

	e := NewEngine(tr, nil)
	assertNumeric(t, e, cell, pr.PStartIndent, pr.Zero())
	assertNumeric(t, e, cell, pr.PEndIndent, pr.Zero())
	// below the reference area, indents are inherited again
	assertNumeric(t, e, block, pr.PStartIndent, pr.Zero())

	tr.SetReferenceArea(cell, false)
	e.Reset()
	assertNumeric(t, e, cell, pr.PStartIndent, pr.Points(20))
	assertNumeric(t, e, block, pr.PStartIndent, pr.Points(20))
}

func TestIndentInherited(t *testing.T) {
	tr := tree.New("root")
	parent := tr.AddNode(tr.Root(), "block")
	child := tr.AddNode(parent, "block")
	grandChild := tr.AddNode(child, "inline")
	set(t, tr, parent, "margin-left", "4pt", "margin-right", "1cm")
	set(t, tr, child, "start-indent", "inherit", "padding", "1pt")

	e := NewEngine(tr, nil)
	assertNumeric(t, e, parent, pr.PStartIndent, pr.Points(4))
	assertNumeric(t, e, child, pr.PStartIndent, pr.Points(4))
	// padding alone does not change the indent
	assertNumeric(t, e, child, pr.PEndIndent, pr.Millipoints(28346))
	assertNumeric(t, e, grandChild, pr.PStartIndent, pr.Points(4))
}

func TestWritingModes(t *testing.T) {
	for _, test := range []struct {
		writingMode string
		start, end  pr.Numeric
	}{
		{"lr-tb", pr.Points(1 + 10), pr.Points(2 + 20)},
		{"rl-tb", pr.Points(2 + 20), pr.Points(1 + 10)},
		{"tb-rl", pr.Points(3 + 30), pr.Points(4 + 40)},
	} {
		tr := tree.New("root")
		container := tr.AddNode(tr.Root(), "block")
		block := tr.AddNode(container, "block")
		set(t, tr, container, "writing-mode", test.writingMode)
		set(t, tr, block,
			"margin", "3pt 2pt 4pt 1pt", // top, right, bottom, left
			"padding", "30pt 20pt 40pt 10pt",
		)

		e := NewEngine(tr, nil)
		assertNumeric(t, e, block, pr.PStartIndent, test.start)
		assertNumeric(t, e, block, pr.PEndIndent, test.end)
	}
}

func TestLogicalPhysical(t *testing.T) {
	tr := tree.New("root")
	lr := tr.AddNode(tr.Root(), "block")
	rl := tr.AddNode(tr.Root(), "block")
	set(t, tr, lr, "padding-start", "2pt", "border-after-width", "thin")
	set(t, tr, rl, "writing-mode", "rl-tb", "padding-start", "2pt", "padding-end", "3pt")

	e := NewEngine(tr, nil)
	assertNumeric(t, e, lr, pr.PPaddingLeft, pr.Points(2))
	assertNumeric(t, e, lr, pr.PPaddingRight, pr.Zero())
	assertNumeric(t, e, lr, pr.PBorderBottomWidth, pr.Points(0.5))
	assertNumeric(t, e, rl, pr.PPaddingRight, pr.Points(2))
	assertNumeric(t, e, rl, pr.PPaddingLeft, pr.Points(3))

	// logical properties take the value of the physical ones
	set(t, tr, lr, "padding-top", "7pt")
	e.Reset()
	assertNumeric(t, e, lr, pr.PPaddingBefore, pr.Points(7))
	assertNumeric(t, e, lr, pr.PPaddingStart, pr.Points(2))
}

func TestPhysicalPrecedence(t *testing.T) {
	tr := tree.New("root")
	block := tr.AddNode(tr.Root(), "block")
	// explicit physical > logical > physical set by a shorthand
	set(t, tr, block,
		"padding", "5pt",
		"padding-left", "1pt",
		"padding-start", "2pt",
		"padding-end", "3pt",
	)

	e := NewEngine(tr, nil)
	assertNumeric(t, e, block, pr.PPaddingLeft, pr.Points(1))
	assertNumeric(t, e, block, pr.PPaddingStart, pr.Points(2))
	assertNumeric(t, e, block, pr.PPaddingRight, pr.Points(3))
	assertNumeric(t, e, block, pr.PPaddingTop, pr.Points(5))
}

func TestShorthandSpecificity(t *testing.T) {
	tr := tree.New("root")
	block := tr.AddNode(tr.Root(), "block")
	set(t, tr, block,
		"border", "1pt solid",
		"border-width", "2pt",
		"border-left", "thick",
	)

	e := NewEngine(tr, nil)
	assertNumeric(t, e, block, pr.PBorderLeftWidth, pr.Points(2))
	assertNumeric(t, e, block, pr.PBorderTopWidth, pr.Points(2))

	tr.SpecifyShorthand(block, pr.SBorderLeft, pr.Properties{pr.PBorderLeftWidth: pr.Points(3)})
	e.Reset()
	assertNumeric(t, e, block, pr.PBorderLeftWidth, pr.Points(3))
	assertNumeric(t, e, block, pr.PBorderStartWidth, pr.Points(3))
}

func TestFontRelative(t *testing.T) {
	tr := tree.New("root")
	parent := tr.AddNode(tr.Root(), "block")
	child := tr.AddNode(parent, "block")
	set(t, tr, tr.Root(), "font-size", "2em")
	set(t, tr, parent, "font-size", "10pt", "margin-left", "2em")
	set(t, tr, child, "font-size", "150%", "start-indent", "1em")

	e := NewEngine(tr, nil)
	assertNumeric(t, e, tr.Root(), pr.PFontSize, pr.Points(24))
	assertNumeric(t, e, parent, pr.PMarginLeft, pr.Points(20))
	assertNumeric(t, e, parent, pr.PStartIndent, pr.Points(20))
	assertNumeric(t, e, child, pr.PFontSize, pr.Points(15))
	assertNumeric(t, e, child, pr.PStartIndent, pr.Points(15))
}

func TestInheritance(t *testing.T) {
	tr := tree.New("root")
	block := tr.AddNode(tr.Root(), "block")
	set(t, tr, tr.Root(), "xml:lang", "de-AT", "writing-mode", "tb", "margin-left", "3pt")

	e := NewEngine(tr, nil)
	for _, test := range []struct {
		prop pr.KnownProp
		exp  pr.Property
	}{
		{pr.PLanguage, pr.String("de")},
		{pr.PCountry, pr.String("AT")},
		{pr.PWritingMode, pr.TbRl},
		{pr.PMarginLeft, pr.Zero()}, // not inherited
	} {
		got, err := e.Get(block, test.prop)
		require.NoError(t, err)
		assert.Equal(t, test.exp, got, test.prop.String())
	}
}

func TestIncompatibleQuantity(t *testing.T) {
	tr := tree.New("root")
	block := tr.AddNode(tr.Root(), "block")
	set(t, tr, block, "margin-left", "10%")

	e := NewEngine(tr, nil)
	_, err := e.Get(block, pr.PStartIndent)
	require.Error(t, err)
	assert.ErrorIs(t, err, pr.ErrIncompatibleQuantity)
	var pce *PropertyComputationError
	require.ErrorAs(t, err, &pce)
	assert.Equal(t, pr.PStartIndent, pce.Property)
	assert.Equal(t, block, pce.Node)
	assert.Equal(t, "block", pce.Kind)

	state, stateErr := e.PropertyList(block).State(pr.PStartIndent)
	assert.Equal(t, Failed, state)
	assert.ErrorIs(t, stateErr, pr.ErrIncompatibleQuantity)

	// the margin itself is still available
	v, err := e.Get(block, pr.PMarginLeft)
	require.NoError(t, err)
	assert.Equal(t, pr.Percent(10), v)

	_, err = e.Get(tree.NodeID(99), pr.PStartIndent)
	require.ErrorAs(t, err, &pce)
	_, err = e.GetNumeric(block, pr.PLanguage)
	assert.ErrorIs(t, err, pr.ErrIncompatibleQuantity)
	require.ErrorAs(t, err, &pce)
	assert.Equal(t, pr.PLanguage, pce.Property)
}

func TestLengthOverflow(t *testing.T) {
	tr := tree.New("root")
	parent := tr.AddNode(tr.Root(), "block")
	child := tr.AddNode(parent, "block")
	em := tr.AddNode(tr.Root(), "block")
	tr.Specify(parent, pr.PMarginLeft, pr.Millipoints(1<<62))
	tr.Specify(child, pr.PMarginLeft, pr.Millipoints(1<<62))
	set(t, tr, em, "margin-left", "1e15em")
	assert.Error(t, tr.SetAttribute(em, "margin-right", "1e300pt"))

	e := NewEngine(tr, nil)
	assertNumeric(t, e, parent, pr.PStartIndent, pr.Millipoints(1<<62))
	_, err := e.Get(child, pr.PStartIndent)
	assert.ErrorIs(t, err, pr.ErrOverflow)
	var pce *PropertyComputationError
	require.ErrorAs(t, err, &pce)
	assert.Equal(t, pr.PStartIndent, pce.Property)
	assert.Equal(t, child, pce.Node)

	_, err = e.Get(em, pr.PMarginLeft)
	assert.ErrorIs(t, err, pr.ErrOverflow)
	_, err = e.Get(em, pr.PStartIndent)
	assert.ErrorIs(t, err, pr.ErrOverflow)
}

func TestInvalidWritingMode(t *testing.T) {
	tr := tree.New("root")
	block := tr.AddNode(tr.Root(), "block")
	tr.Specify(block, pr.PWritingMode, pr.WritingMode(5))

	e := NewEngine(tr, nil)
	_, err := e.Get(block, pr.PPaddingStart)
	var pce *PropertyComputationError
	require.ErrorAs(t, err, &pce)
	assert.Equal(t, pr.PWritingMode, pce.Property)
	assert.ErrorContains(t, err, "unexpected writing mode")

	_, err = e.Get(block, pr.PStartIndent)
	require.ErrorAs(t, err, &pce)
	assert.Equal(t, pr.PStartIndent, pce.Property)
	assert.ErrorContains(t, err, "unexpected writing mode")
}

func TestNilSpecifiedIsIgnored(t *testing.T) {
	tr := tree.New("root")
	parent := tr.AddNode(tr.Root(), "block")
	block := tr.AddNode(parent, "block")
	set(t, tr, parent, "start-indent", "4pt")
	tr.Specify(block, pr.PStartIndent, nil)
	tr.Specify(block, pr.PPaddingLeft, nil)
	tr.SpecifyShorthand(block, pr.SMargin, pr.Properties{pr.PMarginLeft: nil})

	e := NewEngine(tr, nil)
	assertNumeric(t, e, block, pr.PStartIndent, pr.Points(4))
	assertNumeric(t, e, block, pr.PPaddingLeft, pr.Zero())
	assertNumeric(t, e, block, pr.PMarginLeft, pr.Zero())
}

type countingMaker struct {
	calls int
	value pr.Property
}

func (m *countingMaker) Compute(*PropertyList) (pr.Property, error) {
	m.calls++
	return m.value, nil
}

func TestIdempotence(t *testing.T) {
	tr := tree.New("root")
	block := tr.AddNode(tr.Root(), "block")
	set(t, tr, block, "margin-left", "1pt")

	counter := &countingMaker{value: pr.Points(4)}
	e := NewEngine(tr, DefaultMakers().With(pr.PMarginLeft, counter))
	for range [3]int{} {
		assertNumeric(t, e, block, pr.PStartIndent, pr.Points(4))
		assertNumeric(t, e, block, pr.PMarginLeft, pr.Points(4))
	}
	assert.Equal(t, 1, counter.calls)

	state, err := e.PropertyList(block).State(pr.PMarginLeft)
	assert.Equal(t, Resolved, state)
	assert.NoError(t, err)

	// the shared table is not modified
	_, isPlain := DefaultMakers().Maker(pr.PMarginLeft).(PlainMaker)
	assert.True(t, isPlain)
}

// cyclicMaker depends on another property of the same node
type cyclicMaker struct{ dependency pr.KnownProp }

func (m cyclicMaker) Compute(pl *PropertyList) (pr.Property, error) {
	return pl.Get(m.dependency)
}

func TestCircularDependency(t *testing.T) {
	tr := tree.New("root")
	block := tr.AddNode(tr.Root(), "block")
	set(t, tr, block, "margin-left", "1pt")

	makers := DefaultMakers().
		With(pr.PMarginLeft, cyclicMaker{dependency: pr.PStartIndent}).
		With(pr.PMarginRight, cyclicMaker{dependency: pr.PMarginRight})
	e := NewEngine(tr, makers)

	_, err := e.Get(block, pr.PStartIndent)
	assert.ErrorIs(t, err, ErrCircularDependency)
	var cycle *CircularDependencyError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, pr.PStartIndent, cycle.Property)

	_, err = e.Get(block, pr.PMarginRight)
	assert.ErrorIs(t, err, ErrCircularDependency)

	for _, p := range []pr.KnownProp{pr.PStartIndent, pr.PMarginLeft, pr.PMarginRight} {
		state, _ := e.PropertyList(block).State(p)
		assert.Equal(t, Failed, state, p.String())
	}
}

// flakyMaker fails on its first call
type flakyMaker struct{ calls int }

func (m *flakyMaker) Compute(*PropertyList) (pr.Property, error) {
	m.calls++
	if m.calls == 1 {
		return nil, errors.New("temporary failure")
	}
	return pr.Points(2), nil
}

func TestFailedIsRecomputed(t *testing.T) {
	tr := tree.New("root")
	block := tr.AddNode(tr.Root(), "block")

	flaky := &flakyMaker{}
	e := NewEngine(tr, DefaultMakers().With(pr.PPaddingLeft, flaky))

	_, err := e.Get(block, pr.PStartIndent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temporary failure")

	assertNumeric(t, e, block, pr.PStartIndent, pr.Zero())
	assertNumeric(t, e, block, pr.PPaddingLeft, pr.Points(2))
	assert.Equal(t, 2, flaky.calls)
}

func TestEdges(t *testing.T) {
	tr := tree.New("root")
	block := tr.AddNode(tr.Root(), "block")
	set(t, tr, block,
		"margin", "1pt 2pt 3pt 4pt",
		"padding-start", "1pt",
		"border-end-width", "2pt",
	)

	e := NewEngine(tr, nil)
	edges, err := e.Edges(block)
	require.NoError(t, err)
	assert.Equal(t, Edges{
		StartIndent: pr.Points(5),
		EndIndent:   pr.Points(4),
		Margin:      Sides{Top: pr.Points(1), Right: pr.Points(2), Bottom: pr.Points(3), Left: pr.Points(4)},
		Padding:     Sides{Left: pr.Points(1)},
		BorderWidth: Sides{Right: pr.Points(2)},
	}, edges)

	set(t, tr, block, "margin-left", "5%")
	e.Reset()
	_, err = e.Edges(block)
	assert.ErrorIs(t, err, pr.ErrIncompatibleQuantity)
}

func TestNewMakers(t *testing.T) {
	_, err := NewMakers(Bindings{})
	assert.NoError(t, err)

	_, err = NewMakers(Bindings{Corresponding: []CorrespondingBinding{
		{Logical: pr.PPaddingStart, Physical: pr.Corresponding{pr.PPaddingLeft, pr.PWritingMode, pr.PPaddingTop}},
	}})
	assert.Error(t, err)

	_, err = NewMakers(Bindings{Indents: []IndentBinding{
		{Base: pr.PStartIndent, Margin: pr.MarginStart, Padding: pr.PaddingStart, BorderWidth: pr.Corresponding{pr.PLanguage, pr.PLanguage, pr.PLanguage}},
	}})
	assert.Error(t, err)

	_, err = NewMakers(Bindings{Indents: []IndentBinding{
		{Base: pr.PLanguage, Margin: pr.MarginStart, Padding: pr.PaddingStart, BorderWidth: pr.BorderStartWidth},
	}})
	assert.Error(t, err)

	_, err = NewMakers(Bindings{Corresponding: []CorrespondingBinding{
		{Logical: pr.PPaddingLeft, Physical: pr.Corresponding{pr.PPaddingLeft, pr.PPaddingRight, pr.PPaddingTop}},
	}})
	assert.ErrorContains(t, err, "corresponds to itself")

	b := DefaultBindings()
	b.Corresponding = append(b.Corresponding, b.Corresponding[0])
	_, err = NewMakers(b)
	assert.Error(t, err)

	m := DefaultMakers()
	assert.IsType(t, IndentMaker{}, m.Maker(pr.PStartIndent))
	assert.IsType(t, CorrespondingMaker{}, m.Maker(pr.PPaddingStart))
	assert.IsType(t, PhysicalMaker{}, m.Maker(pr.PBorderLeftWidth))
	assert.IsType(t, PlainMaker{}, m.Maker(pr.PMarginLeft))
	assert.Same(t, m, DefaultMakers())
}
