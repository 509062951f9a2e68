package enredo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGraph() (*Graph, Handle, Handle) {
	g := NewGraph()
	return g, g.InternSpecies("human"), g.InternChromosome("chr1")
}

func TestGetDirectLinkCreatesAndReuses(t *testing.T) {
	g, _, _ := newTestGraph()
	a1 := g.GetAnchor("a1", nil)
	a2 := g.GetAnchor("a2", nil)

	l1 := a1.getDirectLink(a2)
	l2 := a1.getDirectLink(a2)
	require.Same(t, l1, l2)
	require.Equal(t, a2, l1.Front())
	require.Equal(t, a1, l1.Back())
}

func TestTryToConcatenateWithMergesTags(t *testing.T) {
	g, sp, chr := newTestGraph()
	a1 := g.GetAnchor("a1", sp)
	a2 := g.GetAnchor("a2", sp)
	a3 := g.GetAnchor("a3", sp)

	l1 := NewLink(a1, a2)
	l1.AddTag(Tag{Species: sp, Chr: chr, Start: 100, End: 199, Strand: StrandForward})

	l2 := NewLink(a2, a3)
	l2.AddTag(Tag{Species: sp, Chr: chr, Start: 150, End: 249, Strand: StrandForward})

	ok := l1.TryToConcatenateWith(l2, StrandForward, StrandForward)
	require.True(t, ok)
	require.Equal(t, []*Anchor{a1, a2, a3}, l1.Path)
	require.Len(t, l1.Tags, 1)
	require.Equal(t, 100, l1.Tags[0].Start)
	require.Equal(t, 249, l1.Tags[0].End)
}

func TestTryToConcatenateWithRejectsWrongGeometry(t *testing.T) {
	g, sp, chr := newTestGraph()
	a1 := g.GetAnchor("a1", sp)
	a2 := g.GetAnchor("a2", sp)
	a3 := g.GetAnchor("a3", sp)

	l1 := NewLink(a1, a2)
	l1.AddTag(Tag{Species: sp, Chr: chr, Start: 100, End: 199, Strand: StrandForward})

	l2 := NewLink(a2, a3)
	// this tag's interval is entirely contained within l1's, so it cannot
	// be a forward continuation in either direction.
	l2.AddTag(Tag{Species: sp, Chr: chr, Start: 120, End: 150, Strand: StrandForward})

	ok := l1.TryToConcatenateWith(l2, StrandForward, StrandForward)
	require.False(t, ok)
}

func TestSplitRejectsEmptyResult(t *testing.T) {
	g, sp, chr := newTestGraph()
	a1 := g.GetAnchor("a1", sp)
	a2 := g.GetAnchor("a2", sp)
	l := NewLink(a1, a2)
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 10})

	_, err := l.split([]bool{true})
	require.ErrorIs(t, err, ErrEmptyLink)
}

func TestIsValidThresholds(t *testing.T) {
	g, sp, chr := newTestGraph()
	a1 := g.GetAnchor("a1", sp)
	a2 := g.GetAnchor("a2", sp)
	a3 := g.GetAnchor("a3", sp)
	l := NewLink(a1, a2)
	l.Path = append(l.Path, a3)
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 999})
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 999})

	require.True(t, l.IsValid(3, 2, 500))
	require.False(t, l.IsValid(4, 2, 500))
	require.False(t, l.IsValid(3, 3, 500))
	require.False(t, l.IsValid(3, 2, 1500))
}

func TestIsAnAlternativePathOfIsUnordered(t *testing.T) {
	g, _, _ := newTestGraph()
	a1 := g.GetAnchor("a1", nil)
	a2 := g.GetAnchor("a2", nil)
	l1 := NewLink(a1, a2)
	l2 := NewLink(a2, a1)
	require.True(t, l1.IsAnAlternativePathOf(l2))
}

func TestGetNumOfMismatchesCountsOneInsertion(t *testing.T) {
	g, _, _ := newTestGraph()
	a := g.GetAnchor("a", nil)
	b := g.GetAnchor("b", nil)
	c := g.GetAnchor("c", nil)
	d := g.GetAnchor("d", nil)
	x := g.GetAnchor("x", nil)

	l1 := &Link{Path: []*Anchor{a, b, c, d}}
	l2 := &Link{Path: []*Anchor{a, b, x, c, d}}

	require.Equal(t, 1, l1.GetNumOfMismatches(l2))
}

func TestMergeWeavesIdenticalPaths(t *testing.T) {
	g, sp, chr := newTestGraph()
	a := g.GetAnchor("a", nil)
	b := g.GetAnchor("b", nil)
	c := g.GetAnchor("c", nil)

	l1 := NewLink(a, c)
	l1.Path = []*Anchor{a, b, c}
	l1.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 9, Strand: StrandForward})

	l2 := NewLink(a, c)
	l2.Path = []*Anchor{a, b, c}
	l2.AddTag(Tag{Species: sp, Chr: chr, Start: 100, End: 109, Strand: StrandForward})

	l1.Merge(l2)
	require.Equal(t, []*Anchor{a, b, c}, l1.Path)
	require.Len(t, l1.Tags, 2)
	require.Len(t, a.Links, 1)
	require.Len(t, c.Links, 1)
}

func TestIsBridgeRequiresValidNonLoopNeighbours(t *testing.T) {
	g, sp, chr := newTestGraph()
	x1 := g.GetAnchor("x1", nil)
	m1 := g.GetAnchor("m1", nil)
	m2 := g.GetAnchor("m2", nil)
	x2 := g.GetAnchor("x2", nil)

	front := NewLink(x1, m1)
	front.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 9})
	front.AddTag(Tag{Species: sp, Chr: chr, Start: 10, End: 19})
	front.AddTag(Tag{Species: sp, Chr: chr, Start: 20, End: 29})

	back := NewLink(m2, x2)
	back.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 9})
	back.AddTag(Tag{Species: sp, Chr: chr, Start: 10, End: 19})
	back.AddTag(Tag{Species: sp, Chr: chr, Start: 20, End: 29})

	l := NewLink(m1, m2)
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 9})
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 10, End: 19})

	require.True(t, l.IsBridge(front, back, 2, 3, 1))
	require.False(t, l.IsBridge(nil, back, 2, 3, 1))
	require.False(t, l.IsBridge(front, back, 2, 2, 1)) // l itself becomes valid, no longer a bridge
}
