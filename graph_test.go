package enredo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAnchorBumpsNumOnRepeat(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("human")

	a := g.GetAnchor("a1", sp)
	require.Equal(t, 1, a.Num)

	a2 := g.GetAnchor("a1", sp)
	require.Same(t, a, a2)
	require.Equal(t, 2, a.Num)
}

func TestInternSpeciesIsPointerStable(t *testing.T) {
	g := NewGraph()
	h1 := g.InternSpecies("human")
	h2 := g.InternSpecies("human")
	require.Same(t, h1, h2)
}

func TestMinimizeChainsThreeLinksIntoOne(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("human")
	chr := g.InternChromosome("chr1")

	a1 := g.GetAnchor("a1", sp)
	a2 := g.GetAnchor("a2", sp)
	a3 := g.GetAnchor("a3", sp)

	l1 := NewLink(a1, a2)
	l1.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 99, Strand: StrandForward})
	l2 := NewLink(a2, a3)
	l2.AddTag(Tag{Species: sp, Chr: chr, Start: 50, End: 149, Strand: StrandForward})

	merges := g.Minimize()
	require.Equal(t, 1, merges)
	require.Len(t, a2.Links, 0)
	require.Len(t, a1.Links, 1)
	require.Len(t, a3.Links, 1)
	require.Same(t, a1.Links[0], a3.Links[0])
	survivor := a1.Links[0]
	require.Len(t, survivor.Path, 3)
	require.True(t, survivor.Front() == a1 || survivor.Back() == a1)
	require.True(t, survivor.Front() == a3 || survivor.Back() == a3)
	require.Len(t, survivor.Tags, 1)
	require.Equal(t, 0, survivor.Tags[0].Start)
	require.Equal(t, 149, survivor.Tags[0].End)
}

func TestSplitUnbalancedLinksDropsShortTags(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("human")
	chr := g.InternChromosome("chr1")
	a1 := g.GetAnchor("a1", sp)
	a2 := g.GetAnchor("a2", sp)

	l := NewLink(a1, a2)
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 999})   // length 1000
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 9})     // length 10

	dropped, err := g.SplitUnbalancedLinks(2)
	require.NoError(t, err)
	require.Equal(t, 1, dropped)
	require.Len(t, l.Tags, 1)
}

func TestSplitUnbalancedLinksNeverDropsTheLongestTag(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("human")
	chr := g.InternChromosome("chr1")
	a1 := g.GetAnchor("a1", sp)
	a2 := g.GetAnchor("a2", sp)

	l := NewLink(a1, a2)
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 999})

	dropped, err := g.SplitUnbalancedLinks(1)
	require.NoError(t, err)
	require.Equal(t, 0, dropped)
	require.Len(t, l.Tags, 1)
}

func TestMergeAlternativePathsCollapsesEquivalentPaths(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("human")
	chr := g.InternChromosome("chr1")
	a1 := g.GetAnchor("a1", sp)
	a2 := g.GetAnchor("a2", sp)

	l1 := NewLink(a1, a2)
	l1.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 99, Strand: StrandForward})
	l2 := NewLink(a1, a2)
	l2.AddTag(Tag{Species: sp, Chr: chr, Start: 200, End: 299, Strand: StrandForward})

	merges := g.MergeAlternativePaths(0)
	require.Equal(t, 1, merges)
	require.Len(t, a1.Links, 1)
	require.Len(t, a1.Links[0].Tags, 2)
}

// TestSimplifySplitsBridgeLink builds a link whose tags are a mix of
// flanked (matching both neighbours) and unrelated ones, and checks the
// flanked tag gets peeled off into its own link.
func TestSimplifySplitsBridgeLink(t *testing.T) {
	g := NewGraph()
	sp1 := g.InternSpecies("sp1")
	c1 := g.InternChromosome("c1")
	sp2 := g.InternSpecies("sp2")
	c2 := g.InternChromosome("c2")
	sp3 := g.InternSpecies("sp3")
	c3 := g.InternChromosome("c3")
	sp4 := g.InternSpecies("sp4")
	c4 := g.InternChromosome("c4")
	sp5 := g.InternSpecies("sp5")
	c5 := g.InternChromosome("c5")

	x1 := g.GetAnchor("x1", nil)
	m1 := g.GetAnchor("m1", nil)
	m2 := g.GetAnchor("m2", nil)
	x2 := g.GetAnchor("x2", nil)

	fn := NewLink(x1, m1)
	fn.AddTag(Tag{Species: sp1, Chr: c1, Start: 100, End: 200, Strand: StrandUndetermined})
	fn.AddTag(Tag{Species: sp2, Chr: c2, Start: 1, End: 10, Strand: StrandUndetermined})

	bn := NewLink(m2, x2)
	bn.AddTag(Tag{Species: sp1, Chr: c1, Start: 100, End: 200, Strand: StrandUndetermined})
	bn.AddTag(Tag{Species: sp3, Chr: c3, Start: 1, End: 10, Strand: StrandUndetermined})

	l := NewLink(m1, m2)
	l.AddTag(Tag{Species: sp1, Chr: c1, Start: 100, End: 200, Strand: StrandUndetermined})
	l.AddTag(Tag{Species: sp4, Chr: c4, Start: 1, End: 10, Strand: StrandUndetermined})
	l.AddTag(Tag{Species: sp5, Chr: c5, Start: 1, End: 10, Strand: StrandUndetermined})

	splits := g.Simplify(3, 2, 1)
	require.Equal(t, 1, splits)
	require.Len(t, l.Tags, 2)
	require.Len(t, m1.Links, 3)
}

func TestSimplifyAggressiveSplitsWhenFullyMatched(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("sp1")
	chr := g.InternChromosome("c1")
	other := g.InternSpecies("sp2")
	chrOther := g.InternChromosome("c2")

	x1 := g.GetAnchor("x1", nil)
	m1 := g.GetAnchor("m1", nil)
	m2 := g.GetAnchor("m2", nil)
	x2 := g.GetAnchor("x2", nil)

	// fn carries one tag that l does not match, so fn is the neighbour
	// that gets split; bn is fully matched and stays whole.
	fn := NewLink(x1, m1)
	fn.AddTag(Tag{Species: sp, Chr: chr, Start: 100, End: 200, Strand: StrandUndetermined})
	fn.AddTag(Tag{Species: other, Chr: chrOther, Start: 1, End: 10, Strand: StrandUndetermined})

	bn := NewLink(m2, x2)
	bn.AddTag(Tag{Species: sp, Chr: chr, Start: 100, End: 200, Strand: StrandUndetermined})

	l := NewLink(m1, m2)
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 100, End: 200, Strand: StrandUndetermined})

	splits := g.SimplifyAggressive(5, 1)
	require.Equal(t, 1, splits)
	require.Len(t, fn.Tags, 1)
}

func TestResolveSmallPalindromesCollapsesHairpin(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("human")
	chr := g.InternChromosome("chr1")
	a1 := g.GetAnchor("a1", nil)
	a2 := g.GetAnchor("a2", nil)

	l := NewLink(a1, a2)
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 150, Strand: StrandForward})
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 100, End: 250, Strand: StrandReverse})

	resolved := g.ResolveSmallPalindromes(5, 5, 1)
	require.Equal(t, 1, resolved)
	require.Len(t, l.Tags, 1)
	require.Equal(t, 0, l.Tags[0].Start)
	require.Equal(t, 250, l.Tags[0].End)
	require.Equal(t, StrandUndetermined, l.Tags[0].Strand)
}

func TestAssimilateSmallInsertionsExtendsFrontCandidate(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("sp1")
	chr := g.InternChromosome("c1")
	other := g.InternSpecies("sp2")
	chrOther := g.InternChromosome("c2")

	p1 := g.GetAnchor("p1", nil)
	m1 := g.GetAnchor("m1", nil)
	m2 := g.GetAnchor("m2", nil)
	p2 := g.GetAnchor("p2", nil)

	fcand := NewLink(p1, m1)
	fcand.AddTag(Tag{Species: sp, Chr: chr, Start: 100, End: 200, Strand: StrandUndetermined})
	fcand.AddTag(Tag{Species: other, Chr: chrOther, Start: 1, End: 10, Strand: StrandUndetermined})

	bcand := NewLink(m2, p2)
	bcand.AddTag(Tag{Species: sp, Chr: chr, Start: 100, End: 200, Strand: StrandUndetermined})
	bcand.AddTag(Tag{Species: other, Chr: chrOther, Start: 1, End: 10, Strand: StrandUndetermined})

	l := NewLink(m1, m2)
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 50, End: 250, Strand: StrandUndetermined})

	assimilated := g.AssimilateSmallInsertions(2, 2, 1, 1000)
	require.Equal(t, 1, assimilated)
	require.Equal(t, 50, fcand.Tags[0].Start)
	require.Equal(t, 250, fcand.Tags[0].End)
	require.Len(t, m1.Links, 1)
	require.Len(t, m2.Links, 1)
}

func TestSplitUnselectedLinksPeelsDownToSingleTag(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("sp1")
	chr := g.InternChromosome("c1")
	a1 := g.GetAnchor("a1", nil)
	a2 := g.GetAnchor("a2", nil)

	l := NewLink(a1, a2)
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 9, Strand: StrandUndetermined})
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 10, End: 19, Strand: StrandUndetermined})
	l.AddTag(Tag{Species: sp, Chr: chr, Start: 20, End: 29, Strand: StrandUndetermined})

	splits := g.SplitUnselectedLinks(1, 5, 1)
	require.Equal(t, 2, splits)
	require.Len(t, l.Tags, 1)
	require.Equal(t, 20, l.Tags[0].Start)
	require.Len(t, a1.Links, 3)
}
