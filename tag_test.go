package enredo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagOverlapAndLength(t *testing.T) {
	table := NewStringTable()
	sp := table.Intern("human")
	chr := table.Intern("chr1")

	a := Tag{Species: sp, Chr: chr, Start: 100, End: 199, Strand: StrandForward}
	b := Tag{Species: sp, Chr: chr, Start: 150, End: 249, Strand: StrandForward}
	c := Tag{Species: sp, Chr: chr, Start: 300, End: 399, Strand: StrandForward}

	require.Equal(t, 100, a.Length())
	require.True(t, a.overlapsStrictly(b))
	require.False(t, a.overlapsStrictly(c))
	require.True(t, a.sameChromosome(b))
}

func TestTagDifferentChromosomeIsNotSameChromosome(t *testing.T) {
	table := NewStringTable()
	sp := table.Intern("human")
	chr1 := table.Intern("chr1")
	chr2 := table.Intern("chr2")

	a := Tag{Species: sp, Chr: chr1, Start: 0, End: 100}
	b := Tag{Species: sp, Chr: chr2, Start: 0, End: 100}

	require.False(t, a.sameChromosome(b))
}

func TestTagReversedFlipsStrandOnly(t *testing.T) {
	tg := Tag{Start: 10, End: 20, Strand: StrandForward}
	r := tg.reversed()
	require.Equal(t, StrandReverse, r.Strand)
	require.Equal(t, tg.Start, r.Start)
	require.Equal(t, tg.End, r.End)
}
