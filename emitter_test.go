package enredo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteBlocksEmitsOnlyValidLinks(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("human")
	chr := g.InternChromosome("chr1")

	a1 := g.GetAnchor("a1", sp)
	a2 := g.GetAnchor("a2", sp)
	a3 := g.GetAnchor("a3", sp)

	valid := NewLink(a1, a2)
	valid.Path = append(valid.Path, a3)
	valid.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 999999, Strand: StrandForward})
	valid.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 999999, Strand: StrandForward})

	cfg := DefaultConfig()
	var buf bytes.Buffer
	n, err := WriteBlocks(g, &buf, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Contains(t, buf.String(), "block - a1 - a2 - a3  (made of 2 genomic regions)")
	require.Contains(t, buf.String(), valid.Tags[0].String())
}

func TestWriteBlocksPrintAllIgnoresThresholds(t *testing.T) {
	g := NewGraph()
	sp := g.InternSpecies("human")
	chr := g.InternChromosome("chr1")
	a1 := g.GetAnchor("a1", sp)
	a2 := g.GetAnchor("a2", sp)

	tiny := NewLink(a1, a2)
	tiny.AddTag(Tag{Species: sp, Chr: chr, Start: 0, End: 10, Strand: StrandForward})

	cfg := DefaultConfig()
	cfg.PrintAll = true
	var buf bytes.Buffer
	n, err := WriteBlocks(g, &buf, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	cfg.PrintAll = false
	buf.Reset()
	n, err = WriteBlocks(g, &buf, cfg)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}
