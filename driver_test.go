package enredo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunPipelineEndToEndProducesOneBlock(t *testing.T) {
	data := `a1 human chr1 0 999 1 10.0
a2 human chr1 1000 1999 1 10.0
a3 human chr1 2000 2999 1 10.0
a1 mouse chr3 0 999 1 10.0
a2 mouse chr3 1000 1999 1 10.0
a3 mouse chr3 2000 2999 1 10.0
`
	g := NewGraph()
	cfg := DefaultConfig()
	cfg.MinAnchors = 3
	cfg.MinRegions = 2
	cfg.MinLength = 1

	require.NoError(t, LoadAnchorHits(g, strings.NewReader(data), cfg))
	require.NoError(t, g.RunPipeline(cfg))

	var buf strings.Builder
	n, err := WriteBlocks(g, &buf, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

// TestRunPipelineLevel1RunsFullThresholdSimplify exercises the
// SimplificationLevel=1 branch (§4.12), which is level-0 followed by a
// single simplify pass at the full min_regions threshold rather than the
// relaxed threshold of 1 the higher levels use.
func TestRunPipelineLevel1RunsFullThresholdSimplify(t *testing.T) {
	data := `a1 human chr1 0 999 1 10.0
a2 human chr1 1000 1999 1 10.0
a3 human chr1 2000 2999 1 10.0
a1 mouse chr3 0 999 1 10.0
a2 mouse chr3 1000 1999 1 10.0
a3 mouse chr3 2000 2999 1 10.0
`
	g := NewGraph()
	cfg := DefaultConfig()
	cfg.MinAnchors = 3
	cfg.MinRegions = 2
	cfg.MinLength = 1
	cfg.SimplificationLevel = 1

	require.NoError(t, LoadAnchorHits(g, strings.NewReader(data), cfg))
	require.NoError(t, g.RunPipeline(cfg))

	var buf strings.Builder
	n, err := WriteBlocks(g, &buf, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
