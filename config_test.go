package enredo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesOriginalDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 100000, cfg.MaxGapLength)
	require.Equal(t, 100000, cfg.MinLength)
	require.Equal(t, 2, cfg.MinRegions)
	require.Equal(t, 3, cfg.MinAnchors)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidateRejectsBadThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinAnchors = 1
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.SimplificationLevel = 8
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxRatio = 0.5
	require.Error(t, cfg.Validate())
}
