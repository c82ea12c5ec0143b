package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForLevel(t *testing.T) {
	cases := []struct {
		level    float64
		expected Tier
	}{
		{1.0, TierBronze},
		{2.9, TierBronze},
		{3.0, TierSilver},
		{4.9, TierSilver},
		{5.0, TierGold},
		{6.9, TierGold},
		{7.0, TierPlatinum},
		{8.4, TierPlatinum},
		{8.5, TierDiamond},
		{10.0, TierDiamond},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, TierForLevel(tc.level), "level %.1f", tc.level)
	}
}

func TestTierForLevel_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, TierBronze, TierForLevel(0.2))
	assert.Equal(t, TierDiamond, TierForLevel(11.0))
}
