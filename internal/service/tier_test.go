package service

import (
	"testing"

	"github.com/fidelio-loyalty/internal/constants"
)

func TestTierForPoints(t *testing.T) {
	cases := []struct {
		points        int64
		wantTier      string
		wantThreshold int64
	}{
		{points: 0, wantTier: constants.TierBronze, wantThreshold: 500},
		{points: 499, wantTier: constants.TierBronze, wantThreshold: 500},
		{points: 500, wantTier: constants.TierArgent, wantThreshold: 1500},
		{points: 1499, wantTier: constants.TierArgent, wantThreshold: 1500},
		{points: 1500, wantTier: constants.TierOr, wantThreshold: 4000},
		{points: 4000, wantTier: constants.TierPlatine, wantThreshold: 0},
		{points: 99999, wantTier: constants.TierPlatine, wantThreshold: 0},
		{points: -10, wantTier: constants.TierBronze, wantThreshold: 500},
	}
	for _, tc := range cases {
		tier, threshold := TierForPoints(tc.points)
		if tier != tc.wantTier {
			t.Fatalf("points %d: tier want %s got %s", tc.points, tc.wantTier, tier)
		}
		if threshold != tc.wantThreshold {
			t.Fatalf("points %d: threshold want %d got %d", tc.points, tc.wantThreshold, threshold)
		}
	}
}
