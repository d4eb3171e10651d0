package service

import "github.com/fidelio-loyalty/internal/constants"

// tierStep is one rung of the membership ladder.
type tierStep struct {
	Label     string
	MinPoints int64
}

// tierLadder is ordered from lowest to highest.
var tierLadder = []tierStep{
	{Label: constants.TierBronze, MinPoints: 0},
	{Label: constants.TierArgent, MinPoints: 500},
	{Label: constants.TierOr, MinPoints: 1500},
	{Label: constants.TierPlatine, MinPoints: 4000},
}

// TierForPoints returns the tier label for a points balance and the points
// total required for the next tier. The threshold is 0 at the top rung.
func TierForPoints(points int64) (string, int64) {
	if points < 0 {
		points = 0
	}
	current := tierLadder[0]
	var nextThreshold int64
	for i, step := range tierLadder {
		if points >= step.MinPoints {
			current = step
			if i+1 < len(tierLadder) {
				nextThreshold = tierLadder[i+1].MinPoints
			} else {
				nextThreshold = 0
			}
		}
	}
	return current.Label, nextThreshold
}
