package service

import (
	"time"

	"github.com/fidelio-loyalty/internal/constants"
)

// DefaultInactiveAfterDays is the recency threshold for the Inactif segment.
const DefaultInactiveAfterDays = 45

// SegmentForScore maps a loyalty score to its segment label.
// Score buckets: <20 Nouveau, 20-39 Occasionnel, 40-59 Habitué,
// 60-79 Fidèle, >=80 Premium.
func SegmentForScore(score int) string {
	switch {
	case score >= 80:
		return constants.SegmentPremium
	case score >= 60:
		return constants.SegmentFidele
	case score >= 40:
		return constants.SegmentHabitue
	case score >= 20:
		return constants.SegmentOccasionnel
	default:
		return constants.SegmentNouveau
	}
}

// IsInactive reports whether a customer qualifies for the Inactif segment:
// no visit on record, or the last visit is older than the threshold.
func IsInactive(lastVisit *time.Time, now time.Time, inactiveAfterDays int) bool {
	if inactiveAfterDays <= 0 {
		inactiveAfterDays = DefaultInactiveAfterDays
	}
	if lastVisit == nil {
		return true
	}
	return now.Sub(*lastVisit) > time.Duration(inactiveAfterDays)*24*time.Hour
}

// SegmentsForCustomer returns every segment the customer belongs to. The
// score bucket always comes first; Inactif is appended when the recency
// rule matches, so a high-score dormant customer lands in both buckets.
func SegmentsForCustomer(score int, lastVisit *time.Time, now time.Time, inactiveAfterDays int) []string {
	segments := []string{SegmentForScore(score)}
	if IsInactive(lastVisit, now, inactiveAfterDays) {
		segments = append(segments, constants.SegmentInactif)
	}
	return segments
}

// MatchesSegment reports whether a customer belongs to the given segment
// label, honoring the overlap between score buckets and Inactif.
func MatchesSegment(segment string, score int, lastVisit *time.Time, now time.Time, inactiveAfterDays int) bool {
	for _, s := range SegmentsForCustomer(score, lastVisit, now, inactiveAfterDays) {
		if s == segment {
			return true
		}
	}
	return false
}

// LoyaltyScoreFor derives the 0..100 engagement score from visit frequency
// and spend level. Frequency carries up to 60 points, ticket size up to 40.
func LoyaltyScoreFor(totalVisits int64, averageTicket float64) int {
	frequency := totalVisits * 6
	if frequency > 60 {
		frequency = 60
	}
	spend := int64(averageTicket * 4 / 5)
	if spend > 40 {
		spend = 40
	}
	if spend < 0 {
		spend = 0
	}
	score := frequency + spend
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(score)
}
