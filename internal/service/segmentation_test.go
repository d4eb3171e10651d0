package service

import (
	"testing"
	"time"

	"github.com/fidelio-loyalty/internal/constants"
)

func TestSegmentForScore(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{score: 0, want: constants.SegmentNouveau},
		{score: 19, want: constants.SegmentNouveau},
		{score: 20, want: constants.SegmentOccasionnel},
		{score: 40, want: constants.SegmentHabitue},
		{score: 60, want: constants.SegmentFidele},
		{score: 79, want: constants.SegmentFidele},
		{score: 80, want: constants.SegmentPremium},
		{score: 100, want: constants.SegmentPremium},
	}
	for _, tc := range cases {
		if got := SegmentForScore(tc.score); got != tc.want {
			t.Fatalf("score %d: want %s got %s", tc.score, tc.want, got)
		}
	}
}

func TestIsInactive(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	if !IsInactive(nil, now, 45) {
		t.Fatalf("no visit on record should be inactive")
	}

	recent := now.AddDate(0, 0, -10)
	if IsInactive(&recent, now, 45) {
		t.Fatalf("visit 10 days ago should not be inactive")
	}

	old := now.AddDate(0, 0, -46)
	if !IsInactive(&old, now, 45) {
		t.Fatalf("visit 46 days ago should be inactive")
	}

	// Zero threshold falls back to the default.
	if IsInactive(&recent, now, 0) {
		t.Fatalf("default threshold should keep a recent visitor active")
	}
}

func TestSegmentsForCustomerOverlap(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -90)

	segments := SegmentsForCustomer(85, &old, now, 45)
	if len(segments) != 2 {
		t.Fatalf("dormant premium should land in two segments, got %v", segments)
	}
	if segments[0] != constants.SegmentPremium || segments[1] != constants.SegmentInactif {
		t.Fatalf("want [Premium Inactif] got %v", segments)
	}

	if !MatchesSegment(constants.SegmentInactif, 85, &old, now, 45) {
		t.Fatalf("dormant premium should match Inactif")
	}
	if !MatchesSegment(constants.SegmentPremium, 85, &old, now, 45) {
		t.Fatalf("dormant premium should still match Premium")
	}
	if MatchesSegment(constants.SegmentNouveau, 85, &old, now, 45) {
		t.Fatalf("dormant premium should not match Nouveau")
	}
}

func TestLoyaltyScoreFor(t *testing.T) {
	if got := LoyaltyScoreFor(0, 0); got != 0 {
		t.Fatalf("empty history want 0 got %d", got)
	}
	// 2 visits at 10 per head: frequency 12, spend 8.
	if got := LoyaltyScoreFor(2, 10); got != 20 {
		t.Fatalf("want 20 got %d", got)
	}
	// Both components cap.
	if got := LoyaltyScoreFor(50, 500); got != 100 {
		t.Fatalf("want capped 100 got %d", got)
	}
	if got := LoyaltyScoreFor(3, -5); got != 18 {
		t.Fatalf("negative ticket should not subtract, want 18 got %d", got)
	}
}
