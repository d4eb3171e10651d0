package repository

import (
	"testing"
	"time"

	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/models"

	"github.com/shopspring/decimal"
)

func TestVisitAggregateByPair(t *testing.T) {
	repo := NewVisitRepository(openRepositoryTestDB(t))
	now := time.Now()

	amounts := []struct {
		value     float64
		visitedAt time.Time
	}{
		{value: 31.50, visitedAt: now.Add(-48 * time.Hour)},
		{value: 24.00, visitedAt: now.Add(-24 * time.Hour)},
	}
	for _, row := range amounts {
		money := models.NewMoneyFromDecimal(decimal.NewFromFloat(row.value))
		visit := &models.Visit{
			UserID:           601,
			RestaurantID:     8101,
			Amount:           &money,
			ValidationMethod: constants.ValidationMethodCode,
			VisitedAt:        row.visitedAt,
		}
		if err := repo.Create(visit); err != nil {
			t.Fatalf("create visit failed: %v", err)
		}
	}

	aggregate, err := repo.AggregateByPair(601, 8101)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if aggregate.TotalVisits != 2 {
		t.Fatalf("total visits want 2 got %d", aggregate.TotalVisits)
	}
	if aggregate.TotalRevenue != 55.50 {
		t.Fatalf("total revenue want 55.50 got %v", aggregate.TotalRevenue)
	}
	if aggregate.LastVisit == nil {
		t.Fatalf("last visit should be set")
	}
	if aggregate.LastVisit.Unix() != now.Add(-24*time.Hour).Unix() {
		t.Fatalf("last visit should be the most recent, got %v", aggregate.LastVisit)
	}
}

func TestVisitAggregateByPairEmpty(t *testing.T) {
	repo := NewVisitRepository(openRepositoryTestDB(t))

	aggregate, err := repo.AggregateByPair(602, 8102)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if aggregate.TotalVisits != 0 || aggregate.TotalRevenue != 0 {
		t.Fatalf("empty pair should roll up to zero, got %+v", aggregate)
	}
	if aggregate.LastVisit != nil {
		t.Fatalf("empty pair has no last visit")
	}
}
