package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type statsTestEnv struct {
	db        *gorm.DB
	customers *repository.GormCustomerRepository
	svc       *CustomerStatsService
}

func newStatsTestEnv(t *testing.T) *statsTestEnv {
	t.Helper()
	db := openServiceTestDB(t)
	customers := repository.NewCustomerRepository(db)
	visits := repository.NewVisitRepository(db)
	return &statsTestEnv{
		db:        db,
		customers: customers,
		svc:       NewCustomerStatsService(customers, visits, 45),
	}
}

func (env *statsTestEnv) createVisit(t *testing.T, userID, restaurantID uint, amount float64, visitedAt time.Time) {
	t.Helper()
	money := models.NewMoneyFromDecimal(decimal.NewFromFloat(amount))
	visit := &models.Visit{
		UserID:           userID,
		RestaurantID:     restaurantID,
		Amount:           &money,
		ValidationMethod: constants.ValidationMethodCode,
		VisitedAt:        visitedAt,
	}
	if err := env.db.Create(visit).Error; err != nil {
		t.Fatalf("create visit failed: %v", err)
	}
}

func TestRefreshWithoutVisits(t *testing.T) {
	env := newStatsTestEnv(t)

	customer, err := env.svc.Refresh(61, 9061)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if customer.TotalVisits != 0 {
		t.Fatalf("total visits want 0 got %d", customer.TotalVisits)
	}
	if customer.LoyaltyScore != 0 || customer.Status != constants.SegmentNouveau {
		t.Fatalf("empty history should score 0 Nouveau, got %d %s", customer.LoyaltyScore, customer.Status)
	}
	if customer.LastVisit != nil {
		t.Fatalf("last visit should be nil before the first visit")
	}
}

func TestRefreshAggregatesVisits(t *testing.T) {
	env := newStatsTestEnv(t)
	now := time.Now()
	env.createVisit(t, 62, 9062, 50, now.Add(-48*time.Hour))
	env.createVisit(t, 62, 9062, 50, now.Add(-24*time.Hour))

	customer, err := env.svc.Refresh(62, 9062)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if customer.TotalVisits != 2 {
		t.Fatalf("total visits want 2 got %d", customer.TotalVisits)
	}
	if !customer.TotalRevenue.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("total revenue want 100 got %s", customer.TotalRevenue.Decimal)
	}
	if !customer.AverageTicket.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("average ticket want 50 got %s", customer.AverageTicket.Decimal)
	}
	// frequency 12 + spend 40
	if customer.LoyaltyScore != 52 {
		t.Fatalf("want score 52 got %d", customer.LoyaltyScore)
	}
	// The stored label starts at Nouveau on creation.
	if customer.Status != constants.SegmentNouveau {
		t.Fatalf("first refresh creates as Nouveau, got %s", customer.Status)
	}
	if customer.LastVisit == nil {
		t.Fatalf("last visit should be recorded")
	}
	if got := customer.LastVisit.Unix(); got != now.Add(-24*time.Hour).Unix() {
		t.Fatalf("last visit should be the latest one, got %v", customer.LastVisit)
	}

	// A second refresh stays exact instead of double counting, and the
	// score bucket takes over the stored label.
	again, err := env.svc.Refresh(62, 9062)
	if err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
	if again.ID != customer.ID || again.TotalVisits != 2 {
		t.Fatalf("refresh must update in place, got id %d visits %d", again.ID, again.TotalVisits)
	}
	if again.Status != constants.SegmentHabitue {
		t.Fatalf("want Habitué after the follow-up refresh, got %s", again.Status)
	}
}

func TestListInactifIsRecencyDerived(t *testing.T) {
	env := newStatsTestEnv(t)
	now := time.Now()
	restaurantID := uint(9063)

	old := now.AddDate(0, 0, -90)
	recent := now.AddDate(0, 0, -3)
	dormant := &models.Customer{
		UserID:       63,
		RestaurantID: restaurantID,
		LastVisit:    &old,
		LoyaltyScore: 85,
		Status:       constants.SegmentPremium,
	}
	active := &models.Customer{
		UserID:       64,
		RestaurantID: restaurantID,
		LastVisit:    &recent,
		LoyaltyScore: 85,
		Status:       constants.SegmentPremium,
	}
	for _, customer := range []*models.Customer{dormant, active} {
		if err := env.db.Create(customer).Error; err != nil {
			t.Fatalf("create customer failed: %v", err)
		}
	}

	rows, total, err := env.svc.List(repository.CustomerListFilter{
		RestaurantID: restaurantID,
		Status:       constants.SegmentInactif,
	}, now)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("only the dormant customer should match, got %d rows", total)
	}
	if rows[0].UserID != dormant.UserID {
		t.Fatalf("want user %d got %d", dormant.UserID, rows[0].UserID)
	}
}

func TestSegmentsOverlapForDormantPremium(t *testing.T) {
	env := newStatsTestEnv(t)
	now := time.Now()
	old := now.AddDate(0, 0, -90)

	segments := env.svc.Segments(&models.Customer{
		LoyaltyScore: 85,
		LastVisit:    &old,
	}, now)
	want := fmt.Sprintf("[%s %s]", constants.SegmentPremium, constants.SegmentInactif)
	if got := fmt.Sprintf("%v", segments); got != want {
		t.Fatalf("segments want %s got %s", want, got)
	}
}
