package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.LoyaltyProgram{},
		&models.Membership{},
		&models.Visit{},
		&models.Customer{},
		&models.MenuItem{},
		&models.FlashPromotion{},
	); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return db
}

type visitTestEnv struct {
	db          *gorm.DB
	restaurants *repository.GormRestaurantRepository
	memberships *repository.GormMembershipRepository
	visits      *repository.GormVisitRepository
	customers   *repository.GormCustomerRepository
	stats       *CustomerStatsService
	svc         *VisitService
}

func newVisitTestEnv(t *testing.T) *visitTestEnv {
	t.Helper()
	db := openServiceTestDB(t)
	customers := repository.NewCustomerRepository(db)
	visits := repository.NewVisitRepository(db)
	memberships := repository.NewMembershipRepository(db)
	restaurants := repository.NewRestaurantRepository(db)
	programs := repository.NewLoyaltyProgramRepository(db)
	stats := NewCustomerStatsService(customers, visits, 0)
	return &visitTestEnv{
		db:          db,
		restaurants: restaurants,
		memberships: memberships,
		visits:      visits,
		customers:   customers,
		stats:       stats,
		svc:         NewVisitService(visits, memberships, restaurants, programs, stats, NewAllowlistCodeVerifier(nil)),
	}
}

// The in-memory database is shared across the test binary, so every test
// works against a restaurant it created itself.
func (env *visitTestEnv) createRestaurant(t *testing.T, status string) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:   fmt.Sprintf("Resto %d", time.Now().UnixNano()),
		Status: status,
	}
	if err := env.db.Create(restaurant).Error; err != nil {
		t.Fatalf("create restaurant failed: %v", err)
	}
	return restaurant
}

func (env *visitTestEnv) createProgram(t *testing.T, program *models.LoyaltyProgram) {
	t.Helper()
	if err := env.db.Create(program).Error; err != nil {
		t.Fatalf("create program failed: %v", err)
	}
}

func moneyOf(value float64) *models.Money {
	money := models.NewMoneyFromDecimal(decimal.NewFromFloat(value))
	return &money
}

func TestValidateVisitWithoutProgram(t *testing.T) {
	env := newVisitTestEnv(t)
	restaurant := env.createRestaurant(t, constants.RestaurantStatusActive)

	result, err := env.svc.Validate(ValidateVisitInput{
		UserID:       41,
		RestaurantID: restaurant.ID,
		Code:         "1234",
		Amount:       moneyOf(40),
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if result.Replayed {
		t.Fatalf("fresh visit should not be a replay")
	}
	if result.Visit.PointsEarned != 60 {
		t.Fatalf("no-program accrual want 60 got %d", result.Visit.PointsEarned)
	}
	if result.Visit.ValidationMethod != constants.ValidationMethodCode {
		t.Fatalf("submitted code records method %q, got %q", constants.ValidationMethodCode, result.Visit.ValidationMethod)
	}
	if result.Membership.Points != 60 || result.Membership.Tier != constants.TierBronze {
		t.Fatalf("membership want 60 points Bronze, got %d %s", result.Membership.Points, result.Membership.Tier)
	}
	if result.Customer == nil || result.Customer.TotalVisits != 1 {
		t.Fatalf("customer stats should record one visit, got %+v", result.Customer)
	}

	reloaded, err := env.restaurants.GetByID(restaurant.ID)
	if err != nil {
		t.Fatalf("reload restaurant failed: %v", err)
	}
	if reloaded.VisitCount != 1 {
		t.Fatalf("restaurant visit count want 1 got %d", reloaded.VisitCount)
	}
}

func TestValidateVisitStampsProgram(t *testing.T) {
	env := newVisitTestEnv(t)
	restaurant := env.createRestaurant(t, constants.RestaurantStatusActive)
	env.createProgram(t, &models.LoyaltyProgram{
		RestaurantID: restaurant.ID,
		Type:         constants.ProgramTypeStamps,
		TargetCount:  10,
	})

	for i := 0; i < 2; i++ {
		if _, err := env.svc.Validate(ValidateVisitInput{
			UserID:       42,
			RestaurantID: restaurant.ID,
			Code:         "BONUS",
			Amount:       moneyOf(25),
		}); err != nil {
			t.Fatalf("visit %d failed: %v", i+1, err)
		}
	}

	membership, err := env.memberships.GetByPair(42, restaurant.ID)
	if err != nil {
		t.Fatalf("load membership failed: %v", err)
	}
	if membership.Stamps != 2 {
		t.Fatalf("stamps want 2 got %d", membership.Stamps)
	}
	if membership.Points != 0 {
		t.Fatalf("stamps program should not grant points, got %d", membership.Points)
	}
}

func TestValidateVisitWelcomeBonus(t *testing.T) {
	env := newVisitTestEnv(t)
	restaurant := env.createRestaurant(t, constants.RestaurantStatusActive)
	env.createProgram(t, &models.LoyaltyProgram{
		RestaurantID:  restaurant.ID,
		Type:          constants.ProgramTypePoints,
		SpendingRatio: 1,
		WelcomeBonus:  20,
	})

	result, err := env.svc.Validate(ValidateVisitInput{
		UserID:       43,
		RestaurantID: restaurant.ID,
		Code:         "1234",
		Amount:       moneyOf(10),
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if result.Visit.PointsEarned != 10 {
		t.Fatalf("visit accrual excludes the welcome bonus, want 10 got %d", result.Visit.PointsEarned)
	}
	if result.Membership.Points != 30 {
		t.Fatalf("balance want 30 (20 bonus + 10 earned) got %d", result.Membership.Points)
	}
	if result.Membership.NextTierThreshold != 500 {
		t.Fatalf("next threshold want 500 got %d", result.Membership.NextTierThreshold)
	}
}

func TestValidateVisitCodelessNFC(t *testing.T) {
	env := newVisitTestEnv(t)
	restaurant := env.createRestaurant(t, constants.RestaurantStatusActive)

	result, err := env.svc.Validate(ValidateVisitInput{
		UserID:       49,
		RestaurantID: restaurant.ID,
		Amount:       moneyOf(40),
	})
	if err != nil {
		t.Fatalf("codeless visit failed: %v", err)
	}
	if result.Visit.ValidationMethod != constants.ValidationMethodNFC {
		t.Fatalf("codeless visit records method %q, got %q", constants.ValidationMethodNFC, result.Visit.ValidationMethod)
	}
	if result.Visit.ValidationCode != "" {
		t.Fatalf("nfc visit stores no code, got %q", result.Visit.ValidationCode)
	}
	if result.Visit.PointsEarned != 60 {
		t.Fatalf("accrual applies regardless of method, want 60 got %d", result.Visit.PointsEarned)
	}

	// Whitespace-only input counts as no code.
	blank, err := env.svc.Validate(ValidateVisitInput{
		UserID:       49,
		RestaurantID: restaurant.ID,
		Code:         "   ",
	})
	if err != nil {
		t.Fatalf("blank code visit failed: %v", err)
	}
	if blank.Visit.ValidationMethod != constants.ValidationMethodNFC {
		t.Fatalf("blank code records method %q, got %q", constants.ValidationMethodNFC, blank.Visit.ValidationMethod)
	}
}

func TestValidateVisitInvalidCode(t *testing.T) {
	env := newVisitTestEnv(t)
	restaurant := env.createRestaurant(t, constants.RestaurantStatusActive)

	_, err := env.svc.Validate(ValidateVisitInput{
		UserID:       44,
		RestaurantID: restaurant.ID,
		Code:         "9999",
	})
	if !errors.Is(err, ErrInvalidVisitCode) {
		t.Fatalf("want ErrInvalidVisitCode got %v", err)
	}

	total, err := env.visits.CountByRestaurant(restaurant.ID)
	if err != nil {
		t.Fatalf("count visits failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("rejected visit must not be recorded, found %d", total)
	}
}

func TestValidateVisitInactiveRestaurant(t *testing.T) {
	env := newVisitTestEnv(t)
	restaurant := env.createRestaurant(t, constants.RestaurantStatusInactive)

	_, err := env.svc.Validate(ValidateVisitInput{
		UserID:       45,
		RestaurantID: restaurant.ID,
		Code:         "1234",
	})
	if !errors.Is(err, ErrRestaurantInactive) {
		t.Fatalf("want ErrRestaurantInactive got %v", err)
	}
}

func TestValidateVisitNegativeAmount(t *testing.T) {
	env := newVisitTestEnv(t)
	restaurant := env.createRestaurant(t, constants.RestaurantStatusActive)

	_, err := env.svc.Validate(ValidateVisitInput{
		UserID:       46,
		RestaurantID: restaurant.ID,
		Code:         "1234",
		Amount:       moneyOf(-5),
	})
	if !errors.Is(err, ErrInvalidVisitAmount) {
		t.Fatalf("want ErrInvalidVisitAmount got %v", err)
	}
}

func TestValidateVisitIdempotentReplay(t *testing.T) {
	env := newVisitTestEnv(t)
	restaurant := env.createRestaurant(t, constants.RestaurantStatusActive)

	input := ValidateVisitInput{
		UserID:         47,
		RestaurantID:   restaurant.ID,
		Code:           "1234",
		Amount:         moneyOf(40),
		IdempotencyKey: "ticket-47-001",
	}

	first, err := env.svc.Validate(input)
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	second, err := env.svc.Validate(input)
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if !second.Replayed {
		t.Fatalf("duplicate key should be flagged as a replay")
	}
	if second.Visit.ID != first.Visit.ID {
		t.Fatalf("replay must return the original visit, want %d got %d", first.Visit.ID, second.Visit.ID)
	}
	if second.Membership.Points != first.Membership.Points {
		t.Fatalf("replay must not re-credit, want %d got %d", first.Membership.Points, second.Membership.Points)
	}

	total, err := env.visits.CountByRestaurant(restaurant.ID)
	if err != nil {
		t.Fatalf("count visits failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("only one visit row should exist, found %d", total)
	}
}

func TestValidateVisitDoubleSubmitWithoutKey(t *testing.T) {
	env := newVisitTestEnv(t)
	restaurant := env.createRestaurant(t, constants.RestaurantStatusActive)

	input := ValidateVisitInput{
		UserID:       48,
		RestaurantID: restaurant.ID,
		Code:         "1234",
		Amount:       moneyOf(20),
	}
	if _, err := env.svc.Validate(input); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := env.svc.Validate(input); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	// Without an idempotency key, duplicates credit twice.
	membership, err := env.memberships.GetByPair(48, restaurant.ID)
	if err != nil {
		t.Fatalf("load membership failed: %v", err)
	}
	if membership.Points != 60 {
		t.Fatalf("two keyless submissions credit twice, want 60 got %d", membership.Points)
	}
}
