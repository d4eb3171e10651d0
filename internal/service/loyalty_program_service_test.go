package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"

	"gorm.io/gorm"
)

type programTestEnv struct {
	db  *gorm.DB
	svc *LoyaltyProgramService
}

func newProgramTestEnv(t *testing.T) *programTestEnv {
	t.Helper()
	db := openServiceTestDB(t)
	return &programTestEnv{
		db: db,
		svc: NewLoyaltyProgramService(
			repository.NewLoyaltyProgramRepository(db),
			repository.NewRestaurantRepository(db),
		),
	}
}

func (env *programTestEnv) createRestaurant(t *testing.T) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:   fmt.Sprintf("Resto %d", time.Now().UnixNano()),
		Status: constants.RestaurantStatusActive,
	}
	if err := env.db.Create(restaurant).Error; err != nil {
		t.Fatalf("create restaurant failed: %v", err)
	}
	return restaurant
}

func TestCreateProgramOnePerRestaurant(t *testing.T) {
	env := newProgramTestEnv(t)
	restaurant := env.createRestaurant(t)

	program, err := env.svc.Create(ProgramInput{
		RestaurantID:  restaurant.ID,
		Type:          constants.ProgramTypePoints,
		SpendingRatio: 2,
		WelcomeBonus:  10,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if program.SpendingRatio != 2 || program.WelcomeBonus != 10 {
		t.Fatalf("program fields not stored: %+v", program)
	}

	_, err = env.svc.Create(ProgramInput{
		RestaurantID: restaurant.ID,
		Type:         constants.ProgramTypeStamps,
	})
	if !errors.Is(err, ErrProgramExists) {
		t.Fatalf("want ErrProgramExists got %v", err)
	}
}

func TestCreateProgramInvalidType(t *testing.T) {
	env := newProgramTestEnv(t)
	restaurant := env.createRestaurant(t)

	_, err := env.svc.Create(ProgramInput{
		RestaurantID: restaurant.ID,
		Type:         "cashback",
	})
	if !errors.Is(err, ErrInvalidProgramType) {
		t.Fatalf("want ErrInvalidProgramType got %v", err)
	}
}

func TestCreateProgramMissingRestaurant(t *testing.T) {
	env := newProgramTestEnv(t)

	_, err := env.svc.Create(ProgramInput{
		RestaurantID: 99999999,
		Type:         constants.ProgramTypePoints,
	})
	if !errors.Is(err, ErrRestaurantNotFound) {
		t.Fatalf("want ErrRestaurantNotFound got %v", err)
	}
}

func TestCreateProgramDefaultsRatio(t *testing.T) {
	env := newProgramTestEnv(t)
	restaurant := env.createRestaurant(t)

	program, err := env.svc.Create(ProgramInput{
		RestaurantID: restaurant.ID,
		Type:         constants.ProgramTypeSpending,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if program.SpendingRatio != 1 {
		t.Fatalf("zero ratio should default to 1, got %v", program.SpendingRatio)
	}
}
