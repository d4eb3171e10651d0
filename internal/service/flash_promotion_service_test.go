package service

import (
	"errors"
	"testing"
	"time"

	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"

	"gorm.io/gorm"
)

type promotionTestEnv struct {
	db  *gorm.DB
	svc *FlashPromotionService
}

func newPromotionTestEnv(t *testing.T) *promotionTestEnv {
	t.Helper()
	db := openServiceTestDB(t)
	return &promotionTestEnv{
		db: db,
		svc: NewFlashPromotionService(
			repository.NewFlashPromotionRepository(db),
			repository.NewMenuItemRepository(db),
		),
	}
}

func TestCreatePromotionInvalidWindow(t *testing.T) {
	env := newPromotionTestEnv(t)
	now := time.Now()

	_, err := env.svc.Create(FlashPromotionInput{
		RestaurantID: 7001,
		Title:        "Happy hour",
		Quantity:     10,
		StartsAt:     now,
		EndsAt:       now,
	})
	if !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("want ErrInvalidWindow got %v", err)
	}
}

func TestCreatePromotionMenuItemMismatch(t *testing.T) {
	env := newPromotionTestEnv(t)
	now := time.Now()

	item := &models.MenuItem{RestaurantID: 7002, Name: "Planche mixte"}
	if err := env.db.Create(item).Error; err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}

	_, err := env.svc.Create(FlashPromotionInput{
		RestaurantID: 7003,
		MenuItemID:   &item.ID,
		Title:        "Planche à moitié prix",
		Quantity:     5,
		StartsAt:     now,
		EndsAt:       now.Add(time.Hour),
	})
	if !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("item of another restaurant should be rejected, got %v", err)
	}
}

func TestClaimUntilExhausted(t *testing.T) {
	env := newPromotionTestEnv(t)
	now := time.Now()

	promotion, err := env.svc.Create(FlashPromotionInput{
		RestaurantID: 7004,
		Title:        "Dessert offert",
		Quantity:     2,
		StartsAt:     now.Add(-time.Hour),
		EndsAt:       now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if promotion.Remaining != 2 {
		t.Fatalf("remaining should start at quantity, got %d", promotion.Remaining)
	}

	first, err := env.svc.Claim(promotion.ID, now)
	if err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if first.Remaining != 1 {
		t.Fatalf("remaining want 1 got %d", first.Remaining)
	}
	if _, err := env.svc.Claim(promotion.ID, now); err != nil {
		t.Fatalf("second claim failed: %v", err)
	}
	if _, err := env.svc.Claim(promotion.ID, now); !errors.Is(err, ErrPromotionExhausted) {
		t.Fatalf("want ErrPromotionExhausted got %v", err)
	}
}

func TestClaimOutsideWindow(t *testing.T) {
	env := newPromotionTestEnv(t)
	now := time.Now()

	promotion, err := env.svc.Create(FlashPromotionInput{
		RestaurantID: 7005,
		Title:        "Offre de rentrée",
		Quantity:     10,
		StartsAt:     now.AddDate(0, 0, 7),
		EndsAt:       now.AddDate(0, 0, 14),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.svc.Claim(promotion.ID, now); !errors.Is(err, ErrPromotionInactive) {
		t.Fatalf("upcoming promotion should not be claimable, got %v", err)
	}
}

func TestClaimUnknownPromotion(t *testing.T) {
	env := newPromotionTestEnv(t)
	if _, err := env.svc.Claim(99999999, time.Now()); !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("want ErrPromotionNotFound got %v", err)
	}
}

func TestUpdatePromotionQuantityDelta(t *testing.T) {
	env := newPromotionTestEnv(t)
	now := time.Now()
	input := FlashPromotionInput{
		RestaurantID: 7006,
		Title:        "Menu du midi",
		Quantity:     2,
		StartsAt:     now.Add(-time.Hour),
		EndsAt:       now.Add(24 * time.Hour),
	}

	promotion, err := env.svc.Create(input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := env.svc.Claim(promotion.ID, now); err != nil {
			t.Fatalf("claim %d failed: %v", i+1, err)
		}
	}

	// Raising quantity restocks by the delta.
	input.Quantity = 5
	updated, err := env.svc.Update(promotion.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Remaining != 3 {
		t.Fatalf("remaining want 3 after restock got %d", updated.Remaining)
	}

	// Lowering below the claimed count clamps at zero.
	input.Quantity = 0
	updated, err = env.svc.Update(promotion.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Remaining != 0 {
		t.Fatalf("remaining must not go negative, got %d", updated.Remaining)
	}
}
