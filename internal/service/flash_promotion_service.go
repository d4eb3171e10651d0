package service

import (
	"errors"
	"time"

	"github.com/fidelio-loyalty/internal/logger"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"
)

var (
	ErrPromotionNotFound  = errors.New("flash promotion not found")
	ErrPromotionInactive  = errors.New("flash promotion is outside its window")
	ErrPromotionExhausted = errors.New("flash promotion is sold out")
	ErrInvalidWindow      = errors.New("promotion window is invalid")
)

// FlashPromotionService manages limited-quantity time-boxed offers.
type FlashPromotionService struct {
	promotionRepo repository.FlashPromotionRepository
	menuRepo      repository.MenuItemRepository
}

// FlashPromotionInput carries the editable promotion fields.
type FlashPromotionInput struct {
	RestaurantID uint
	MenuItemID   *uint
	Title        string
	Description  string
	Quantity     int64
	StartsAt     time.Time
	EndsAt       time.Time
}

// NewFlashPromotionService creates the promotion service.
func NewFlashPromotionService(
	promotionRepo repository.FlashPromotionRepository,
	menuRepo repository.MenuItemRepository,
) *FlashPromotionService {
	return &FlashPromotionService{
		promotionRepo: promotionRepo,
		menuRepo:      menuRepo,
	}
}

// Create publishes a promotion with its full quantity available.
func (s *FlashPromotionService) Create(input FlashPromotionInput) (*models.FlashPromotion, error) {
	if !input.EndsAt.After(input.StartsAt) {
		return nil, ErrInvalidWindow
	}
	if input.MenuItemID != nil {
		item, err := s.menuRepo.GetByID(*input.MenuItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.RestaurantID != input.RestaurantID {
			return nil, ErrMenuItemNotFound
		}
	}

	quantity := input.Quantity
	if quantity < 0 {
		quantity = 0
	}
	promotion := &models.FlashPromotion{
		RestaurantID: input.RestaurantID,
		MenuItemID:   input.MenuItemID,
		Title:        input.Title,
		Description:  input.Description,
		Quantity:     quantity,
		Remaining:    quantity,
		StartsAt:     input.StartsAt,
		EndsAt:       input.EndsAt,
	}
	if err := s.promotionRepo.Create(promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// Update edits a promotion. Raising the quantity adds to remaining;
// lowering it never drives remaining below zero.
func (s *FlashPromotionService) Update(id uint, input FlashPromotionInput) (*models.FlashPromotion, error) {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, ErrInvalidWindow
	}

	delta := input.Quantity - promotion.Quantity
	promotion.Title = input.Title
	promotion.Description = input.Description
	promotion.MenuItemID = input.MenuItemID
	promotion.Quantity = input.Quantity
	promotion.Remaining += delta
	if promotion.Remaining < 0 {
		promotion.Remaining = 0
	}
	promotion.StartsAt = input.StartsAt
	promotion.EndsAt = input.EndsAt
	if err := s.promotionRepo.Update(promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// GetByID fetches a promotion.
func (s *FlashPromotionService) GetByID(id uint) (*models.FlashPromotion, error) {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	return promotion, nil
}

// List pages through promotions.
func (s *FlashPromotionService) List(filter repository.FlashPromotionListFilter) ([]models.FlashPromotion, int64, error) {
	return s.promotionRepo.List(filter)
}

// Delete removes a promotion.
func (s *FlashPromotionService) Delete(id uint) error {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return ErrPromotionNotFound
	}
	return s.promotionRepo.Delete(id)
}

// Claim takes one unit. The window is checked first, then the guarded
// decrement settles concurrent claims; losers get the exhausted error.
func (s *FlashPromotionService) Claim(id uint, now time.Time) (*models.FlashPromotion, error) {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	if !promotion.ActiveAt(now) {
		return nil, ErrPromotionInactive
	}

	claimed, err := s.promotionRepo.ClaimOne(id)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrPromotionExhausted
	}
	promotion.Remaining--
	if promotion.Remaining < 0 {
		promotion.Remaining = 0
	}

	logger.Infow("flash_promotion_claimed",
		"promotion_id", id,
		"restaurant_id", promotion.RestaurantID,
		"remaining", promotion.Remaining,
	)
	return promotion, nil
}
