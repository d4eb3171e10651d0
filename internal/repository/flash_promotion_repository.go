package repository

import (
	"errors"
	"time"

	"github.com/fidelio-loyalty/internal/models"

	"gorm.io/gorm"
)

// FlashPromotionRepository is the flash promotion data access interface.
type FlashPromotionRepository interface {
	GetByID(id uint) (*models.FlashPromotion, error)
	Create(promotion *models.FlashPromotion) error
	Update(promotion *models.FlashPromotion) error
	Delete(id uint) error
	List(filter FlashPromotionListFilter) ([]models.FlashPromotion, int64, error)
	ClaimOne(id uint) (bool, error)
	ReleaseOne(id uint) error
	WithTx(tx *gorm.DB) *GormFlashPromotionRepository
}

// FlashPromotionListFilter filters promotion listings.
type FlashPromotionListFilter struct {
	RestaurantID uint
	ActiveAt     *time.Time
	Page         int
	PageSize     int
}

// GormFlashPromotionRepository is the GORM implementation.
type GormFlashPromotionRepository struct {
	db *gorm.DB
}

// NewFlashPromotionRepository creates a flash promotion repository.
func NewFlashPromotionRepository(db *gorm.DB) *GormFlashPromotionRepository {
	return &GormFlashPromotionRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormFlashPromotionRepository) WithTx(tx *gorm.DB) *GormFlashPromotionRepository {
	if tx == nil {
		return r
	}
	return &GormFlashPromotionRepository{db: tx}
}

// GetByID fetches a promotion by id.
func (r *GormFlashPromotionRepository) GetByID(id uint) (*models.FlashPromotion, error) {
	var promotion models.FlashPromotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// Create inserts a promotion.
func (r *GormFlashPromotionRepository) Create(promotion *models.FlashPromotion) error {
	return r.db.Create(promotion).Error
}

// Update saves a promotion.
func (r *GormFlashPromotionRepository) Update(promotion *models.FlashPromotion) error {
	return r.db.Save(promotion).Error
}

// Delete soft-deletes a promotion.
func (r *GormFlashPromotionRepository) Delete(id uint) error {
	return r.db.Delete(&models.FlashPromotion{}, id).Error
}

// List pages through promotions.
func (r *GormFlashPromotionRepository) List(filter FlashPromotionListFilter) ([]models.FlashPromotion, int64, error) {
	var promotions []models.FlashPromotion
	query := r.db.Model(&models.FlashPromotion{})

	if filter.RestaurantID > 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.ActiveAt != nil {
		query = query.Where("starts_at <= ? AND ends_at > ?", *filter.ActiveAt, *filter.ActiveAt)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&promotions).Error; err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}

// ClaimOne decrements remaining when stock is left. The guarded UPDATE is
// the only writer of remaining, so concurrent claims cannot oversell.
func (r *GormFlashPromotionRepository) ClaimOne(id uint) (bool, error) {
	result := r.db.Model(&models.FlashPromotion{}).
		Where("id = ? AND remaining > 0", id).
		UpdateColumn("remaining", gorm.Expr("remaining - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReleaseOne returns one claimed unit, capped at the total quantity.
func (r *GormFlashPromotionRepository) ReleaseOne(id uint) error {
	return r.db.Model(&models.FlashPromotion{}).
		Where("id = ? AND remaining < quantity", id).
		UpdateColumn("remaining", gorm.Expr("remaining + 1")).Error
}
