package repository

import (
	"errors"
	"time"

	"github.com/fidelio-loyalty/internal/models"

	"gorm.io/gorm"
)

// CampaignRepository is the campaign data access interface.
type CampaignRepository interface {
	GetByID(id uint) (*models.Campaign, error)
	Create(campaign *models.Campaign) error
	Update(campaign *models.Campaign) error
	Delete(id uint) error
	List(filter CampaignListFilter) ([]models.Campaign, int64, error)
	MarkDispatching(id uint) error
	MarkSent(id uint, recipientCount int64, sentAt time.Time) error
	WithTx(tx *gorm.DB) *GormCampaignRepository
}

// CampaignListFilter filters campaign listings.
type CampaignListFilter struct {
	RestaurantID  uint
	Status        string
	TargetSegment string
	Page          int
	PageSize      int
}

// GormCampaignRepository is the GORM implementation.
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a campaign repository.
func NewCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCampaignRepository) WithTx(tx *gorm.DB) *GormCampaignRepository {
	if tx == nil {
		return r
	}
	return &GormCampaignRepository{db: tx}
}

// GetByID fetches a campaign by id.
func (r *GormCampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// Create inserts a campaign.
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// Update saves a campaign.
func (r *GormCampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// Delete soft-deletes a campaign.
func (r *GormCampaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.Campaign{}, id).Error
}

// List pages through campaigns.
func (r *GormCampaignRepository) List(filter CampaignListFilter) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	query := r.db.Model(&models.Campaign{})

	if filter.RestaurantID > 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TargetSegment != "" {
		query = query.Where("target_segment = ?", filter.TargetSegment)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// MarkDispatching transitions draft to dispatching. The guarded WHERE keeps
// a double dispatch from racing through.
func (r *GormCampaignRepository) MarkDispatching(id uint) error {
	result := r.db.Model(&models.Campaign{}).
		Where("id = ? AND status = ?", id, "draft").
		Update("status", "dispatching")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkSent records the dispatch outcome.
func (r *GormCampaignRepository) MarkSent(id uint, recipientCount int64, sentAt time.Time) error {
	return r.db.Model(&models.Campaign{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"status":          "sent",
			"recipient_count": recipientCount,
			"sent_at":         sentAt,
		}).Error
}
