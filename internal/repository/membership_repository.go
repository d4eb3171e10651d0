package repository

import (
	"errors"

	"github.com/fidelio-loyalty/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipRepository is the membership data access interface.
type MembershipRepository interface {
	GetByID(id uint) (*models.Membership, error)
	GetByPair(userID, restaurantID uint) (*models.Membership, error)
	GetByPairForUpdate(userID, restaurantID uint) (*models.Membership, error)
	Create(membership *models.Membership) error
	Update(membership *models.Membership) error
	List(filter MembershipListFilter) ([]models.Membership, int64, error)
	IncrementCounters(id uint, points, stamps int) error
	UpdateTier(id uint, tier string, nextThreshold int64) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormMembershipRepository
}

// MembershipListFilter filters membership listings.
type MembershipListFilter struct {
	UserID       uint
	RestaurantID uint
	Tier         string
	Page         int
	PageSize     int
}

// GormMembershipRepository is the GORM implementation.
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a membership repository.
func NewMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormMembershipRepository) WithTx(tx *gorm.DB) *GormMembershipRepository {
	if tx == nil {
		return r
	}
	return &GormMembershipRepository{db: tx}
}

// Transaction runs fn in a database transaction.
func (r *GormMembershipRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID fetches a membership by id.
func (r *GormMembershipRepository) GetByID(id uint) (*models.Membership, error) {
	var membership models.Membership
	if err := r.db.First(&membership, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

// GetByPair fetches the membership for one user at one restaurant.
func (r *GormMembershipRepository) GetByPair(userID, restaurantID uint) (*models.Membership, error) {
	if userID == 0 || restaurantID == 0 {
		return nil, nil
	}
	var membership models.Membership
	if err := r.db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

// GetByPairForUpdate fetches the membership with a row lock.
func (r *GormMembershipRepository) GetByPairForUpdate(userID, restaurantID uint) (*models.Membership, error) {
	if userID == 0 || restaurantID == 0 {
		return nil, nil
	}
	var membership models.Membership
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

// Create inserts a membership.
func (r *GormMembershipRepository) Create(membership *models.Membership) error {
	return r.db.Create(membership).Error
}

// Update saves a membership.
func (r *GormMembershipRepository) Update(membership *models.Membership) error {
	return r.db.Save(membership).Error
}

// List pages through memberships.
func (r *GormMembershipRepository) List(filter MembershipListFilter) ([]models.Membership, int64, error) {
	var memberships []models.Membership
	query := r.db.Model(&models.Membership{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.RestaurantID > 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.Tier != "" {
		query = query.Where("tier = ?", filter.Tier)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&memberships).Error; err != nil {
		return nil, 0, err
	}
	return memberships, total, nil
}

// IncrementCounters adds to the points and stamps balances atomically.
func (r *GormMembershipRepository) IncrementCounters(id uint, points, stamps int) error {
	if points == 0 && stamps == 0 {
		return nil
	}
	updates := map[string]interface{}{}
	if points != 0 {
		updates["points"] = gorm.Expr("points + ?", points)
	}
	if stamps != 0 {
		updates["stamps"] = gorm.Expr("stamps + ?", stamps)
	}
	return r.db.Model(&models.Membership{}).
		Where("id = ?", id).
		UpdateColumns(updates).Error
}

// UpdateTier sets the tier label and the next threshold.
func (r *GormMembershipRepository) UpdateTier(id uint, tier string, nextThreshold int64) error {
	return r.db.Model(&models.Membership{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"tier":                tier,
			"next_tier_threshold": nextThreshold,
		}).Error
}
