package repository

import (
	"errors"
	"time"

	"github.com/fidelio-loyalty/internal/models"

	"gorm.io/gorm"
)

// VisitRepository is the visit data access interface. Visits are append-only.
type VisitRepository interface {
	GetByID(id uint) (*models.Visit, error)
	GetByIdempotencyKey(restaurantID uint, key string) (*models.Visit, error)
	Create(visit *models.Visit) error
	List(filter VisitListFilter) ([]models.Visit, int64, error)
	AggregateByPair(userID, restaurantID uint) (*VisitAggregate, error)
	CountByRestaurant(restaurantID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormVisitRepository
}

// VisitListFilter filters visit listings.
type VisitListFilter struct {
	UserID       uint
	RestaurantID uint
	Since        *time.Time
	Page         int
	PageSize     int
}

// VisitAggregate is the per-pair rollup used by customer stats.
type VisitAggregate struct {
	TotalVisits  int64
	TotalRevenue float64
	LastVisit    *time.Time
}

// GormVisitRepository is the GORM implementation.
type GormVisitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a visit repository.
func NewVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormVisitRepository) WithTx(tx *gorm.DB) *GormVisitRepository {
	if tx == nil {
		return r
	}
	return &GormVisitRepository{db: tx}
}

// Transaction runs fn in a database transaction.
func (r *GormVisitRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID fetches a visit by id.
func (r *GormVisitRepository) GetByID(id uint) (*models.Visit, error) {
	var visit models.Visit
	if err := r.db.First(&visit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visit, nil
}

// GetByIdempotencyKey fetches the visit recorded for a dedup key.
func (r *GormVisitRepository) GetByIdempotencyKey(restaurantID uint, key string) (*models.Visit, error) {
	if restaurantID == 0 || key == "" {
		return nil, nil
	}
	var visit models.Visit
	if err := r.db.Where("restaurant_id = ? AND idempotency_key = ?", restaurantID, key).
		First(&visit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visit, nil
}

// Create inserts a visit.
func (r *GormVisitRepository) Create(visit *models.Visit) error {
	return r.db.Create(visit).Error
}

// List pages through visits.
func (r *GormVisitRepository) List(filter VisitListFilter) ([]models.Visit, int64, error) {
	var visits []models.Visit
	query := r.db.Model(&models.Visit{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.RestaurantID > 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.Since != nil {
		query = query.Where("visited_at >= ?", *filter.Since)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&visits).Error; err != nil {
		return nil, 0, err
	}
	return visits, total, nil
}

// AggregateByPair computes the full visit rollup for one user at one
// restaurant. Reads every row so the result is exact, not incremental.
// The latest visit is fetched as a row rather than MAX(visited_at); raw
// aggregate timestamps do not scan portably across drivers.
func (r *GormVisitRepository) AggregateByPair(userID, restaurantID uint) (*VisitAggregate, error) {
	if userID == 0 || restaurantID == 0 {
		return &VisitAggregate{}, nil
	}

	var row struct {
		TotalVisits  int64
		TotalRevenue float64
	}
	err := r.db.Model(&models.Visit{}).
		Select("COUNT(*) AS total_visits, COALESCE(SUM(amount), 0) AS total_revenue").
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	aggregate := &VisitAggregate{
		TotalVisits:  row.TotalVisits,
		TotalRevenue: row.TotalRevenue,
	}
	if row.TotalVisits > 0 {
		var latest models.Visit
		err := r.db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
			Order("visited_at DESC").
			First(&latest).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return aggregate, nil
			}
			return nil, err
		}
		visitedAt := latest.VisitedAt
		aggregate.LastVisit = &visitedAt
	}
	return aggregate, nil
}

// CountByRestaurant counts the visits recorded for a restaurant.
func (r *GormVisitRepository) CountByRestaurant(restaurantID uint) (int64, error) {
	if restaurantID == 0 {
		return 0, nil
	}
	var total int64
	err := r.db.Model(&models.Visit{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&total).Error
	return total, err
}
