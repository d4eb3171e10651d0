package repository

import (
	"errors"

	"github.com/fidelio-loyalty/internal/models"

	"gorm.io/gorm"
)

// RestaurantRepository is the restaurant data access interface.
type RestaurantRepository interface {
	GetByID(id uint) (*models.Restaurant, error)
	ListByIDs(ids []uint) ([]models.Restaurant, error)
	Create(restaurant *models.Restaurant) error
	Update(restaurant *models.Restaurant) error
	Delete(id uint) error
	List(filter RestaurantListFilter) ([]models.Restaurant, int64, error)
	IncrementVisitCount(id uint, delta int) error
	UpdateStatus(id uint, status string) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormRestaurantRepository
}

// RestaurantListFilter filters restaurant listings.
type RestaurantListFilter struct {
	Name     string
	Status   string
	Cuisine  string
	Page     int
	PageSize int
}

// GormRestaurantRepository is the GORM implementation.
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a restaurant repository.
func NewRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormRestaurantRepository) WithTx(tx *gorm.DB) *GormRestaurantRepository {
	if tx == nil {
		return r
	}
	return &GormRestaurantRepository{db: tx}
}

// Transaction runs fn in a database transaction.
func (r *GormRestaurantRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID fetches a restaurant by id.
func (r *GormRestaurantRepository) GetByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// ListByIDs fetches restaurants in bulk.
func (r *GormRestaurantRepository) ListByIDs(ids []uint) ([]models.Restaurant, error) {
	if len(ids) == 0 {
		return []models.Restaurant{}, nil
	}
	var restaurants []models.Restaurant
	if err := r.db.Where("id IN ?", ids).Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

// Create inserts a restaurant.
func (r *GormRestaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

// Update saves a restaurant.
func (r *GormRestaurantRepository) Update(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

// Delete soft-deletes a restaurant.
func (r *GormRestaurantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Restaurant{}, id).Error
}

// List pages through restaurants.
func (r *GormRestaurantRepository) List(filter RestaurantListFilter) ([]models.Restaurant, int64, error) {
	var restaurants []models.Restaurant
	query := r.db.Model(&models.Restaurant{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Cuisine != "" {
		query = query.Where("cuisine = ?", filter.Cuisine)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&restaurants).Error; err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

// IncrementVisitCount bumps the denormalized visit counter.
func (r *GormRestaurantRepository) IncrementVisitCount(id uint, delta int) error {
	if delta == 0 {
		delta = 1
	}
	return r.db.Model(&models.Restaurant{}).
		Where("id = ?", id).
		UpdateColumn("visit_count", gorm.Expr("visit_count + ?", delta)).Error
}

// UpdateStatus sets the restaurant status.
func (r *GormRestaurantRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Restaurant{}).
		Where("id = ?", id).
		Update("status", status).Error
}
