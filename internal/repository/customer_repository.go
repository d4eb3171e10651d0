package repository

import (
	"errors"
	"time"

	"github.com/fidelio-loyalty/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository is the aggregated customer data access interface.
type CustomerRepository interface {
	GetByID(id uint) (*models.Customer, error)
	GetByPair(userID, restaurantID uint) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	List(filter CustomerListFilter) ([]models.Customer, int64, error)
	ListStaleSegments(inactiveBefore time.Time, limit int) ([]models.Customer, error)
	WithTx(tx *gorm.DB) *GormCustomerRepository
}

// CustomerListFilter filters customer listings. LastVisitBefore selects
// customers whose recency qualifies them as inactive regardless of the
// stored segment label.
type CustomerListFilter struct {
	RestaurantID    uint
	Status          string
	MinScore        int
	LastVisitBefore *time.Time
	Page            int
	PageSize        int
}

// GormCustomerRepository is the GORM implementation.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository.
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) *GormCustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// GetByID fetches a customer row by id.
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByPair fetches the customer row for one user at one restaurant.
func (r *GormCustomerRepository) GetByPair(userID, restaurantID uint) (*models.Customer, error) {
	if userID == 0 || restaurantID == 0 {
		return nil, nil
	}
	var customer models.Customer
	if err := r.db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Create inserts a customer row.
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update saves a customer row.
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// List pages through customers.
func (r *GormCustomerRepository) List(filter CustomerListFilter) ([]models.Customer, int64, error) {
	var customers []models.Customer
	query := r.db.Model(&models.Customer{})

	if filter.RestaurantID > 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MinScore > 0 {
		query = query.Where("loyalty_score >= ?", filter.MinScore)
	}
	if filter.LastVisitBefore != nil {
		query = query.Where("last_visit IS NULL OR last_visit < ?", *filter.LastVisitBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// ListStaleSegments returns customers whose recency crossed the inactivity
// threshold since their stats were last recomputed.
func (r *GormCustomerRepository) ListStaleSegments(inactiveBefore time.Time, limit int) ([]models.Customer, error) {
	if limit <= 0 {
		limit = 500
	}
	var customers []models.Customer
	err := r.db.Model(&models.Customer{}).
		Where("(last_visit IS NULL OR last_visit < ?) AND updated_at < ?", inactiveBefore, inactiveBefore).
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
