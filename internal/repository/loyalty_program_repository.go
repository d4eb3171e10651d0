package repository

import (
	"errors"

	"github.com/fidelio-loyalty/internal/models"

	"gorm.io/gorm"
)

// LoyaltyProgramRepository is the loyalty program data access interface.
type LoyaltyProgramRepository interface {
	GetByID(id uint) (*models.LoyaltyProgram, error)
	GetByRestaurantID(restaurantID uint) (*models.LoyaltyProgram, error)
	Create(program *models.LoyaltyProgram) error
	Update(program *models.LoyaltyProgram) error
	Delete(id uint) error
	List(filter LoyaltyProgramListFilter) ([]models.LoyaltyProgram, int64, error)
	WithTx(tx *gorm.DB) *GormLoyaltyProgramRepository
}

// LoyaltyProgramListFilter filters program listings.
type LoyaltyProgramListFilter struct {
	RestaurantID uint
	Type         string
	Page         int
	PageSize     int
}

// GormLoyaltyProgramRepository is the GORM implementation.
type GormLoyaltyProgramRepository struct {
	db *gorm.DB
}

// NewLoyaltyProgramRepository creates a loyalty program repository.
func NewLoyaltyProgramRepository(db *gorm.DB) *GormLoyaltyProgramRepository {
	return &GormLoyaltyProgramRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormLoyaltyProgramRepository) WithTx(tx *gorm.DB) *GormLoyaltyProgramRepository {
	if tx == nil {
		return r
	}
	return &GormLoyaltyProgramRepository{db: tx}
}

// GetByID fetches a program by id.
func (r *GormLoyaltyProgramRepository) GetByID(id uint) (*models.LoyaltyProgram, error) {
	var program models.LoyaltyProgram
	if err := r.db.First(&program, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

// GetByRestaurantID fetches the restaurant's program.
func (r *GormLoyaltyProgramRepository) GetByRestaurantID(restaurantID uint) (*models.LoyaltyProgram, error) {
	if restaurantID == 0 {
		return nil, nil
	}
	var program models.LoyaltyProgram
	if err := r.db.Where("restaurant_id = ?", restaurantID).First(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

// Create inserts a program.
func (r *GormLoyaltyProgramRepository) Create(program *models.LoyaltyProgram) error {
	return r.db.Create(program).Error
}

// Update saves a program.
func (r *GormLoyaltyProgramRepository) Update(program *models.LoyaltyProgram) error {
	return r.db.Save(program).Error
}

// Delete soft-deletes a program.
func (r *GormLoyaltyProgramRepository) Delete(id uint) error {
	return r.db.Delete(&models.LoyaltyProgram{}, id).Error
}

// List pages through programs.
func (r *GormLoyaltyProgramRepository) List(filter LoyaltyProgramListFilter) ([]models.LoyaltyProgram, int64, error) {
	var programs []models.LoyaltyProgram
	query := r.db.Model(&models.LoyaltyProgram{})

	if filter.RestaurantID > 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&programs).Error; err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}
