package service

import (
	"errors"
	"fmt"

	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/logger"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrRestaurantHasVisits = errors.New("restaurant has recorded visits")

// RestaurantService manages tenant venues.
type RestaurantService struct {
	restaurantRepo repository.RestaurantRepository
	visitRepo      repository.VisitRepository
	publicBaseURL  string
}

// RestaurantInput carries the editable restaurant fields.
type RestaurantInput struct {
	Name        string
	Cuisine     string
	Address     string
	Phone       string
	Description string
	Offer       string
	BudgetTier  string
	OwnerUserID *uint
}

// NewRestaurantService creates the restaurant service.
func NewRestaurantService(
	restaurantRepo repository.RestaurantRepository,
	visitRepo repository.VisitRepository,
	publicBaseURL string,
) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		visitRepo:      visitRepo,
		publicBaseURL:  publicBaseURL,
	}
}

// Create registers a restaurant, active by default.
func (s *RestaurantService) Create(input RestaurantInput) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{
		Name:        input.Name,
		Status:      constants.RestaurantStatusActive,
		Cuisine:     input.Cuisine,
		Address:     input.Address,
		Phone:       input.Phone,
		Description: input.Description,
		Offer:       input.Offer,
		BudgetTier:  input.BudgetTier,
		OwnerUserID: input.OwnerUserID,
	}
	if err := s.restaurantRepo.Create(restaurant); err != nil {
		return nil, err
	}
	logger.Infow("restaurant_created", "restaurant_id", restaurant.ID, "name", restaurant.Name)
	return restaurant, nil
}

// Update edits a restaurant.
func (s *RestaurantService) Update(id uint, input RestaurantInput) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	restaurant.Name = input.Name
	restaurant.Cuisine = input.Cuisine
	restaurant.Address = input.Address
	restaurant.Phone = input.Phone
	restaurant.Description = input.Description
	restaurant.Offer = input.Offer
	restaurant.BudgetTier = input.BudgetTier
	if input.OwnerUserID != nil {
		restaurant.OwnerUserID = input.OwnerUserID
	}
	if err := s.restaurantRepo.Update(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// GetByID fetches a restaurant.
func (s *RestaurantService) GetByID(id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	return restaurant, nil
}

// List pages through restaurants.
func (s *RestaurantService) List(filter repository.RestaurantListFilter) ([]models.Restaurant, int64, error) {
	return s.restaurantRepo.List(filter)
}

// ToggleStatus flips ACTIVE and INACTIVE.
func (s *RestaurantService) ToggleStatus(id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	next := constants.RestaurantStatusInactive
	if restaurant.Status == constants.RestaurantStatusInactive {
		next = constants.RestaurantStatusActive
	}
	if err := s.restaurantRepo.UpdateStatus(id, next); err != nil {
		return nil, err
	}
	restaurant.Status = next
	logger.Infow("restaurant_status_toggled", "restaurant_id", id, "status", next)
	return restaurant, nil
}

// Delete removes a restaurant. Refused once visits reference it so the
// accrual history stays auditable; disable it instead.
func (s *RestaurantService) Delete(id uint) error {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return err
	}
	if restaurant == nil {
		return ErrRestaurantNotFound
	}

	visitCount, err := s.visitRepo.CountByRestaurant(id)
	if err != nil {
		return err
	}
	if visitCount > 0 {
		return ErrRestaurantHasVisits
	}
	return s.restaurantRepo.Delete(id)
}

// ValidationQRCode renders the PNG a venue prints at the counter. The code
// encodes the public validation URL for the restaurant.
func (s *RestaurantService) ValidationQRCode(id uint, size int) ([]byte, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	if size < 64 || size > 1024 {
		size = 256
	}
	target := fmt.Sprintf("%s/restaurants/%d/visit", s.publicBaseURL, id)
	return qrcode.Encode(target, qrcode.Medium, size)
}
