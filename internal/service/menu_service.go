package service

import (
	"errors"

	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuService manages restaurant menus.
type MenuService struct {
	menuRepo       repository.MenuItemRepository
	restaurantRepo repository.RestaurantRepository
}

// MenuItemInput carries the editable menu item fields.
type MenuItemInput struct {
	RestaurantID uint
	Name         string
	Description  string
	Category     string
	Price        models.Money
	Available    *bool
	SortOrder    int
}

// NewMenuService creates the menu service.
func NewMenuService(
	menuRepo repository.MenuItemRepository,
	restaurantRepo repository.RestaurantRepository,
) *MenuService {
	return &MenuService{
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
	}
}

// Create adds a dish to a restaurant's menu.
func (s *MenuService) Create(input MenuItemInput) (*models.MenuItem, error) {
	restaurant, err := s.restaurantRepo.GetByID(input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}
	item := &models.MenuItem{
		RestaurantID: input.RestaurantID,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Price:        input.Price,
		Available:    available,
		SortOrder:    input.SortOrder,
	}
	if err := s.menuRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update edits a dish.
func (s *MenuService) Update(id uint, input MenuItemInput) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Category = input.Category
	item.Price = input.Price
	if input.Available != nil {
		item.Available = *input.Available
	}
	item.SortOrder = input.SortOrder
	if err := s.menuRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID fetches a dish.
func (s *MenuService) GetByID(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

// List pages through menu items.
func (s *MenuService) List(filter repository.MenuItemListFilter) ([]models.MenuItem, int64, error) {
	return s.menuRepo.List(filter)
}

// PublicMenu lists the available items for a restaurant.
func (s *MenuService) PublicMenu(restaurantID uint) ([]models.MenuItem, error) {
	available := true
	items, _, err := s.menuRepo.List(repository.MenuItemListFilter{
		RestaurantID: restaurantID,
		Available:    &available,
	})
	return items, err
}

// Delete removes a dish.
func (s *MenuService) Delete(id uint) error {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrMenuItemNotFound
	}
	return s.menuRepo.Delete(id)
}
