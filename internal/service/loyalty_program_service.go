package service

import (
	"errors"

	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"
)

var (
	ErrProgramNotFound    = errors.New("loyalty program not found")
	ErrProgramExists      = errors.New("restaurant already has a loyalty program")
	ErrInvalidProgramType = errors.New("invalid program type")
)

// LoyaltyProgramService manages per-restaurant loyalty programs.
type LoyaltyProgramService struct {
	programRepo    repository.LoyaltyProgramRepository
	restaurantRepo repository.RestaurantRepository
}

// ProgramInput carries the configurable program parameters.
type ProgramInput struct {
	RestaurantID   uint
	Type           string
	SpendingRatio  float64
	WelcomeBonus   int
	TargetCount    int
	TargetSpending float64
	RewardLabel    string
}

// NewLoyaltyProgramService creates the program service.
func NewLoyaltyProgramService(
	programRepo repository.LoyaltyProgramRepository,
	restaurantRepo repository.RestaurantRepository,
) *LoyaltyProgramService {
	return &LoyaltyProgramService{
		programRepo:    programRepo,
		restaurantRepo: restaurantRepo,
	}
}

// Create installs a program for a restaurant. One program per restaurant.
func (s *LoyaltyProgramService) Create(input ProgramInput) (*models.LoyaltyProgram, error) {
	if _, err := ParseProgramType(input.Type); err != nil {
		return nil, ErrInvalidProgramType
	}

	restaurant, err := s.restaurantRepo.GetByID(input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	existing, err := s.programRepo.GetByRestaurantID(input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProgramExists
	}

	program := &models.LoyaltyProgram{
		RestaurantID:   input.RestaurantID,
		Type:           input.Type,
		SpendingRatio:  normalizeRatio(input.SpendingRatio),
		WelcomeBonus:   maxInt(input.WelcomeBonus, 0),
		TargetCount:    maxInt(input.TargetCount, 0),
		TargetSpending: input.TargetSpending,
		RewardLabel:    input.RewardLabel,
	}
	if err := s.programRepo.Create(program); err != nil {
		return nil, err
	}
	return program, nil
}

// Update reconfigures an existing program.
func (s *LoyaltyProgramService) Update(id uint, input ProgramInput) (*models.LoyaltyProgram, error) {
	if _, err := ParseProgramType(input.Type); err != nil {
		return nil, ErrInvalidProgramType
	}

	program, err := s.programRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}

	program.Type = input.Type
	program.SpendingRatio = normalizeRatio(input.SpendingRatio)
	program.WelcomeBonus = maxInt(input.WelcomeBonus, 0)
	program.TargetCount = maxInt(input.TargetCount, 0)
	program.TargetSpending = input.TargetSpending
	program.RewardLabel = input.RewardLabel
	if err := s.programRepo.Update(program); err != nil {
		return nil, err
	}
	return program, nil
}

// GetByRestaurant fetches the restaurant's program.
func (s *LoyaltyProgramService) GetByRestaurant(restaurantID uint) (*models.LoyaltyProgram, error) {
	program, err := s.programRepo.GetByRestaurantID(restaurantID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}
	return program, nil
}

// GetByID fetches a program.
func (s *LoyaltyProgramService) GetByID(id uint) (*models.LoyaltyProgram, error) {
	program, err := s.programRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}
	return program, nil
}

// Delete removes a program.
func (s *LoyaltyProgramService) Delete(id uint) error {
	program, err := s.programRepo.GetByID(id)
	if err != nil {
		return err
	}
	if program == nil {
		return ErrProgramNotFound
	}
	return s.programRepo.Delete(id)
}

// List pages through programs.
func (s *LoyaltyProgramService) List(filter repository.LoyaltyProgramListFilter) ([]models.LoyaltyProgram, int64, error) {
	return s.programRepo.List(filter)
}

func normalizeRatio(ratio float64) float64 {
	if ratio <= 0 {
		return 1
	}
	return ratio
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
