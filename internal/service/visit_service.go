package service

import (
	"errors"
	"strings"
	"time"

	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/logger"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrRestaurantInactive = errors.New("restaurant is inactive")
	ErrInvalidVisitCode   = errors.New("invalid validation code")
	ErrInvalidVisitAmount = errors.New("visit amount must not be negative")
	ErrVisitNotFound      = errors.New("visit not found")
)

// VisitService validates visits and records their loyalty outcome.
type VisitService struct {
	visitRepo      repository.VisitRepository
	membershipRepo repository.MembershipRepository
	restaurantRepo repository.RestaurantRepository
	programRepo    repository.LoyaltyProgramRepository
	statsSvc       *CustomerStatsService
	codeVerifier   CodeVerifier
}

// ValidateVisitInput is one visit submission.
type ValidateVisitInput struct {
	UserID         uint
	RestaurantID   uint
	Code           string
	Amount         *models.Money // nil when the bill amount was not captured
	IdempotencyKey string        // optional caller dedup key
	VisitedAt      *time.Time    // defaults to now
}

// ValidateVisitResult is the outcome returned to the caller.
type ValidateVisitResult struct {
	Visit      *models.Visit      `json:"visit"`
	Membership *models.Membership `json:"membership"`
	Customer   *models.Customer   `json:"customer"`
	Replayed   bool               `json:"replayed"`
}

// NewVisitService creates the visit service.
func NewVisitService(
	visitRepo repository.VisitRepository,
	membershipRepo repository.MembershipRepository,
	restaurantRepo repository.RestaurantRepository,
	programRepo repository.LoyaltyProgramRepository,
	statsSvc *CustomerStatsService,
	codeVerifier CodeVerifier,
) *VisitService {
	return &VisitService{
		visitRepo:      visitRepo,
		membershipRepo: membershipRepo,
		restaurantRepo: restaurantRepo,
		programRepo:    programRepo,
		statsSvc:       statsSvc,
		codeVerifier:   codeVerifier,
	}
}

// Validate runs the full visit pipeline: checks, accrual pricing, then a
// single transaction covering the visit row, the membership counters, the
// tier recompute, the restaurant counter and the customer stats refresh.
func (s *VisitService) Validate(input ValidateVisitInput) (*ValidateVisitResult, error) {
	if input.UserID == 0 || input.RestaurantID == 0 {
		return nil, ErrRestaurantNotFound
	}

	restaurant, err := s.restaurantRepo.GetByID(input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	if restaurant.Status != constants.RestaurantStatusActive {
		return nil, ErrRestaurantInactive
	}

	// A submitted code goes through the verifier; no code means an NFC tap,
	// which validates on its own.
	code := strings.TrimSpace(input.Code)
	validationMethod := constants.ValidationMethodNFC
	if code != "" {
		if !s.codeVerifier.Verify(input.RestaurantID, code) {
			return nil, ErrInvalidVisitCode
		}
		validationMethod = constants.ValidationMethodCode
	}

	var amount *decimal.Decimal
	if input.Amount != nil {
		if input.Amount.Decimal.IsNegative() {
			return nil, ErrInvalidVisitAmount
		}
		value := input.Amount.Decimal.Round(2)
		amount = &value
	}

	program, err := s.programRepo.GetByRestaurantID(input.RestaurantID)
	if err != nil {
		return nil, err
	}

	accrualInput := AccrualInput{Amount: amount}
	if program != nil {
		programType, err := ParseProgramType(program.Type)
		if err != nil {
			return nil, err
		}
		accrualInput.HasProgram = true
		accrualInput.Type = programType
		accrualInput.SpendingRatio = program.SpendingRatio
	}
	accrual := ComputeAccrual(accrualInput)

	visitedAt := time.Now()
	if input.VisitedAt != nil {
		visitedAt = *input.VisitedAt
	}

	idempotencyKey := strings.TrimSpace(input.IdempotencyKey)

	result := &ValidateVisitResult{}
	err = s.visitRepo.Transaction(func(tx *gorm.DB) error {
		visitRepo := s.visitRepo.WithTx(tx)
		membershipRepo := s.membershipRepo.WithTx(tx)
		restaurantRepo := s.restaurantRepo.WithTx(tx)

		// Replay: same key returns the original outcome without re-crediting.
		if idempotencyKey != "" {
			existing, err := visitRepo.GetByIdempotencyKey(input.RestaurantID, idempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				membership, err := membershipRepo.GetByPair(input.UserID, input.RestaurantID)
				if err != nil {
					return err
				}
				result.Visit = existing
				result.Membership = membership
				result.Replayed = true
				return nil
			}
		}

		membership, err := membershipRepo.GetByPairForUpdate(input.UserID, input.RestaurantID)
		if err != nil {
			return err
		}
		if membership == nil {
			welcomeBonus := 0
			if program != nil {
				welcomeBonus = program.WelcomeBonus
			}
			membership = &models.Membership{
				UserID:       input.UserID,
				RestaurantID: input.RestaurantID,
				Points:       int64(welcomeBonus),
				Tier:         constants.TierBronze,
				JoinedAt:     visitedAt,
			}
			if err := membershipRepo.Create(membership); err != nil {
				return err
			}
		}

		if err := membershipRepo.IncrementCounters(membership.ID, accrual.PointsEarned, accrual.StampsEarned); err != nil {
			return err
		}
		membership.Points += int64(accrual.PointsEarned)
		membership.Stamps += int64(accrual.StampsEarned)

		tier, nextThreshold := TierForPoints(membership.Points)
		if tier != membership.Tier || nextThreshold != membership.NextTierThreshold {
			if err := membershipRepo.UpdateTier(membership.ID, tier, nextThreshold); err != nil {
				return err
			}
			membership.Tier = tier
			membership.NextTierThreshold = nextThreshold
		}

		visit := &models.Visit{
			UserID:           input.UserID,
			RestaurantID:     input.RestaurantID,
			PointsEarned:     accrual.PointsEarned,
			StampsEarned:     accrual.StampsEarned,
			ValidationMethod: validationMethod,
			ValidationCode:   code,
			VisitedAt:        visitedAt,
		}
		if amount != nil {
			money := models.NewMoneyFromDecimal(*amount)
			visit.Amount = &money
		}
		if idempotencyKey != "" {
			visit.IdempotencyKey = &idempotencyKey
		}
		if err := visitRepo.Create(visit); err != nil {
			return err
		}

		if err := restaurantRepo.IncrementVisitCount(input.RestaurantID, 1); err != nil {
			return err
		}

		customer, err := s.statsSvc.RefreshInTx(tx, input.UserID, input.RestaurantID)
		if err != nil {
			return err
		}

		result.Visit = visit
		result.Membership = membership
		result.Customer = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Replayed {
		logger.Infow("visit_recorded",
			"user_id", input.UserID,
			"restaurant_id", input.RestaurantID,
			"points_earned", result.Visit.PointsEarned,
			"stamps_earned", result.Visit.StampsEarned,
		)
	}
	return result, nil
}

// GetByID fetches one visit.
func (s *VisitService) GetByID(id uint) (*models.Visit, error) {
	visit, err := s.visitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}
	return visit, nil
}

// List pages through visits.
func (s *VisitService) List(filter repository.VisitListFilter) ([]models.Visit, int64, error) {
	return s.visitRepo.List(filter)
}
