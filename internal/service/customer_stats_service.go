package service

import (
	"errors"
	"time"

	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrCustomerNotFound = errors.New("customer not found")

// CustomerStatsService recomputes the aggregated customer view.
type CustomerStatsService struct {
	customerRepo      repository.CustomerRepository
	visitRepo         repository.VisitRepository
	inactiveAfterDays int
}

// NewCustomerStatsService creates the stats service.
func NewCustomerStatsService(
	customerRepo repository.CustomerRepository,
	visitRepo repository.VisitRepository,
	inactiveAfterDays int,
) *CustomerStatsService {
	if inactiveAfterDays <= 0 {
		inactiveAfterDays = DefaultInactiveAfterDays
	}
	return &CustomerStatsService{
		customerRepo:      customerRepo,
		visitRepo:         visitRepo,
		inactiveAfterDays: inactiveAfterDays,
	}
}

// InactiveAfterDays exposes the configured recency threshold.
func (s *CustomerStatsService) InactiveAfterDays() int {
	return s.inactiveAfterDays
}

// Refresh recomputes one customer row outside any caller transaction.
func (s *CustomerStatsService) Refresh(userID, restaurantID uint) (*models.Customer, error) {
	return s.refresh(s.customerRepo, s.visitRepo, userID, restaurantID)
}

// RefreshInTx recomputes one customer row inside the caller's transaction.
func (s *CustomerStatsService) RefreshInTx(tx *gorm.DB, userID, restaurantID uint) (*models.Customer, error) {
	return s.refresh(s.customerRepo.WithTx(tx), s.visitRepo.WithTx(tx), userID, restaurantID)
}

// refresh re-aggregates every visit for the pair. Full recomputation keeps
// the row exact even after replays or backfills.
func (s *CustomerStatsService) refresh(
	customerRepo repository.CustomerRepository,
	visitRepo repository.VisitRepository,
	userID, restaurantID uint,
) (*models.Customer, error) {
	aggregate, err := visitRepo.AggregateByPair(userID, restaurantID)
	if err != nil {
		return nil, err
	}

	totalRevenue := decimal.NewFromFloat(aggregate.TotalRevenue).Round(2)
	averageTicket := decimal.Zero
	if aggregate.TotalVisits > 0 {
		averageTicket = totalRevenue.Div(decimal.NewFromInt(aggregate.TotalVisits)).Round(2)
	}

	score := LoyaltyScoreFor(aggregate.TotalVisits, averageTicket.InexactFloat64())

	customer, err := customerRepo.GetByPair(userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &models.Customer{
			UserID:       userID,
			RestaurantID: restaurantID,
		}
	}

	customer.TotalVisits = aggregate.TotalVisits
	customer.VisitsPerMonth = aggregate.TotalVisits
	customer.TotalRevenue = models.NewMoneyFromDecimal(totalRevenue)
	customer.AverageTicket = models.NewMoneyFromDecimal(averageTicket)
	customer.LastVisit = aggregate.LastVisit
	customer.LoyaltyScore = score

	if customer.ID == 0 {
		// A freshly created customer starts as Nouveau; the score bucket
		// takes over from the next refresh on.
		customer.Status = constants.SegmentNouveau
		if err := customerRepo.Create(customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	customer.Status = SegmentForScore(score)
	if err := customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByPair fetches one customer row.
func (s *CustomerStatsService) GetByPair(userID, restaurantID uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByPair(userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// List pages through customers. The Inactif filter is recency-derived, not
// a stored-label match; other segment filters also include dormant members
// of the requested score bucket.
func (s *CustomerStatsService) List(filter repository.CustomerListFilter, now time.Time) ([]models.Customer, int64, error) {
	if filter.Status == constants.SegmentInactif {
		cutoff := now.Add(-time.Duration(s.inactiveAfterDays) * 24 * time.Hour)
		filter.Status = ""
		filter.LastVisitBefore = &cutoff
	}
	return s.customerRepo.List(filter)
}

// Segments returns every segment label the customer currently belongs to.
func (s *CustomerStatsService) Segments(customer *models.Customer, now time.Time) []string {
	if customer == nil {
		return nil
	}
	return SegmentsForCustomer(customer.LoyaltyScore, customer.LastVisit, now, s.inactiveAfterDays)
}
