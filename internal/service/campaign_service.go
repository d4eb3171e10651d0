package service

import (
	"errors"
	"time"

	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/logger"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/queue"
	"github.com/fidelio-loyalty/internal/repository"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrCampaignNotDraft = errors.New("campaign is not in draft state")
	ErrUnknownSegment   = errors.New("unknown target segment")
)

// CampaignService manages segment-targeted campaigns.
type CampaignService struct {
	campaignRepo repository.CampaignRepository
	customerRepo repository.CustomerRepository
	statsSvc     *CustomerStatsService
	queueClient  *queue.Client
}

// CampaignInput carries the editable campaign fields.
type CampaignInput struct {
	RestaurantID     uint
	Title            string
	Message          string
	TargetSegment    string
	FlashPromotionID *uint
}

// NewCampaignService creates the campaign service.
func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	customerRepo repository.CustomerRepository,
	statsSvc *CustomerStatsService,
	queueClient *queue.Client,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		customerRepo: customerRepo,
		statsSvc:     statsSvc,
		queueClient:  queueClient,
	}
}

var knownSegments = map[string]struct{}{
	constants.SegmentNouveau:     {},
	constants.SegmentOccasionnel: {},
	constants.SegmentHabitue:     {},
	constants.SegmentFidele:      {},
	constants.SegmentPremium:     {},
	constants.SegmentInactif:     {},
}

// Create drafts a campaign.
func (s *CampaignService) Create(input CampaignInput) (*models.Campaign, error) {
	if _, ok := knownSegments[input.TargetSegment]; !ok {
		return nil, ErrUnknownSegment
	}
	campaign := &models.Campaign{
		RestaurantID:     input.RestaurantID,
		Title:            input.Title,
		Message:          input.Message,
		TargetSegment:    input.TargetSegment,
		FlashPromotionID: input.FlashPromotionID,
		Status:           constants.CampaignStatusDraft,
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Update edits a draft campaign.
func (s *CampaignService) Update(id uint, input CampaignInput) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Status != constants.CampaignStatusDraft {
		return nil, ErrCampaignNotDraft
	}
	if _, ok := knownSegments[input.TargetSegment]; !ok {
		return nil, ErrUnknownSegment
	}

	campaign.Title = input.Title
	campaign.Message = input.Message
	campaign.TargetSegment = input.TargetSegment
	campaign.FlashPromotionID = input.FlashPromotionID
	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// GetByID fetches a campaign.
func (s *CampaignService) GetByID(id uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

// List pages through campaigns.
func (s *CampaignService) List(filter repository.CampaignListFilter) ([]models.Campaign, int64, error) {
	return s.campaignRepo.List(filter)
}

// Delete removes a draft campaign.
func (s *CampaignService) Delete(id uint) error {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}
	if campaign.Status != constants.CampaignStatusDraft {
		return ErrCampaignNotDraft
	}
	return s.campaignRepo.Delete(id)
}

// Dispatch moves a draft to dispatching and enqueues audience resolution.
// Without a queue the audience is resolved inline.
func (s *CampaignService) Dispatch(id uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Status != constants.CampaignStatusDraft {
		return nil, ErrCampaignNotDraft
	}

	if err := s.campaignRepo.MarkDispatching(id); err != nil {
		return nil, ErrCampaignNotDraft
	}
	campaign.Status = constants.CampaignStatusDispatching

	if s.queueClient != nil && s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueCampaignDispatch(id); err != nil {
			logger.Errorw("campaign_dispatch_enqueue_failed", "campaign_id", id, "error", err)
			return nil, err
		}
		logger.Infow("campaign_dispatch_enqueued", "campaign_id", id)
		return campaign, nil
	}

	if err := s.ResolveAudience(id); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// ResolveAudience counts the customers matching the target segment and
// marks the campaign sent. Called by the worker, or inline when the queue
// is disabled. Segment matching honors the Premium/Inactif overlap.
func (s *CampaignService) ResolveAudience(id uint) error {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}

	now := time.Now()
	var recipients int64
	page := 1
	const pageSize = 500
	for {
		customers, _, err := s.customerRepo.List(repository.CustomerListFilter{
			RestaurantID: campaign.RestaurantID,
			Page:         page,
			PageSize:     pageSize,
		})
		if err != nil {
			return err
		}
		for i := range customers {
			c := customers[i]
			if MatchesSegment(campaign.TargetSegment, c.LoyaltyScore, c.LastVisit, now, s.statsSvc.InactiveAfterDays()) {
				recipients++
			}
		}
		if len(customers) < pageSize {
			break
		}
		page++
	}

	if err := s.campaignRepo.MarkSent(id, recipients, now); err != nil {
		return err
	}
	logger.Infow("campaign_sent",
		"campaign_id", id,
		"target_segment", campaign.TargetSegment,
		"recipient_count", recipients,
	)
	return nil
}
