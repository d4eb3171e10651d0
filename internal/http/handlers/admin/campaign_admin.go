package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/repository"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/gin-gonic/gin"
)

// CampaignRequest carries the editable campaign fields.
type CampaignRequest struct {
	RestaurantID     uint   `json:"restaurant_id" binding:"required"`
	Title            string `json:"title" binding:"required"`
	Message          string `json:"message"`
	TargetSegment    string `json:"target_segment" binding:"required"`
	FlashPromotionID *uint  `json:"flash_promotion_id"`
}

func (r CampaignRequest) toInput() service.CampaignInput {
	return service.CampaignInput{
		RestaurantID:     r.RestaurantID,
		Title:            r.Title,
		Message:          r.Message,
		TargetSegment:    r.TargetSegment,
		FlashPromotionID: r.FlashPromotionID,
	}
}

func respondCampaignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCampaignNotFound):
		respondError(c, response.CodeNotFound, "error.campaign_not_found", nil)
	case errors.Is(err, service.ErrCampaignNotDraft):
		respondError(c, response.CodeConflict, "error.campaign_not_draft", nil)
	case errors.Is(err, service.ErrUnknownSegment):
		respondError(c, response.CodeBadRequest, "error.unknown_segment", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}

// GetAdminCampaigns lists campaigns.
func (h *Handler) GetAdminCampaigns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CampaignListFilter{
		Status:        strings.TrimSpace(c.Query("status")),
		TargetSegment: strings.TrimSpace(c.Query("segment")),
		Page:          page,
		PageSize:      pageSize,
	}
	if raw := c.Query("restaurant_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.RestaurantID = uint(id)
		}
	}

	campaigns, total, err := h.CampaignService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, campaigns, response.BuildPagination(page, pageSize, total))
}

// GetAdminCampaign returns one campaign.
func (h *Handler) GetAdminCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	campaign, err := h.CampaignService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			respondError(c, response.CodeNotFound, "error.campaign_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, campaign)
}

// CreateCampaign drafts a campaign.
func (h *Handler) CreateCampaign(c *gin.Context) {
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	campaign, err := h.CampaignService.Create(req.toInput())
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	response.Success(c, campaign)
}

// UpdateCampaign edits a draft campaign.
func (h *Handler) UpdateCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	campaign, err := h.CampaignService.Update(id, req.toInput())
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	response.Success(c, campaign)
}

// DeleteCampaign removes a draft campaign.
func (h *Handler) DeleteCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.CampaignService.Delete(id); err != nil {
		respondCampaignError(c, err)
		return
	}

	response.Success(c, nil)
}

// DispatchCampaign sends a draft campaign to its target segment.
func (h *Handler) DispatchCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	campaign, err := h.CampaignService.Dispatch(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			respondError(c, response.CodeNotFound, "error.campaign_not_found", nil)
		case errors.Is(err, service.ErrCampaignNotDraft):
			respondError(c, response.CodeConflict, "error.campaign_not_draft", nil)
		default:
			respondError(c, response.CodeInternal, "error.dispatch_failed", err)
		}
		return
	}

	response.Success(c, campaign)
}
