package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/repository"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/gin-gonic/gin"
)

// FlashPromotionRequest carries the editable promotion fields.
type FlashPromotionRequest struct {
	RestaurantID uint      `json:"restaurant_id" binding:"required"`
	MenuItemID   *uint     `json:"menu_item_id"`
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	Quantity     int64     `json:"quantity" binding:"required"`
	StartsAt     time.Time `json:"starts_at" binding:"required"`
	EndsAt       time.Time `json:"ends_at" binding:"required"`
}

func (r FlashPromotionRequest) toInput() service.FlashPromotionInput {
	return service.FlashPromotionInput{
		RestaurantID: r.RestaurantID,
		MenuItemID:   r.MenuItemID,
		Title:        r.Title,
		Description:  r.Description,
		Quantity:     r.Quantity,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
	}
}

func respondFlashPromotionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromotionNotFound):
		respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
	case errors.Is(err, service.ErrRestaurantNotFound):
		respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
	case errors.Is(err, service.ErrMenuItemNotFound):
		respondError(c, response.CodeNotFound, "error.menu_item_not_found", nil)
	case errors.Is(err, service.ErrInvalidWindow):
		respondError(c, response.CodeBadRequest, "error.invalid_window", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}

// GetAdminFlashPromotions lists flash promotions.
func (h *Handler) GetAdminFlashPromotions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.FlashPromotionListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("restaurant_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.RestaurantID = uint(id)
		}
	}
	if c.Query("active") == "true" {
		now := time.Now()
		filter.ActiveAt = &now
	}

	promotions, total, err := h.FlashPromotionService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, promotions, response.BuildPagination(page, pageSize, total))
}

// GetAdminFlashPromotion returns one promotion.
func (h *Handler) GetAdminFlashPromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	promotion, err := h.FlashPromotionService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, promotion)
}

// CreateFlashPromotion publishes a limited-quantity offer.
func (h *Handler) CreateFlashPromotion(c *gin.Context) {
	var req FlashPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.FlashPromotionService.Create(req.toInput())
	if err != nil {
		respondFlashPromotionError(c, err)
		return
	}

	response.Success(c, promotion)
}

// UpdateFlashPromotion edits a promotion.
func (h *Handler) UpdateFlashPromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req FlashPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.FlashPromotionService.Update(id, req.toInput())
	if err != nil {
		respondFlashPromotionError(c, err)
		return
	}

	response.Success(c, promotion)
}

// DeleteFlashPromotion removes a promotion.
func (h *Handler) DeleteFlashPromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.FlashPromotionService.Delete(id); err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, nil)
}
