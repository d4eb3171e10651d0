package public

import (
	"strconv"
	"time"

	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/i18n"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/gin-gonic/gin"
)

// ValidateVisitRequest is one visit submission body. An empty code means
// an NFC tap.
type ValidateVisitRequest struct {
	Code           string        `json:"code"`
	Amount         *models.Money `json:"amount"`
	IdempotencyKey string        `json:"idempotency_key"`
	VisitedAt      *time.Time    `json:"visited_at"`
}

// ValidateVisit records a visit at a restaurant for the authenticated diner.
func (h *Handler) ValidateVisit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	restaurantID, ok := parseRestaurantID(c)
	if !ok {
		return
	}

	var req ValidateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.VisitService.Validate(service.ValidateVisitInput{
		UserID:         userID,
		RestaurantID:   restaurantID,
		Code:           req.Code,
		Amount:         req.Amount,
		IdempotencyKey: req.IdempotencyKey,
		VisitedAt:      req.VisitedAt,
	})
	if err != nil {
		respondVisitValidateError(c, err)
		return
	}

	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "msg.visit_recorded"), result)
}

// ListMyVisits returns the authenticated diner's visit history.
func (h *Handler) ListMyVisits(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.VisitListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("restaurant_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.RestaurantID = uint(id)
		}
	}

	visits, total, err := h.VisitService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, visits, response.BuildPagination(page, pageSize, total))
}
