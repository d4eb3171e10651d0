package public

import (
	"strconv"
	"time"

	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetActiveFlashPromotions lists promotions currently open for claiming.
func (h *Handler) GetActiveFlashPromotions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	now := time.Now()
	filter := repository.FlashPromotionListFilter{
		ActiveAt: &now,
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("restaurant_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.RestaurantID = uint(id)
		}
	}

	promotions, total, err := h.FlashPromotionService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, promotions, response.BuildPagination(page, pageSize, total))
}

// ClaimFlashPromotion reserves one unit of a promotion for the diner.
func (h *Handler) ClaimFlashPromotion(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	promotion, claimErr := h.FlashPromotionService.Claim(uint(id), time.Now())
	if claimErr != nil {
		respondPromotionClaimError(c, claimErr)
		return
	}

	response.Success(c, gin.H{
		"promotion": promotion,
		"claimed":   true,
	})
}
