package public

import (
	"errors"
	"strconv"
	"time"

	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/repository"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMyMemberships returns the diner's loyalty cards across restaurants.
func (h *Handler) ListMyMemberships(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	memberships, total, err := h.MembershipRepo.List(repository.MembershipListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, memberships, response.BuildPagination(page, pageSize, total))
}

// GetMyLoyaltyCard returns the diner's membership and stats at one restaurant.
func (h *Handler) GetMyLoyaltyCard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	restaurantID, ok := parseRestaurantID(c)
	if !ok {
		return
	}

	membership, err := h.MembershipRepo.GetByPair(userID, restaurantID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	if membership == nil {
		respondError(c, response.CodeNotFound, "error.membership_not_found", nil)
		return
	}

	card := gin.H{"membership": membership}
	customer, err := h.CustomerStatsService.GetByPair(userID, restaurantID)
	if err != nil && !errors.Is(err, service.ErrCustomerNotFound) {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	if customer != nil {
		card["stats"] = customer
		card["segments"] = h.CustomerStatsService.Segments(customer, time.Now())
	}

	response.Success(c, card)
}
