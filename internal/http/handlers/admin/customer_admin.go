package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/repository"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminCustomers lists per-restaurant customer profiles.
// The segment filter accepts score buckets as well as Inactif.
func (h *Handler) GetAdminCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CustomerListFilter{
		Status:   strings.TrimSpace(c.Query("segment")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("restaurant_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.RestaurantID = uint(id)
		}
	}
	if raw := c.Query("min_score"); raw != "" {
		if score, err := strconv.Atoi(raw); err == nil {
			filter.MinScore = score
		}
	}

	customers, total, err := h.CustomerStatsService.List(filter, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, customers, response.BuildPagination(page, pageSize, total))
}

// GetAdminCustomer returns one customer profile with its live segments.
func (h *Handler) GetAdminCustomer(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil || userID == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}
	restaurantID, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 64)
	if err != nil || restaurantID == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	customer, err := h.CustomerStatsService.GetByPair(uint(userID), uint(restaurantID))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "error.customer_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, gin.H{
		"customer": customer,
		"segments": h.CustomerStatsService.Segments(customer, time.Now()),
	})
}

// RefreshCustomerStatsRequest names the pair to re-aggregate.
type RefreshCustomerStatsRequest struct {
	UserID       uint `json:"user_id" binding:"required"`
	RestaurantID uint `json:"restaurant_id" binding:"required"`
}

// RefreshCustomerStats forces a full stats re-aggregation for one pair.
func (h *Handler) RefreshCustomerStats(c *gin.Context) {
	var req RefreshCustomerStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	customer, err := h.CustomerStatsService.Refresh(req.UserID, req.RestaurantID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, customer)
}
