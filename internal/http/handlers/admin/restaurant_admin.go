package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/repository"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return 0, false
	}
	return uint(id), true
}

// GetAdminRestaurants lists restaurants for the back office.
func (h *Handler) GetAdminRestaurants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	restaurants, total, err := h.RestaurantService.List(repository.RestaurantListFilter{
		Name:     strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
		Cuisine:  strings.TrimSpace(c.Query("cuisine")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, restaurants, response.BuildPagination(page, pageSize, total))
}

// GetAdminRestaurant returns one restaurant.
func (h *Handler) GetAdminRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	restaurant, err := h.RestaurantService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, restaurant)
}

// RestaurantRequest carries the editable restaurant fields.
type RestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Cuisine     string `json:"cuisine"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
	Offer       string `json:"offer"`
	BudgetTier  string `json:"budget_tier"`
	OwnerUserID *uint  `json:"owner_user_id"`
}

func (r RestaurantRequest) toInput() service.RestaurantInput {
	return service.RestaurantInput{
		Name:        r.Name,
		Cuisine:     r.Cuisine,
		Address:     r.Address,
		Phone:       r.Phone,
		Description: r.Description,
		Offer:       r.Offer,
		BudgetTier:  r.BudgetTier,
		OwnerUserID: r.OwnerUserID,
	}
}

// CreateRestaurant registers a restaurant.
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	restaurant, err := h.RestaurantService.Create(req.toInput())
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, restaurant)
}

// UpdateRestaurant edits a restaurant.
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	restaurant, err := h.RestaurantService.Update(id, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, restaurant)
}

// ToggleRestaurantStatus flips a restaurant between active and inactive.
func (h *Handler) ToggleRestaurantStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	restaurant, err := h.RestaurantService.ToggleStatus(id)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, restaurant)
}

// DeleteRestaurant removes a restaurant without recorded visits.
func (h *Handler) DeleteRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.RestaurantService.Delete(id); err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		if errors.Is(err, service.ErrRestaurantHasVisits) {
			respondError(c, response.CodeConflict, "error.restaurant_has_visits", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, nil)
}

// GetRestaurantValidationQRCode streams the printable validation QR code.
func (h *Handler) GetRestaurantValidationQRCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))

	png, err := h.RestaurantService.ValidationQRCode(id, size)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.qr_generate_failed", err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
