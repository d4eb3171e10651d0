package public

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/repository"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/gin-gonic/gin"
)

// GetRestaurants lists active restaurants for diners.
func (h *Handler) GetRestaurants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	restaurants, total, err := h.RestaurantService.List(repository.RestaurantListFilter{
		Name:     strings.TrimSpace(c.Query("search")),
		Cuisine:  strings.TrimSpace(c.Query("cuisine")),
		Status:   constants.RestaurantStatusActive,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, restaurants, response.BuildPagination(page, pageSize, total))
}

// GetRestaurant returns one restaurant's public sheet.
func (h *Handler) GetRestaurant(c *gin.Context) {
	id, ok := parseRestaurantID(c)
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

// GetRestaurantProgram returns the restaurant's loyalty program, if any.
func (h *Handler) GetRestaurantProgram(c *gin.Context) {
	id, ok := parseRestaurantID(c)
	if !ok {
		return
	}

	program, err := h.ProgramService.GetByRestaurant(id)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			respondError(c, response.CodeNotFound, "error.program_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, program)
}

// GetRestaurantMenu returns the available dishes of a restaurant.
func (h *Handler) GetRestaurantMenu(c *gin.Context) {
	id, ok := parseRestaurantID(c)
	if !ok {
		return
	}

	items, err := h.MenuService.PublicMenu(id)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, items)
}

// GetRestaurantQRCode streams the table QR code used for visit validation.
func (h *Handler) GetRestaurantQRCode(c *gin.Context) {
	id, ok := parseRestaurantID(c)
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

func parseRestaurantID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return 0, false
	}
	return uint(id), true
}
