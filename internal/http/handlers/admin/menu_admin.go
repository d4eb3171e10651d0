package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/models"
	"github.com/fidelio-loyalty/internal/repository"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/gin-gonic/gin"
)

// MenuItemRequest carries the editable menu item fields.
type MenuItemRequest struct {
	RestaurantID uint         `json:"restaurant_id" binding:"required"`
	Name         string       `json:"name" binding:"required"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	Price        models.Money `json:"price"`
	Available    *bool        `json:"available"`
	SortOrder    int          `json:"sort_order"`
}

func (r MenuItemRequest) toInput() service.MenuItemInput {
	return service.MenuItemInput{
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Price:        r.Price,
		Available:    r.Available,
		SortOrder:    r.SortOrder,
	}
}

func respondMenuItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMenuItemNotFound):
		respondError(c, response.CodeNotFound, "error.menu_item_not_found", nil)
	case errors.Is(err, service.ErrRestaurantNotFound):
		respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}

// GetAdminMenuItems lists menu items.
func (h *Handler) GetAdminMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.MenuItemListFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("restaurant_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.RestaurantID = uint(id)
		}
	}
	if raw := c.Query("available"); raw != "" {
		available := raw == "true"
		filter.Available = &available
	}

	items, total, err := h.MenuService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// GetAdminMenuItem returns one menu item.
func (h *Handler) GetAdminMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.MenuService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			respondError(c, response.CodeNotFound, "error.menu_item_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, item)
}

// CreateMenuItem adds a dish.
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.MenuService.Create(req.toInput())
	if err != nil {
		respondMenuItemError(c, err)
		return
	}

	response.Success(c, item)
}

// UpdateMenuItem edits a dish.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.MenuService.Update(id, req.toInput())
	if err != nil {
		respondMenuItemError(c, err)
		return
	}

	response.Success(c, item)
}

// DeleteMenuItem removes a dish.
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.MenuService.Delete(id); err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			respondError(c, response.CodeNotFound, "error.menu_item_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, nil)
}
