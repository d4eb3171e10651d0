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

// ProgramRequest carries the configurable program parameters.
type ProgramRequest struct {
	RestaurantID   uint    `json:"restaurant_id" binding:"required"`
	Type           string  `json:"type" binding:"required"`
	SpendingRatio  float64 `json:"spending_ratio"`
	WelcomeBonus   int     `json:"welcome_bonus"`
	TargetCount    int     `json:"target_count"`
	TargetSpending float64 `json:"target_spending"`
	RewardLabel    string  `json:"reward_label"`
}

func (r ProgramRequest) toInput() service.ProgramInput {
	return service.ProgramInput{
		RestaurantID:   r.RestaurantID,
		Type:           r.Type,
		SpendingRatio:  r.SpendingRatio,
		WelcomeBonus:   r.WelcomeBonus,
		TargetCount:    r.TargetCount,
		TargetSpending: r.TargetSpending,
		RewardLabel:    r.RewardLabel,
	}
}

func respondProgramError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRestaurantNotFound):
		respondError(c, response.CodeNotFound, "error.restaurant_not_found", nil)
	case errors.Is(err, service.ErrProgramNotFound):
		respondError(c, response.CodeNotFound, "error.program_not_found", nil)
	case errors.Is(err, service.ErrProgramExists):
		respondError(c, response.CodeConflict, "error.program_exists", nil)
	case errors.Is(err, service.ErrInvalidProgramType):
		respondError(c, response.CodeBadRequest, "error.invalid_program_type", nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}

// GetAdminPrograms lists loyalty programs.
func (h *Handler) GetAdminPrograms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.LoyaltyProgramListFilter{
		Type:     strings.TrimSpace(c.Query("type")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("restaurant_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.RestaurantID = uint(id)
		}
	}

	programs, total, err := h.ProgramService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, programs, response.BuildPagination(page, pageSize, total))
}

// GetAdminProgram returns one program.
func (h *Handler) GetAdminProgram(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	program, err := h.ProgramService.GetByID(id)
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

// CreateProgram installs a loyalty program for a restaurant.
func (h *Handler) CreateProgram(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	program, err := h.ProgramService.Create(req.toInput())
	if err != nil {
		respondProgramError(c, err)
		return
	}

	response.Success(c, program)
}

// UpdateProgram edits a loyalty program.
func (h *Handler) UpdateProgram(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	program, err := h.ProgramService.Update(id, req.toInput())
	if err != nil {
		respondProgramError(c, err)
		return
	}

	response.Success(c, program)
}

// DeleteProgram removes a loyalty program.
func (h *Handler) DeleteProgram(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ProgramService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			respondError(c, response.CodeNotFound, "error.program_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}

	response.Success(c, nil)
}
