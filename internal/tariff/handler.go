package tariff

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mohamedammar2729/Parking-System/internal/api"
	"github.com/mohamedammar2729/Parking-System/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      List rush-hour windows
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} tariff.RushWindow
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/rush-hours [get]
func (h *Handler) ListRushWindows(c *gin.Context) {
	ctx := c.Request.Context()
	windows, err := h.service.ListRushWindows(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch rush hours"})
		return
	}

	c.JSON(http.StatusOK, windows)
}

// @Summary      Create a rush-hour window
// @Description  Admin-only: weekly window during which the special rate applies
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body tariff.CreateRushWindowRequest true "Window payload"
// @Success      201 {object} tariff.RushWindow
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/rush-hours [post]
func (h *Handler) CreateRushWindow(c *gin.Context) {
	var req CreateRushWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	adminID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()
	window, err := h.service.CreateRushWindow(ctx, adminID, req)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create rush hour"})
		return
	}

	c.JSON(http.StatusCreated, window)
}

// @Summary      List vacation periods
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} tariff.Vacation
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/vacations [get]
func (h *Handler) ListVacations(c *gin.Context) {
	ctx := c.Request.Context()
	vacations, err := h.service.ListVacations(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch vacations"})
		return
	}

	c.JSON(http.StatusOK, vacations)
}

// @Summary      Create a vacation period
// @Description  Admin-only: date range during which the special rate applies all day
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body tariff.CreateVacationRequest true "Vacation payload"
// @Success      201 {object} tariff.Vacation
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/vacations [post]
func (h *Handler) CreateVacation(c *gin.Context) {
	var req CreateVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	adminID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()
	vacation, err := h.service.CreateVacation(ctx, adminID, req)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create vacation"})
		return
	}

	c.JSON(http.StatusCreated, vacation)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTimeFormat) ||
		errors.Is(err, ErrInvalidTimeOrder) ||
		errors.Is(err, ErrInvalidDateFormat) ||
		errors.Is(err, ErrInvalidDateOrder) ||
		errors.Is(err, ErrInvalidWeekDay)
}
