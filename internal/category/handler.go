package category

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

// @Summary      List categories
// @Tags         master
// @Produce      json
// @Success      200 {array} category.Category
// @Failure      500 {object} api.ErrorResponse
// @Router       /master/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := h.service.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// @Summary      Update category rates
// @Description  Admin-only: change the normal and/or special hourly rate
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Category id"
// @Param        request body category.UpdateRatesRequest true "New rates"
// @Success      200 {object} category.Category
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/categories/{id} [put]
func (h *Handler) UpdateRates(c *gin.Context) {
	var req UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	adminID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()
	cat, err := h.service.UpdateRates(ctx, adminID, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Category not found"})
		case errors.Is(err, ErrNegativeRate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update category"})
		}
		return
	}

	c.JSON(http.StatusOK, cat)
}
