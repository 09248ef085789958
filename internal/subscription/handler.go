package subscription

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mohamedammar2729/Parking-System/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Get a subscription
// @Description  Subscription with its cars and open check-ins
// @Tags         subscriptions
// @Produce      json
// @Param        id path string true "Subscription id"
// @Success      200 {object} subscription.Subscription
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /subscriptions/{id} [get]
func (h *Handler) GetSubscription(c *gin.Context) {
	ctx := c.Request.Context()
	sub, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}
