package ticket

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mohamedammar2729/Parking-System/internal/api"
	"github.com/mohamedammar2729/Parking-System/internal/subscription"
	"github.com/mohamedammar2729/Parking-System/internal/zone"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Check in
// @Description  Admit a car at a gate and open a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request body ticket.CheckinRequest true "Check-in payload"
// @Success      201 {object} ticket.CheckinResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /tickets/checkin [post]
func (h *Handler) Checkin(c *gin.Context) {
	var req CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	result, err := h.service.Checkin(ctx, req)
	if err != nil {
		c.JSON(checkinStatus(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// @Summary      Check out
// @Description  Close a ticket, bill the stay and free the slot
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request body ticket.CheckoutRequest true "Check-out payload"
// @Success      200 {object} ticket.CheckoutResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /tickets/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	result, err := h.service.Checkout(ctx, req)
	if err != nil {
		c.JSON(checkoutStatus(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Param        id path string true "Ticket id"
// @Success      200 {object} ticket.Ticket
// @Failure      404 {object} api.ErrorResponse
// @Router       /tickets/{id} [get]
func (h *Handler) GetTicket(c *gin.Context) {
	ctx := c.Request.Context()
	t, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Ticket not found"})
		return
	}

	c.JSON(http.StatusOK, t)
}

func checkinStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidZoneForGate), errors.Is(err, ErrSubscriptionRequired):
		return http.StatusBadRequest
	case errors.Is(err, zone.ErrZoneNotFound), errors.Is(err, subscription.ErrSubscriptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, zone.ErrZoneClosed),
		errors.Is(err, zone.ErrZoneFull),
		errors.Is(err, subscription.ErrSubscriptionInactive),
		errors.Is(err, subscription.ErrCategoryMismatch),
		errors.Is(err, subscription.ErrAlreadyCheckedIn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, ErrTicketNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyCheckedOut):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
