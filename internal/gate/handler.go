package gate

import (
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

// @Summary      List gates
// @Description  All gates with the zone ids they serve
// @Tags         master
// @Produce      json
// @Success      200 {array} gate.Gate
// @Failure      500 {object} api.ErrorResponse
// @Router       /master/gates [get]
func (h *Handler) ListGates(c *gin.Context) {
	ctx := c.Request.Context()
	gates, err := h.service.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch gates"})
		return
	}

	c.JSON(http.StatusOK, gates)
}
