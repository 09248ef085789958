package zone

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

// @Summary      List zones
// @Description  Zones with live occupancy, optionally filtered by gate
// @Tags         master
// @Produce      json
// @Param        gateId query string false "Gate id"
// @Success      200 {array} zone.Zone
// @Failure      500 {object} api.ErrorResponse
// @Router       /master/zones [get]
func (h *Handler) ListZones(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		zones []Zone
		err   error
	)
	if gateID := c.Query("gateId"); gateID != "" {
		zones, err = h.service.ListByGate(ctx, gateID)
	} else {
		zones, err = h.service.List(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch zones"})
		return
	}

	c.JSON(http.StatusOK, zones)
}

// @Summary      Open or close a zone
// @Description  Admin-only: toggle whether a zone accepts new check-ins
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Zone id"
// @Param        request body zone.SetOpenRequest true "Open flag"
// @Success      200 {object} zone.Zone
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/zones/{id}/open [put]
func (h *Handler) SetOpen(c *gin.Context) {
	var req SetOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	adminID, _ := auth.GetUserID(c)
	ctx := c.Request.Context()
	z, err := h.service.SetOpen(ctx, adminID, c.Param("id"), *req.Open)
	if err != nil {
		if errors.Is(err, ErrZoneNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Zone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update zone"})
		return
	}

	c.JSON(http.StatusOK, z)
}

// @Summary      Parking state report
// @Description  Admin-only: all zones with occupancy and subscriber counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} zone.ReportZone
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/reports/parking-state [get]
func (h *Handler) ParkingState(c *gin.Context) {
	ctx := c.Request.Context()
	report, err := h.service.ParkingState(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
