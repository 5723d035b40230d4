package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonbot/models"
	"salonbot/services/booking"
	"salonbot/utils"
)

const maxReservationLimit = 200

// ReservationHandler exposes stored reservations to admins.
type ReservationHandler struct {
	Reservations booking.ReservationService
}

// List returns reservations, newest first, optionally filtered by ?phone=.
func (h *ReservationHandler) List(c *gin.Context) {
	filter := models.ReservationFilter{ClientPhone: c.Query("phone")}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 || limit > maxReservationLimit {
			utils.JSONError(c, http.StatusBadRequest, "invalid limit", "limit must be between 1 and "+strconv.Itoa(maxReservationLimit))
			return
		}
		filter.Limit = limit
	}

	reservations, err := h.Reservations.ListReservations(c.Request.Context(), filter)
	if errors.Is(err, booking.ErrPersistenceDisabled) {
		utils.JSONError(c, http.StatusServiceUnavailable, "persistence disabled", err.Error())
		return
	}
	if err != nil {
		getLogger(c).Error("failed to list reservations", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list reservations", "Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"count":        len(reservations),
	})
}
