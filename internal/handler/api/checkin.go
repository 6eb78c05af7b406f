package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "roomtrack/internal/handler/dto/request"
	resdto "roomtrack/internal/handler/dto/response"
	"roomtrack/internal/handler/middleware"
	"roomtrack/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	commands commands.CheckInCommands
}

func NewCheckInHandler(cmds commands.CheckInCommands) *CheckInHandler {
	return &CheckInHandler{
		commands: cmds,
	}
}

func (h *CheckInHandler) CheckIn(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	// The event time comes from the scanning device, not the server.
	now, err := time.Parse(time.RFC3339, req.Now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid timestamp format",
		})
		return
	}

	result, err := h.commands.CheckIn(c.Request.Context(), req.RoomID, userID, req.QRVersion, now)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, commands.ErrRoomUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Room is not available",
			})
		case errors.Is(err, commands.ErrStaleQRCode):
			c.JSON(http.StatusGone, gin.H{
				"error": "QR code is no longer valid",
			})
		case errors.Is(err, commands.ErrActiveSessionExists):
			c.JSON(http.StatusConflict, gin.H{
				"error": "An active session already exists",
			})
		case errors.Is(err, commands.ErrNoEligibleReservation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "No reservation within the check-in window",
			})
		case errors.Is(err, commands.ErrConcurrentStateChange):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation state changed, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckInResult(result))
}

func (h *CheckInHandler) CheckOut(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	now, err := time.Parse(time.RFC3339, req.Now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid timestamp format",
		})
		return
	}

	result, err := h.commands.CheckOut(c.Request.Context(), req.RoomID, userID, now)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoActiveSession):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "No active session to check out of",
			})
		case errors.Is(err, commands.ErrConcurrentStateChange):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation state changed, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckOutResult(result))
}
