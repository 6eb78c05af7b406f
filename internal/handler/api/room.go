package api

import (
	"errors"
	"net/http"

	reqdto "roomtrack/internal/handler/dto/request"
	resdto "roomtrack/internal/handler/dto/response"
	"roomtrack/internal/infra"
	"roomtrack/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	commands commands.RoomCommands
	rooms    commands.RoomRepository
}

func NewRoomHandler(cmds commands.RoomCommands, rooms commands.RoomRepository) *RoomHandler {
	return &RoomHandler{
		commands: cmds,
		rooms:    rooms,
	}
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.commands.Create(c.Request.Context(), req.Name, req.Capacity)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	var req reqdto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if _, err := h.commands.Update(c.Request.Context(), id, commands.RoomUpdate{
		Name:          req.Name,
		Capacity:      req.Capacity,
		Retire:        req.Retire,
		BumpQRVersion: req.BumpQRVersion,
	}); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	rm, err := h.rooms.FindByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoom(rm))
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.RoomResponse, len(rooms))
	for i, rm := range rooms {
		response[i] = resdto.FromRoom(rm)
	}

	c.JSON(http.StatusOK, response)
}

func (h *RoomHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errors.Is(err, commands.ErrInvalidRoom):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room data",
		})
	case errors.Is(err, commands.ErrDuplicateRoomName):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Room name already taken",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
