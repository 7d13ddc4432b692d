package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	roomService "github.com/KirkDiggler/santad/internal/services/room"
)

// Handler serves the room API
type Handler struct {
	roomService roomService.Service
	logger      *slog.Logger
}

// Config holds configuration for the web handler
type Config struct {
	RoomService roomService.Service

	// Logger (optional, defaults to slog.Default)
	Logger *slog.Logger
}

// New creates a new web handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RoomService == nil {
		return nil, errors.New("room service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		roomService: cfg.RoomService,
		logger:      logger,
	}, nil
}

// RegisterRoutes attaches the API routes to a gin router. The limiter, if
// not nil, guards the mutating endpoints.
func (h *Handler) RegisterRoutes(router gin.IRouter, limiter gin.HandlerFunc) {
	api := router.Group("/api")

	api.GET("/rooms/:id", h.getRoom)
	api.GET("/rooms/:id/admin/:adminKey", h.getAdminRoom)

	mutating := api.Group("")
	if limiter != nil {
		mutating.Use(limiter)
	}
	mutating.POST("/rooms", h.createRoom)
	mutating.POST("/rooms/:id/join", h.joinRoom)
	mutating.POST("/rooms/:id/draw", h.drawNames)
}

func (h *Handler) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	output, err := h.roomService.CreateRoom(c.Request.Context(), &roomService.CreateRoomInput{
		Name:           req.Name,
		OrganizerName:  req.OrganizerName,
		OrganizerEmail: req.OrganizerEmail,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createRoomResponse{
		roomResponse: newRoomResponse(output.Room),
		AdminKey:     output.Room.AdminKey,
	})
}

func (h *Handler) getRoom(c *gin.Context) {
	output, err := h.roomService.GetRoom(c.Request.Context(), &roomService.GetRoomInput{
		RoomID: c.Param("id"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	participants := make([]participantResponse, 0, len(output.Participants))
	for _, p := range output.Participants {
		participants = append(participants, newParticipantResponse(p))
	}

	c.JSON(http.StatusOK, roomViewResponse{
		Room:         newRoomResponse(output.Room),
		Participants: participants,
	})
}

func (h *Handler) getAdminRoom(c *gin.Context) {
	output, err := h.roomService.GetAdminRoom(c.Request.Context(), &roomService.GetAdminRoomInput{
		RoomID:   c.Param("id"),
		AdminKey: c.Param("adminKey"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	participants := make([]adminParticipantResponse, 0, len(output.Participants))
	for _, entry := range output.Participants {
		participants = append(participants, newAdminParticipantResponse(entry))
	}

	c.JSON(http.StatusOK, adminRoomViewResponse{
		Room:         newRoomResponse(output.Room),
		Participants: participants,
	})
}

func (h *Handler) joinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	output, err := h.roomService.JoinRoom(c.Request.Context(), &roomService.JoinRoomInput{
		RoomID: c.Param("id"),
		Name:   req.Name,
		Email:  req.Email,
		Note:   req.Note,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newParticipantResponse(output.Participant))
}

func (h *Handler) drawNames(c *gin.Context) {
	var req drawNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	output, err := h.roomService.DrawNames(c.Request.Context(), &roomService.DrawNamesInput{
		RoomID:   c.Param("id"),
		AdminKey: req.AdminKey,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, drawNamesResponse{
		Success:          true,
		Message:          "Names drawn successfully and emails sent!",
		ParticipantCount: output.ParticipantCount,
	})
}

// writeError maps service errors onto HTTP statuses
func (h *Handler) writeError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, roomService.ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, roomService.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, roomService.ErrAlreadyDrawn),
		errors.Is(err, roomService.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, roomService.ErrInsufficientParticipants):
		status = http.StatusUnprocessableEntity
	default:
		h.logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
