package api

import (
	"errors"
	"net/http"

	reqdto "mokka-api/internal/handler/dto/request"
	resdto "mokka-api/internal/handler/dto/response"
	"mokka-api/internal/usecase/commands"
	"mokka-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	eventUseCase commands.EventCommands
	eventQueries queries.EventQueries
}

func NewEventHandler(eventUseCase commands.EventCommands, eventQueries queries.EventQueries) *EventHandler {
	return &EventHandler{
		eventUseCase: eventUseCase,
		eventQueries: eventQueries,
	}
}

// @Summary List events
// @Description List events with their sessions and live seat availability
// @Tags events
// @Produce json
// @Param upcoming query bool false "Only events with future sessions"
// @Success 200 {array} readmodel.EventRM
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	upcomingOnly := c.Query("upcoming") == "true"

	events, err := h.eventQueries.List(c.Request.Context(), upcomingOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// @Summary Get one event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} readmodel.EventRM
// @Failure 404 {object} map[string]string
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	ev, err := h.eventQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, ev)
}

// @Summary Create an event
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateEventRequest true "New event"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req reqdto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.eventUseCase.Create(c.Request.Context(), commands.CreateEventRequest{
		Title:       req.Title,
		Description: req.Description,
		IsTicketed:  req.IsTicketed,
		Sessions:    req.SessionInputs(),
	})
	if err != nil {
		h.renderEventError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update an event
// @Description Update event details; replacing sessions is refused while active reservations exist
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body reqdto.UpdateEventRequest true "Updated event"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req reqdto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.eventUseCase.Update(c.Request.Context(), commands.UpdateEventRequest{
		EventID:     id,
		Title:       req.Title,
		Description: req.Description,
		IsTicketed:  req.IsTicketed,
		Sessions:    req.SessionInputs(),
	})
	if err != nil {
		h.renderEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Event updated"})
}

// @Summary Delete an event
// @Description Refused while active reservations exist
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	if err := h.eventUseCase.Delete(c.Request.Context(), id); err != nil {
		h.renderEventError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) renderEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, commands.ErrEventHasActiveRSVPs):
		c.JSON(http.StatusConflict, gin.H{"error": "Event has active reservations"})
	case errors.Is(err, commands.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{"error": "An event with this title already exists"})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event details"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
