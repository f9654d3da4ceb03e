package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "mokka-api/internal/handler/dto/request"
	resdto "mokka-api/internal/handler/dto/response"
	"mokka-api/internal/usecase/commands"
	"mokka-api/internal/usecase/queries"
	"mokka-api/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogUseCase commands.CatalogCommands
	catalogQueries queries.CatalogQueries
}

func NewCatalogHandler(catalogUseCase commands.CatalogCommands, catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
		catalogQueries: catalogQueries,
	}
}

// @Summary Menu
// @Tags catalog
// @Produce json
// @Success 200 {array} readmodel.MenuItemRM
// @Router /menu [get]
func (h *CatalogHandler) Menu(c *gin.Context) {
	items, err := h.catalogQueries.Menu(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Opening hours and holidays
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]any
// @Router /hours [get]
func (h *CatalogHandler) Hours(c *gin.Context) {
	week, err := h.catalogQueries.Hours(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	holidays, err := h.catalogQueries.Holidays(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"week":     week,
		"holidays": holidays,
	})
}

// @Summary Site settings
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]string
// @Router /settings [get]
func (h *CatalogHandler) Settings(c *gin.Context) {
	settings, err := h.catalogQueries.Settings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary Create a menu item
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.MenuItemRequest true "New menu item"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Router /admin/menu [post]
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	var req reqdto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.catalogUseCase.CreateMenuItem(c.Request.Context(), menuInput(req))
	if err != nil {
		h.renderCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update a menu item
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Param request body reqdto.MenuItemRequest true "Updated menu item"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Router /admin/menu/{id} [put]
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	var req reqdto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.catalogUseCase.UpdateMenuItem(c.Request.Context(), id, menuInput(req)); err != nil {
		h.renderCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Menu item updated"})
}

// @Summary Delete a menu item
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/menu/{id} [delete]
func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	if err := h.catalogUseCase.DeleteMenuItem(c.Request.Context(), id); err != nil {
		h.renderCatalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Replace the weekly schedule
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReplaceWeekRequest true "Seven-day schedule"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Router /admin/hours [put]
func (h *CatalogHandler) ReplaceWeek(c *gin.Context) {
	var req reqdto.ReplaceWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rows := make([]shared.BusinessHoursRow, 0, len(req.Days))
	for _, day := range req.Days {
		rows = append(rows, shared.BusinessHoursRow{
			Weekday:  day.Weekday,
			OpensAt:  day.OpensAt,
			ClosesAt: day.ClosesAt,
			IsClosed: day.IsClosed,
		})
	}

	if err := h.catalogUseCase.ReplaceWeek(c.Request.Context(), rows); err != nil {
		h.renderCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Schedule updated"})
}

// @Summary Add a holiday
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddHolidayRequest true "Holiday"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/holidays [post]
func (h *CatalogHandler) AddHoliday(c *gin.Context) {
	var req reqdto.AddHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	id, err := h.catalogUseCase.AddHoliday(c.Request.Context(), date, req.Name)
	if err != nil {
		h.renderCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Remove a holiday
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Holiday ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/holidays/{id} [delete]
func (h *CatalogHandler) RemoveHoliday(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid holiday ID"})
		return
	}

	if err := h.catalogUseCase.RemoveHoliday(c.Request.Context(), id); err != nil {
		h.renderCatalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Set a site setting
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SetSettingRequest true "Setting"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Router /admin/settings [put]
func (h *CatalogHandler) SetSetting(c *gin.Context) {
	var req reqdto.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.catalogUseCase.SetSetting(c.Request.Context(), req.Key, req.Value); err != nil {
		h.renderCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Setting saved"})
}

func menuInput(req reqdto.MenuItemRequest) commands.MenuItemInput {
	return commands.MenuItemInput{
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		IsAvailable: req.IsAvailable,
		SortOrder:   req.SortOrder,
	}
}

func (h *CatalogHandler) renderCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrMenuItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
	case errors.Is(err, commands.ErrHolidayNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Holiday not found"})
	case errors.Is(err, commands.ErrDuplicateHoliday):
		c.JSON(http.StatusConflict, gin.H{"error": "A holiday already exists on this date"})
	case errors.Is(err, commands.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Schedule must cover each weekday exactly once"})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid details"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
