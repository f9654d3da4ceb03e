package api

import (
	"errors"
	"net/http"

	reqdto "mokka-api/internal/handler/dto/request"
	resdto "mokka-api/internal/handler/dto/response"
	"mokka-api/internal/usecase/commands"
	"mokka-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	leadUseCase commands.LeadCommands
	leadQueries queries.LeadQueries
}

func NewLeadHandler(leadUseCase commands.LeadCommands, leadQueries queries.LeadQueries) *LeadHandler {
	return &LeadHandler{
		leadUseCase: leadUseCase,
		leadQueries: leadQueries,
	}
}

// @Summary Submit a lead
// @Description Contact-form and party-interest submissions
// @Tags leads
// @Accept json
// @Produce json
// @Param request body reqdto.CreateLeadRequest true "Lead"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var req reqdto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.leadUseCase.Submit(c.Request.Context(), commands.LeadInput{
		Kind:    req.Kind,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, commands.ErrInvalidLead) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead submission"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List leads
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Filter by kind (contact or party)"
// @Success 200 {array} readmodel.LeadRM
// @Router /admin/leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.leadQueries.List(c.Request.Context(), c.Query("kind"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, leads)
}

// @Summary Export leads as CSV
// @Tags admin
// @Produce text/csv
// @Security BearerAuth
// @Param kind query string false "Filter by kind (contact or party)"
// @Success 200 {string} string
// @Router /admin/leads/export [get]
func (h *LeadHandler) Export(c *gin.Context) {
	data, err := h.leadQueries.ExportCSV(c.Request.Context(), c.Query("kind"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leads.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
