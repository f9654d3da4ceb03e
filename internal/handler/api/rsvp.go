package api

import (
	"errors"
	"net/http"

	"mokka-api/internal/domain/rsvp"
	reqdto "mokka-api/internal/handler/dto/request"
	resdto "mokka-api/internal/handler/dto/response"
	"mokka-api/internal/usecase/commands"
	"mokka-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RSVPHandler struct {
	bookingUseCase      commands.BookingCommands
	manageUseCase       commands.ManageCommands
	verificationUseCase commands.VerificationCommands
	rsvpQueries         queries.RSVPQueries
}

func NewRSVPHandler(
	bookingUseCase commands.BookingCommands,
	manageUseCase commands.ManageCommands,
	verificationUseCase commands.VerificationCommands,
	rsvpQueries queries.RSVPQueries,
) *RSVPHandler {
	return &RSVPHandler{
		bookingUseCase:      bookingUseCase,
		manageUseCase:       manageUseCase,
		verificationUseCase: verificationUseCase,
		rsvpQueries:         rsvpQueries,
	}
}

// @Summary Book seats
// @Description Reserve seats on an event session
// @Tags rsvps
// @Accept json
// @Produce json
// @Param request body reqdto.CreateRSVPRequest true "Booking request"
// @Success 201 {object} resdto.RSVPResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rsvp [post]
func (h *RSVPHandler) Create(c *gin.Context) {
	var req reqdto.CreateRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.bookingUseCase.Book(c.Request.Context(), commands.BookRequest{
		SessionID: req.SessionID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Seats:     req.Seats,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking details"})
		case errors.Is(err, commands.ErrSeatsExceedCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Requested seats exceed session capacity"})
		case errors.Is(err, commands.ErrSessionFull):
			c.JSON(http.StatusConflict, gin.H{"error": "Not enough seats remaining"})
		case errors.Is(err, commands.ErrDuplicateRSVP):
			c.JSON(http.StatusConflict, gin.H{"error": "An active reservation already exists for this session"})
		case errors.Is(err, commands.ErrDoubleBooking):
			c.JSON(http.StatusConflict, gin.H{"error": "An active reservation already exists for another session of this event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.NewRSVPResponse(snap))
}

// @Summary Resolve reservation code
// @Description Look up the bookings controlled by a reservation code
// @Tags rsvps
// @Accept json
// @Produce json
// @Param request body reqdto.ResolveCodeRequest true "Reservation code"
// @Success 200 {object} resdto.ResolveResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rsvp/resolve [post]
func (h *RSVPHandler) Resolve(c *gin.Context) {
	var req reqdto.ResolveCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.manageUseCase.Resolve(c.Request.Context(), req.Code)
	if err != nil {
		h.renderManageError(c, err)
		return
	}

	all, err := h.rsvpQueries.ListByEmail(c.Request.Context(), snap.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.ResolveResponse{
		RSVP:     resdto.NewRSVPResponse(snap),
		AllRSVPs: all,
	})
}

// @Summary Modify a booking by reservation code
// @Tags rsvps
// @Accept json
// @Produce json
// @Param request body reqdto.SelfModifyRequest true "Modification request"
// @Success 200 {object} resdto.RSVPResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rsvp/modify [post]
func (h *RSVPHandler) SelfModify(c *gin.Context) {
	var req reqdto.SelfModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.manageUseCase.SelfModify(c.Request.Context(), req.Code, commands.ModifyRequest{
		RSVPID:       req.RSVPID,
		Seats:        req.Seats,
		NewSessionID: req.NewSessionID,
	})
	if err != nil {
		h.renderManageError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewRSVPResponse(snap))
}

// @Summary Cancel all bookings by reservation code
// @Tags rsvps
// @Accept json
// @Produce json
// @Param request body reqdto.ResolveCodeRequest true "Reservation code"
// @Success 200 {object} resdto.CancelAllResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rsvp/cancel [post]
func (h *RSVPHandler) SelfCancelAll(c *gin.Context) {
	var req reqdto.ResolveCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	cancelled, err := h.manageUseCase.SelfCancelAll(c.Request.Context(), req.Code)
	if err != nil {
		h.renderManageError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CancelAllResponse{Cancelled: cancelled})
}

// @Summary Request email verification code
// @Description Email a short-lived code bound to a cancel or modify action
// @Tags rsvps
// @Accept json
// @Produce json
// @Param request body reqdto.RequestVerificationRequest true "Verification request"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /rsvp/verify/request [post]
func (h *RSVPHandler) RequestVerification(c *gin.Context) {
	var req reqdto.RequestVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.verificationUseCase.Request(c.Request.Context(), req.Email, rsvp.Action(req.Action))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoReservations):
			c.JSON(http.StatusNotFound, gin.H{"error": "No reservations exist for this email"})
		case errors.Is(err, commands.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown verification action"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Verification code sent"})
}

// @Summary Cancel all bookings with an emailed code
// @Tags rsvps
// @Accept json
// @Produce json
// @Param request body reqdto.VerifiedCancelRequest true "Verified cancel request"
// @Success 200 {object} resdto.CancelAllResponse
// @Failure 400 {object} map[string]string
// @Router /rsvp/verify/cancel [post]
func (h *RSVPHandler) VerifiedCancel(c *gin.Context) {
	var req reqdto.VerifiedCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	cancelled, err := h.verificationUseCase.CancelAllVerified(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		h.renderManageError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CancelAllResponse{Cancelled: cancelled})
}

// @Summary Modify a booking with an emailed code
// @Tags rsvps
// @Accept json
// @Produce json
// @Param request body reqdto.VerifiedModifyRequest true "Verified modify request"
// @Success 200 {object} resdto.RSVPResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rsvp/verify/modify [post]
func (h *RSVPHandler) VerifiedModify(c *gin.Context) {
	var req reqdto.VerifiedModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.verificationUseCase.ModifyVerified(c.Request.Context(), req.Email, req.Code, commands.ModifyRequest{
		RSVPID:       req.RSVPID,
		Seats:        req.Seats,
		NewSessionID: req.NewSessionID,
	})
	if err != nil {
		h.renderManageError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewRSVPResponse(snap))
}

// @Summary List reservations grouped by session
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} readmodel.SessionGroupRM
// @Router /admin/rsvps [get]
func (h *RSVPHandler) AdminList(c *gin.Context) {
	groups, err := h.rsvpQueries.ListGrouped(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, groups)
}

// @Summary Reservation totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} readmodel.RSVPSummaryRM
// @Router /admin/rsvps/summary [get]
func (h *RSVPHandler) AdminSummary(c *gin.Context) {
	summary, err := h.rsvpQueries.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Update a reservation
// @Description Rewrite a reservation, rebalancing seat counts across sessions
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "RSVP ID"
// @Param request body reqdto.AdminUpdateRSVPRequest true "Updated reservation"
// @Success 200 {object} resdto.RSVPResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/rsvps/{id} [put]
func (h *RSVPHandler) AdminUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rsvp ID"})
		return
	}

	var req reqdto.AdminUpdateRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.manageUseCase.AdminUpdate(c.Request.Context(), commands.AdminUpdateRequest{
		RSVPID:    id,
		SessionID: req.SessionID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Seats:     req.Seats,
		Status:    rsvp.Status(req.Status),
	})
	if err != nil {
		h.renderManageError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewRSVPResponse(snap))
}

// @Summary Delete a reservation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "RSVP ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/rsvps/{id} [delete]
func (h *RSVPHandler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rsvp ID"})
		return
	}

	if err := h.manageUseCase.AdminDelete(c.Request.Context(), id); err != nil {
		h.renderManageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RSVPHandler) renderManageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation code not found"})
	case errors.Is(err, commands.ErrRSVPNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, commands.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Code does not grant access to this reservation"})
	case errors.Is(err, commands.ErrVerificationInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code is wrong, expired, or already used"})
	case errors.Is(err, commands.ErrRSVPNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": "Reservation is cancelled"})
	case errors.Is(err, commands.ErrInvalidStatus), errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation details"})
	case errors.Is(err, commands.ErrSessionFull):
		c.JSON(http.StatusConflict, gin.H{"error": "Not enough seats remaining"})
	case errors.Is(err, commands.ErrDuplicateRSVP):
		c.JSON(http.StatusConflict, gin.H{"error": "An active reservation already exists for this session"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
