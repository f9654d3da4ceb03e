//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/handler/api"
	resdto "mokka-api/internal/handler/dto/response"
	"mokka-api/internal/usecase/commands"
	"mokka-api/internal/usecase/readmodel"
	"mokka-api/internal/usecase/shared"
	"mokka-api/tests/common/builder"
	"mokka-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// The stubs below return canned values; each test sets only what it needs.

type stubBookingCommands struct {
	snap *shared.RSVPSnapshot
	err  error
}

func (s *stubBookingCommands) Book(_ context.Context, _ commands.BookRequest) (*shared.RSVPSnapshot, error) {
	return s.snap, s.err
}

type stubManageCommands struct {
	snap      *shared.RSVPSnapshot
	cancelled int
	err       error
}

func (s *stubManageCommands) Resolve(_ context.Context, _ string) (*shared.RSVPSnapshot, error) {
	return s.snap, s.err
}

func (s *stubManageCommands) SelfModify(_ context.Context, _ string, _ commands.ModifyRequest) (*shared.RSVPSnapshot, error) {
	return s.snap, s.err
}

func (s *stubManageCommands) SelfCancelAll(_ context.Context, _ string) (int, error) {
	return s.cancelled, s.err
}

func (s *stubManageCommands) CancelAllByEmail(_ context.Context, _ string) (int, error) {
	return s.cancelled, s.err
}

func (s *stubManageCommands) ModifyByEmail(_ context.Context, _ string, _ commands.ModifyRequest) (*shared.RSVPSnapshot, error) {
	return s.snap, s.err
}

func (s *stubManageCommands) AdminUpdate(_ context.Context, _ commands.AdminUpdateRequest) (*shared.RSVPSnapshot, error) {
	return s.snap, s.err
}

func (s *stubManageCommands) AdminDelete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

type stubVerificationCommands struct {
	snap      *shared.RSVPSnapshot
	cancelled int
	err       error
}

func (s *stubVerificationCommands) Request(_ context.Context, _ string, _ rsvp.Action) error {
	return s.err
}

func (s *stubVerificationCommands) CancelAllVerified(_ context.Context, _, _ string) (int, error) {
	return s.cancelled, s.err
}

func (s *stubVerificationCommands) ModifyVerified(_ context.Context, _, _ string, _ commands.ModifyRequest) (*shared.RSVPSnapshot, error) {
	return s.snap, s.err
}

type stubRSVPQueries struct {
	groups  []readmodel.SessionGroupRM
	summary *readmodel.RSVPSummaryRM
	byEmail []readmodel.RSVPRM
	err     error
}

func (s *stubRSVPQueries) ListGrouped(_ context.Context) ([]readmodel.SessionGroupRM, error) {
	return s.groups, s.err
}

func (s *stubRSVPQueries) Summary(_ context.Context) (*readmodel.RSVPSummaryRM, error) {
	return s.summary, s.err
}

func (s *stubRSVPQueries) ListByEmail(_ context.Context, _ string) ([]readmodel.RSVPRM, error) {
	return s.byEmail, s.err
}

type RSVPHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	booking      *stubBookingCommands
	manage       *stubManageCommands
	verification *stubVerificationCommands
	queries      *stubRSVPQueries
}

func (s *RSVPHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.booking = &stubBookingCommands{}
	s.manage = &stubManageCommands{}
	s.verification = &stubVerificationCommands{}
	s.queries = &stubRSVPQueries{}
	handler := api.NewRSVPHandler(s.booking, s.manage, s.verification, s.queries)

	s.router.POST("/rsvp", handler.Create)
	s.router.POST("/rsvp/resolve", handler.Resolve)
	s.router.POST("/rsvp/modify", handler.SelfModify)
	s.router.POST("/rsvp/cancel", handler.SelfCancelAll)
	s.router.POST("/rsvp/verify/request", handler.RequestVerification)
	s.router.PUT("/admin/rsvps/:id", handler.AdminUpdate)
	s.router.DELETE("/admin/rsvps/:id", handler.AdminDelete)
}

func TestRSVPHandlerSuite(t *testing.T) {
	suite.Run(t, new(RSVPHandlerTestSuite))
}

func (s *RSVPHandlerTestSuite) TestCreate() {
	reqBody := builder.NewRSVPBuilder().BuildCreateRequestDTO()

	s.Run("books and returns the reservation", func() {
		snap := builder.NewRSVPBuilder().BuildSnapshot()
		s.booking.snap = snap
		s.booking.err = nil

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp", reqBody, "")

		var body resdto.RSVPResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &body)
		s.Equal(snap.ID, body.ID)
		s.Equal(snap.Code, body.ReservationCode)
	})

	s.Run("malformed body", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp",
			map[string]any{"name": "Taro"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	errorCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown session", commands.ErrSessionNotFound, http.StatusNotFound},
		{"validation failure", commands.ErrDomainValidation, http.StatusBadRequest},
		{"seats exceed capacity", commands.ErrSeatsExceedCapacity, http.StatusBadRequest},
		{"session full", commands.ErrSessionFull, http.StatusConflict},
		{"duplicate reservation", commands.ErrDuplicateRSVP, http.StatusConflict},
		{"double booking", commands.ErrDoubleBooking, http.StatusConflict},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.booking.snap = nil
			s.booking.err = tc.err

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp", reqBody, "")
			httptest.AssertErrorResponse(s.T(), w, tc.wantStatus, "")
		})
	}
}

func (s *RSVPHandlerTestSuite) TestResolve() {
	s.Run("returns the booking and its siblings", func() {
		snap := builder.NewRSVPBuilder().BuildSnapshot()
		s.manage.snap = snap
		s.queries.byEmail = []readmodel.RSVPRM{
			{ID: snap.ID, Email: snap.Email, Seats: snap.Seats, Status: snap.Status.String()},
		}

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp/resolve",
			map[string]any{"code": "ABCD1234"}, "")

		var body resdto.ResolveResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal(snap.ID, body.RSVP.ID)
		s.Len(body.AllRSVPs, 1)
	})

	s.Run("unknown code", func() {
		s.manage.snap = nil
		s.manage.err = commands.ErrCodeNotFound

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp/resolve",
			map[string]any{"code": "NOPE0000"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation code not found")
	})

	s.Run("code length is validated at the edge", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp/resolve",
			map[string]any{"code": "SHORT"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *RSVPHandlerTestSuite) TestSelfModify() {
	reqBody := map[string]any{
		"code":    "ABCD1234",
		"rsvp_id": uuid.New(),
		"seats":   3,
	}

	s.Run("applies the modification", func() {
		snap := builder.NewRSVPBuilder().WithSeats(3).BuildSnapshot()
		s.manage.snap = snap

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp/modify", reqBody, "")

		var body resdto.RSVPResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal(int32(3), body.Seats)
	})

	s.Run("foreign booking", func() {
		s.manage.snap = nil
		s.manage.err = commands.ErrForbidden

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp/modify", reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
	})

	s.Run("cancelled booking", func() {
		s.manage.snap = nil
		s.manage.err = commands.ErrRSVPNotActive

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp/modify", reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "cancelled")
	})
}

func (s *RSVPHandlerTestSuite) TestSelfCancelAll() {
	s.Run("reports how many were cancelled", func() {
		s.manage.cancelled = 2

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp/cancel",
			map[string]any{"code": "ABCD1234"}, "")

		var body resdto.CancelAllResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal(2, body.Cancelled)
	})
}

func (s *RSVPHandlerTestSuite) TestRequestVerification() {
	s.Run("accepts a cancel request", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp/verify/request",
			map[string]any{"email": "taro@example.com", "action": "cancel"}, "")

		var body resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
	})

	s.Run("unknown email", func() {
		s.verification.err = commands.ErrNoReservations

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp/verify/request",
			map[string]any{"email": "stranger@example.com", "action": "cancel"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "")
	})

	s.Run("action is validated at the edge", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rsvp/verify/request",
			map[string]any{"email": "taro@example.com", "action": "delete"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *RSVPHandlerTestSuite) TestAdminUpdate() {
	reqBody := map[string]any{
		"session_id": uuid.New(),
		"name":       "Taro Tanaka",
		"email":      "taro@example.com",
		"seats":      2,
		"status":     "CONFIRMED",
	}

	s.Run("updates the reservation", func() {
		snap := builder.NewRSVPBuilder().AsConfirmed().BuildSnapshot()
		s.manage.snap = snap

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/rsvps/"+uuid.NewString(), reqBody, "")

		var body resdto.RSVPResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal(rsvp.StatusConfirmed.String(), body.Status)
	})

	s.Run("invalid id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/rsvps/not-a-uuid", reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid rsvp ID")
	})

	s.Run("occupied holder slot conflicts", func() {
		s.manage.err = commands.ErrDuplicateRSVP

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/rsvps/"+uuid.NewString(), reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "active reservation already exists")
	})

	s.Run("unknown status is rejected by binding", func() {
		bad := map[string]any{
			"session_id": uuid.New(),
			"name":       "Taro Tanaka",
			"email":      "taro@example.com",
			"seats":      2,
			"status":     "WAITLISTED",
		}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/rsvps/"+uuid.NewString(), bad, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *RSVPHandlerTestSuite) TestAdminDelete() {
	s.Run("deletes", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/rsvps/"+uuid.NewString(), nil, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("unknown rsvp", func() {
		s.manage.err = commands.ErrRSVPNotFound

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/rsvps/"+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "")
	})
}
