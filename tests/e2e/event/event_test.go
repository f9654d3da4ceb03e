//go:build e2e

package event_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"mokka-api/internal/pkg/jwt"
	"mokka-api/tests/common/dbtest"
	"mokka-api/tests/common/httptest"
	"mokka-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type eventSuite struct {
	e2e.SharedSuite
}

func TestEventSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(eventSuite))
}

func (s *eventSuite) adminToken() string {
	jwtService := jwt.NewService(s.Config.JWT.Secret, s.Config.JWT.Duration)
	token, err := jwtService.GenerateToken("admin", jwt.RoleAdmin)
	s.Require().NoError(err)
	return token
}

func (s *eventSuite) eventExists(id uuid.UUID) bool {
	var exists bool
	err := s.DB.QueryRow(context.Background(),
		"SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)", id).Scan(&exists)
	s.Require().NoError(err)
	return exists
}

func (s *eventSuite) TestAdminDelete() {
	s.Run("cancelled bookings do not block deletion", func() {
		eventID, sessionID := dbtest.CreateTestEvent(s.T(), s.DB, "Tasting Night", 10, time.Now().Add(48*time.Hour))
		dbtest.CreateTestRSVP(s.T(), s.DB, sessionID, "taro@example.com", "TARO0001", 2)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rsvp/cancel",
			map[string]any{"code": "TARO0001"}, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete,
			"/api/admin/events/"+eventID.String(), nil, s.adminToken())
		s.Equal(http.StatusNoContent, w.Code, w.Body.String())
		s.False(s.eventExists(eventID))
	})

	s.Run("refused while a booking is live", func() {
		eventID, sessionID := dbtest.CreateTestEvent(s.T(), s.DB, "Tasting Night", 10, time.Now().Add(48*time.Hour))
		dbtest.CreateTestRSVP(s.T(), s.DB, sessionID, "taro@example.com", "TARO0001", 2)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete,
			"/api/admin/events/"+eventID.String(), nil, s.adminToken())
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "active reservations")
		s.True(s.eventExists(eventID))
	})
}

func (s *eventSuite) TestAdminUpdate() {
	s.Run("cancelled bookings do not block a schedule rewrite", func() {
		eventID, sessionID := dbtest.CreateTestEvent(s.T(), s.DB, "Tasting Night", 10, time.Now().Add(48*time.Hour))
		dbtest.CreateTestRSVP(s.T(), s.DB, sessionID, "taro@example.com", "TARO0001", 2)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rsvp/cancel",
			map[string]any{"code": "TARO0001"}, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		start := time.Now().Add(96 * time.Hour).Truncate(time.Hour)
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPut,
			"/api/admin/events/"+eventID.String(),
			map[string]any{
				"title":       "Tasting Night",
				"description": "A rescheduled evening.",
				"is_ticketed": true,
				"sessions": []map[string]any{
					{"starts_at": start, "ends_at": start.Add(2 * time.Hour), "capacity": 8},
				},
			}, s.adminToken())
		s.Equal(http.StatusOK, w.Code, w.Body.String())

		var count int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM event_sessions WHERE event_id = $1", eventID).Scan(&count)
		s.Require().NoError(err)
		s.Equal(1, count)
	})

	s.Run("duplicate title conflicts", func() {
		dbtest.CreateTestEvent(s.T(), s.DB, "Tasting Night", 10, time.Now().Add(48*time.Hour))
		otherID, _ := dbtest.CreateTestEvent(s.T(), s.DB, "Latte Art", 10, time.Now().Add(72*time.Hour))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut,
			"/api/admin/events/"+otherID.String(),
			map[string]any{
				"title":       "Tasting Night",
				"description": "Retitled.",
				"is_ticketed": true,
			}, s.adminToken())
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already exists")
	})
}
