//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	domevent "mokka-api/internal/domain/event"
	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/usecase/commands"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventFixture() (*fakeStore, commands.EventCommands) {
	store := newFakeStore()
	return store, commands.NewEventUseCase(newFakeUoW(store))
}

func validCreateEventRequest() commands.CreateEventRequest {
	start := time.Now().Add(48 * time.Hour)
	return commands.CreateEventRequest{
		Title:       "Latte Art 101",
		Description: "Hands-on workshop with our head barista.",
		IsTicketed:  true,
		Sessions: []domevent.SessionInput{
			{Start: start, End: start.Add(2 * time.Hour), Capacity: 8},
		},
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the event and its sessions", func(t *testing.T) {
		store, uc := newEventFixture()

		id, err := uc.Create(ctx, validCreateEventRequest())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.True(t, store.events[id])
		assert.Len(t, store.sessions, 1)
	})

	t.Run("rejects a second event with the same slug", func(t *testing.T) {
		store, uc := newEventFixture()

		_, err := uc.Create(ctx, validCreateEventRequest())
		require.NoError(t, err)

		_, err = uc.Create(ctx, validCreateEventRequest())
		require.ErrorIs(t, err, commands.ErrDuplicateSlug)
		assert.Len(t, store.events, 1)
	})

	t.Run("validation failures create nothing", func(t *testing.T) {
		store, uc := newEventFixture()

		req := validCreateEventRequest()
		req.Sessions = nil
		_, err := uc.Create(ctx, req)
		require.ErrorIs(t, err, commands.ErrDomainValidation)
		assert.Empty(t, store.events)
	})
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, store *fakeStore, uc commands.EventCommands) uuid.UUID {
		t.Helper()
		id, err := uc.Create(ctx, validCreateEventRequest())
		require.NoError(t, err)
		return id
	}

	validUpdate := func(id uuid.UUID) commands.UpdateEventRequest {
		return commands.UpdateEventRequest{
			EventID:     id,
			Title:       "Latte Art 102",
			Description: "The follow-up workshop.",
			IsTicketed:  true,
		}
	}

	t.Run("updates metadata without touching the schedule", func(t *testing.T) {
		store, uc := newEventFixture()
		id := seed(t, store, uc)

		err := uc.Update(ctx, validUpdate(id))
		require.NoError(t, err)
		assert.Len(t, store.sessions, 1)
	})

	t.Run("replaces the schedule when no active rsvps exist", func(t *testing.T) {
		store, uc := newEventFixture()
		id := seed(t, store, uc)

		start := time.Now().Add(96 * time.Hour)
		req := validUpdate(id)
		req.Sessions = []domevent.SessionInput{
			{Start: start, End: start.Add(time.Hour), Capacity: 5},
			{Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour), Capacity: 5},
		}
		err := uc.Update(ctx, req)
		require.NoError(t, err)
		assert.Len(t, store.sessions, 2)
	})

	t.Run("refuses a schedule rewrite while bookings are live", func(t *testing.T) {
		store, uc := newEventFixture()
		id := seed(t, store, uc)

		var sessionID uuid.UUID
		for sid := range store.sessions {
			sessionID = sid
		}
		store.addRSVP(shared.RSVPSnapshot{
			SessionID: sessionID,
			Email:     "taro@example.com",
			Seats:     2,
			Status:    rsvp.StatusConfirmed,
			Code:      "TARO0001",
		})

		start := time.Now().Add(96 * time.Hour)
		req := validUpdate(id)
		req.Sessions = []domevent.SessionInput{
			{Start: start, End: start.Add(time.Hour), Capacity: 5},
		}
		err := uc.Update(ctx, req)
		require.ErrorIs(t, err, commands.ErrEventHasActiveRSVPs)
	})

	t.Run("cancelled bookings do not block a rewrite", func(t *testing.T) {
		store, uc := newEventFixture()
		id := seed(t, store, uc)

		var sessionID uuid.UUID
		for sid := range store.sessions {
			sessionID = sid
		}
		store.addRSVP(shared.RSVPSnapshot{
			SessionID: sessionID,
			Email:     "taro@example.com",
			Seats:     2,
			Status:    rsvp.StatusCancelled,
			Code:      "TARO0001",
		})

		start := time.Now().Add(96 * time.Hour)
		req := validUpdate(id)
		req.Sessions = []domevent.SessionInput{
			{Start: start, End: start.Add(time.Hour), Capacity: 5},
		}
		err := uc.Update(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, store.rsvps)
	})

	t.Run("rejects a title colliding with another event", func(t *testing.T) {
		store, uc := newEventFixture()
		seed(t, store, uc)

		other := validCreateEventRequest()
		other.Title = "Latte Art 102"
		otherID, err := uc.Create(ctx, other)
		require.NoError(t, err)

		req := validUpdate(otherID)
		req.Title = "Latte Art 101"
		err = uc.Update(ctx, req)
		require.ErrorIs(t, err, commands.ErrDuplicateSlug)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, uc := newEventFixture()

		err := uc.Update(ctx, validUpdate(uuid.New()))
		require.ErrorIs(t, err, commands.ErrEventNotFound)
	})

	t.Run("empty title", func(t *testing.T) {
		store, uc := newEventFixture()
		id := seed(t, store, uc)

		req := validUpdate(id)
		req.Title = "  "
		err := uc.Update(ctx, req)
		require.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an event without live bookings", func(t *testing.T) {
		store, uc := newEventFixture()
		id, err := uc.Create(ctx, validCreateEventRequest())
		require.NoError(t, err)

		err = uc.Delete(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, store.events)
		assert.Empty(t, store.sessions)
	})

	t.Run("cancelled bookings do not block deletion", func(t *testing.T) {
		store, uc := newEventFixture()
		id, err := uc.Create(ctx, validCreateEventRequest())
		require.NoError(t, err)

		var sessionID uuid.UUID
		for sid := range store.sessions {
			sessionID = sid
		}
		store.addRSVP(shared.RSVPSnapshot{
			SessionID: sessionID,
			Email:     "taro@example.com",
			Seats:     2,
			Status:    rsvp.StatusCancelled,
			Code:      "TARO0001",
		})

		err = uc.Delete(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, store.events)
		assert.Empty(t, store.sessions)
		assert.Empty(t, store.rsvps)
	})

	t.Run("refuses while bookings are live", func(t *testing.T) {
		store, uc := newEventFixture()
		id, err := uc.Create(ctx, validCreateEventRequest())
		require.NoError(t, err)

		var sessionID uuid.UUID
		for sid := range store.sessions {
			sessionID = sid
		}
		store.addRSVP(shared.RSVPSnapshot{
			SessionID: sessionID,
			Email:     "taro@example.com",
			Seats:     1,
			Status:    rsvp.StatusPending,
			Code:      "TARO0001",
		})

		err = uc.Delete(ctx, id)
		require.ErrorIs(t, err, commands.ErrEventHasActiveRSVPs)
		assert.True(t, store.events[id])
	})
}
