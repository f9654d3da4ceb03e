//go:build unit || e2e

package builder

import (
	"time"

	domevent "mokka-api/internal/domain/event"
	reqdto "mokka-api/internal/handler/dto/request"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type EventBuilder struct {
	Title       string
	Description string
	IsTicketed  bool
	Sessions    []domevent.SessionInput
}

func NewEventBuilder() *EventBuilder {
	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	return &EventBuilder{
		Title:       "Single Origin Tasting",
		Description: "A guided tasting of three single-origin roasts.",
		IsTicketed:  true,
		Sessions: []domevent.SessionInput{
			{Start: start, End: start.Add(2 * time.Hour), Capacity: 12},
		},
	}
}

func (b *EventBuilder) BuildDomain() (*domevent.Event, error) {
	return domevent.NewEvent(b.Title, b.Description, b.IsTicketed, b.Sessions)
}

func (b *EventBuilder) BuildSessionSnapshot() *shared.SessionSnapshot {
	s := b.Sessions[0]
	return &shared.SessionSnapshot{
		ID:         uuid.New(),
		EventID:    uuid.New(),
		EventTitle: b.Title,
		Start:      s.Start,
		End:        s.End,
		Capacity:   s.Capacity,
		Reserved:   0,
	}
}

func (b *EventBuilder) BuildCreateRequestDTO() reqdto.CreateEventRequest {
	sessions := make([]reqdto.SessionInput, 0, len(b.Sessions))
	for _, s := range b.Sessions {
		sessions = append(sessions, reqdto.SessionInput{
			StartsAt: s.Start,
			EndsAt:   s.End,
			Capacity: s.Capacity,
		})
	}
	return reqdto.CreateEventRequest{
		Title:       b.Title,
		Description: b.Description,
		IsTicketed:  b.IsTicketed,
		Sessions:    sessions,
	}
}

// Fluent builder methods
func (b *EventBuilder) WithTitle(title string) *EventBuilder {
	b.Title = title
	return b
}

func (b *EventBuilder) WithDescription(description string) *EventBuilder {
	b.Description = description
	return b
}

func (b *EventBuilder) WithSessions(sessions ...domevent.SessionInput) *EventBuilder {
	b.Sessions = sessions
	return b
}

func (b *EventBuilder) WithCapacity(capacity int32) *EventBuilder {
	for i := range b.Sessions {
		b.Sessions[i].Capacity = capacity
	}
	return b
}
