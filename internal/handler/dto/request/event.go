package request

import (
	"time"

	"mokka-api/internal/domain/event"
)

type SessionInput struct {
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
	Capacity int32     `json:"capacity" binding:"required,min=1"`
}

type CreateEventRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description" binding:"required"`
	IsTicketed  bool           `json:"is_ticketed"`
	Sessions    []SessionInput `json:"sessions" binding:"required,min=1,dive"`
}

type UpdateEventRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description" binding:"required"`
	IsTicketed  bool           `json:"is_ticketed"`
	// Sessions omitted keeps the current schedule.
	Sessions []SessionInput `json:"sessions,omitempty" binding:"omitempty,min=1,dive"`
}

func toSessionInputs(in []SessionInput) []event.SessionInput {
	if in == nil {
		return nil
	}
	out := make([]event.SessionInput, 0, len(in))
	for _, s := range in {
		out = append(out, event.SessionInput{
			Start:    s.StartsAt,
			End:      s.EndsAt,
			Capacity: s.Capacity,
		})
	}
	return out
}

func (r CreateEventRequest) SessionInputs() []event.SessionInput {
	return toSessionInputs(r.Sessions)
}

func (r UpdateEventRequest) SessionInputs() []event.SessionInput {
	return toSessionInputs(r.Sessions)
}
