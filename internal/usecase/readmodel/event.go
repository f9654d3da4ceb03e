package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type SessionRM struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Capacity  int32     `json:"capacity"`
	Reserved  int32     `json:"reserved"`
	Available int32     `json:"available"`
}

type EventRM struct {
	ID          uuid.UUID   `json:"id"`
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	IsTicketed  bool        `json:"is_ticketed"`
	Sessions    []SessionRM `json:"sessions"`
	CreatedAt   time.Time   `json:"created_at"`
}
