package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type MenuItemRM struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	PriceCents  int32     `json:"price_cents"`
	IsAvailable bool      `json:"is_available"`
	SortOrder   int32     `json:"sort_order"`
}

type BusinessHoursRM struct {
	Weekday  int16  `json:"weekday"`
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`
	IsClosed bool   `json:"is_closed"`
}

type HolidayRM struct {
	ID   uuid.UUID `json:"id"`
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

type LeadRM struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
