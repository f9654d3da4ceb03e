//go:build unit || e2e

package builder

import (
	"time"

	domrsvp "mokka-api/internal/domain/rsvp"
	reqdto "mokka-api/internal/handler/dto/request"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type RSVPBuilder struct {
	SessionID uuid.UUID
	Name      string
	Email     string
	Phone     *string
	Seats     int32
	Status    domrsvp.Status
	Code      string
	CreatedAt time.Time
}

func NewRSVPBuilder() *RSVPBuilder {
	return &RSVPBuilder{
		SessionID: uuid.New(),
		Name:      "Taro Tanaka",
		Email:     "taro@example.com",
		Phone:     nil,
		Seats:     2,
		Status:    domrsvp.StatusPending,
		Code:      "ABCD1234",
		CreatedAt: time.Now(),
	}
}

func (b *RSVPBuilder) BuildDomain() (*domrsvp.RSVP, error) {
	return domrsvp.New(b.SessionID, b.Name, b.Email, b.Phone, b.Seats)
}

func (b *RSVPBuilder) BuildSnapshot() *shared.RSVPSnapshot {
	return &shared.RSVPSnapshot{
		ID:        uuid.New(),
		SessionID: b.SessionID,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Seats:     b.Seats,
		Status:    b.Status,
		Code:      b.Code,
		CreatedAt: b.CreatedAt,
	}
}

func (b *RSVPBuilder) BuildCreateRequestDTO() reqdto.CreateRSVPRequest {
	return reqdto.CreateRSVPRequest{
		SessionID: b.SessionID,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Seats:     b.Seats,
	}
}

// Fluent builder methods
func (b *RSVPBuilder) WithSessionID(id uuid.UUID) *RSVPBuilder {
	b.SessionID = id
	return b
}

func (b *RSVPBuilder) WithName(name string) *RSVPBuilder {
	b.Name = name
	return b
}

func (b *RSVPBuilder) WithEmail(email string) *RSVPBuilder {
	b.Email = email
	return b
}

func (b *RSVPBuilder) WithPhone(phone string) *RSVPBuilder {
	b.Phone = &phone
	return b
}

func (b *RSVPBuilder) WithSeats(seats int32) *RSVPBuilder {
	b.Seats = seats
	return b
}

func (b *RSVPBuilder) WithStatus(status domrsvp.Status) *RSVPBuilder {
	b.Status = status
	return b
}

func (b *RSVPBuilder) WithCode(code string) *RSVPBuilder {
	b.Code = code
	return b
}

func (b *RSVPBuilder) AsCancelled() *RSVPBuilder {
	b.Status = domrsvp.StatusCancelled
	return b
}

func (b *RSVPBuilder) AsConfirmed() *RSVPBuilder {
	b.Status = domrsvp.StatusConfirmed
	return b
}
