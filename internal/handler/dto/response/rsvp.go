package response

import (
	"time"

	"mokka-api/internal/usecase/readmodel"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type RSVPResponse struct {
	ID              uuid.UUID `json:"id"`
	SessionID       uuid.UUID `json:"session_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone,omitempty"`
	Seats           int32     `json:"seats"`
	Status          string    `json:"status"`
	ReservationCode string    `json:"reservation_code"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewRSVPResponse(snap *shared.RSVPSnapshot) RSVPResponse {
	return RSVPResponse{
		ID:              snap.ID,
		SessionID:       snap.SessionID,
		Name:            snap.Name,
		Email:           snap.Email,
		Phone:           snap.Phone,
		Seats:           snap.Seats,
		Status:          snap.Status.String(),
		ReservationCode: snap.Code,
		CreatedAt:       snap.CreatedAt,
	}
}

// ResolveResponse pairs the booking the code names with every other booking
// under the same email, since the code controls all of them.
type ResolveResponse struct {
	RSVP     RSVPResponse       `json:"rsvp"`
	AllRSVPs []readmodel.RSVPRM `json:"all_rsvps"`
}

type CancelAllResponse struct {
	Cancelled int `json:"cancelled"`
}
