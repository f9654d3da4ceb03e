package request

import (
	"github.com/google/uuid"
)

type CreateRSVPRequest struct {
	SessionID uuid.UUID `json:"session_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Email     string    `json:"email" binding:"required,email"`
	Phone     *string   `json:"phone,omitempty"`
	Seats     int32     `json:"seats" binding:"required,min=1"`
}

type ResolveCodeRequest struct {
	Code string `json:"code" binding:"required,len=8"`
}

type SelfModifyRequest struct {
	Code         string     `json:"code" binding:"required,len=8"`
	RSVPID       uuid.UUID  `json:"rsvp_id" binding:"required"`
	Seats        int32      `json:"seats" binding:"required,min=1"`
	NewSessionID *uuid.UUID `json:"new_session_id,omitempty"`
}

type RequestVerificationRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Action string `json:"action" binding:"required,oneof=cancel modify"`
}

type VerifiedCancelRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type VerifiedModifyRequest struct {
	Email        string     `json:"email" binding:"required,email"`
	Code         string     `json:"code" binding:"required,len=6"`
	RSVPID       uuid.UUID  `json:"rsvp_id" binding:"required"`
	Seats        int32      `json:"seats" binding:"required,min=1"`
	NewSessionID *uuid.UUID `json:"new_session_id,omitempty"`
}

type AdminUpdateRSVPRequest struct {
	SessionID uuid.UUID `json:"session_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Email     string    `json:"email" binding:"required,email"`
	Phone     *string   `json:"phone,omitempty"`
	Seats     int32     `json:"seats" binding:"required,min=1"`
	Status    string    `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED"`
}
