package request

type CreateLeadRequest struct {
	Kind    string  `json:"kind" binding:"required,oneof=contact party"`
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone,omitempty"`
	Message *string `json:"message,omitempty"`
}
