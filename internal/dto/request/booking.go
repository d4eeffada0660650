package request

type CreateBookingRequest struct {
	EventID  string `json:"event_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}
